package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const (
	maxContentWidth = 64
	minContentWidth = 20
	// frameInset is the double border plus inner padding around content.
	frameInset = 6
)

// ContentWidth is the width every card and panel inside a frame of the
// given width is rendered at, so their edges line up.
func ContentWidth(frameWidth int) int {
	return max(minContentWidth, min(frameWidth-frameInset, maxContentWidth))
}

func bordered(b lipgloss.Border, c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(b).BorderForeground(c)
}

// BookFrame draws the outer page border and centers content inside it.
func BookFrame(content string, width, height int) string {
	return bordered(lipgloss.DoubleBorder(), theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// PageCard is a padded rounded card, cw columns wide including its border.
func PageCard(content string, cw int) string {
	return bordered(lipgloss.RoundedBorder(), theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// BigButton is a boxed menu entry; the selected one is filled gold.
func BigButton(label string, selected bool, width int) string {
	style := bordered(lipgloss.RoundedBorder(), theme.Border).
		Width(width).
		Padding(0, 1).
		Align(lipgloss.Center).
		Foreground(theme.Text)
	if !selected {
		return style.Render(label)
	}
	return style.
		BorderForeground(theme.StoryGold).
		Background(theme.StoryGold).
		Foreground(theme.BgDark).
		Bold(true).
		Render("▸ " + label)
}
