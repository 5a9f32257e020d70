// Package layout draws the frame around every screen: a header bar with the
// learner's level, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint is one entry in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats are the learner figures shown on the right of the header.
type HeaderStats struct {
	Level    int
	Attempts int
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"The window is a little small.\n\nMake it at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height)))
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader draws the app name on the left, the screen title centered
// and the learner stats on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Storybuddy")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	quizzes := "quizzes"
	if stats.Attempts == 1 {
		quizzes = "quiz"
	}
	right := lipgloss.NewStyle().Foreground(theme.StoryGold).Render(fmt.Sprintf("★ Level %d", stats.Level)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.StorySky).Render(fmt.Sprintf("✎ %d %s", stats.Attempts, quizzes))

	inner := max(width-4, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gap1 := max((inner-mw)/2-lw, 1)
	gap2 := max(inner-lw-gap1-mw-rw, 1)

	return barStyle.Width(width).Render(left + strings.Repeat(" ", gap1) + mid + strings.Repeat(" ", gap2) + right)
}

// RenderFooter lists the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return barStyle.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body),
		footer)
}
