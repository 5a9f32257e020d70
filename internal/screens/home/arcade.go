package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const titleFull = `┏━┓╺┳╸┏━┓┏━┓╻ ╻┏┓ ╻ ╻╺┳┓╺┳┓╻ ╻
┗━┓ ┃ ┃ ┃┣┳┛┗┳┛┣┻┓┃ ┃ ┃┃ ┃┃┗┳┛
┗━┛ ╹ ┗━┛╹┗╸ ╹ ┗━┛┗━┛╺┻┛╺┻┛ ╹ `

const titleCompact = "S · T · O · R · Y · B · U · D · D · Y"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.StoryGold).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
}

// renderStatsBar shows level, quiz count and accuracy in a bordered strip.
func renderStatsBar(snap services.Snapshot, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.StoryGold).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.StorySky).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	acc := dimStyle.Render("✓ --")
	if snap.Stats.TotalAsked > 0 {
		acc = accStyle.Render(fmt.Sprintf("✓ %.0f%%", snap.Stats.Accuracy()*100))
	}

	var parts []string
	if compact {
		parts = []string{
			levelStyle.Render(fmt.Sprintf("★%d", snap.Level)),
			quizStyle.Render(fmt.Sprintf("✎%d", snap.Stats.Attempts)),
			acc,
		}
	} else {
		parts = []string{
			levelStyle.Render(fmt.Sprintf("★ LEVEL %d", snap.Level)),
			quizStyle.Render(fmt.Sprintf("✎ %d QUIZZES", snap.Stats.Attempts)),
			acc,
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.StorySky).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}

func centered(content string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(content)
}
