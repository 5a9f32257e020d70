package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// Meter shows progress through a fixed number of steps, such as questions
// answered or puzzle parts finished.
type Meter struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewMeter creates a meter. Done is clamped into [0, total].
func NewMeter(label string, done, total, width int) Meter {
	return Meter{Label: label, Done: max(0, min(done, total)), Total: max(total, 0), Width: width}
}

// Fraction is Done/Total, or 0 for an empty meter.
func (m Meter) Fraction() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Done) / float64(m.Total)
}

func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label))
		b.WriteString("  ")
	}

	count := fmt.Sprintf("  %d/%d", m.Done, m.Total)
	cells := max(m.Width-lipgloss.Width(b.String())-len(count), 4)
	filled := int(float64(cells) * m.Fraction())

	b.WriteString(lipgloss.NewStyle().Foreground(theme.StoryGold).Render(strings.Repeat("▰", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", cells-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}
