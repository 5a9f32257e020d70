// Package theme holds the storybook palette and shared styles.
package theme

import "charm.land/lipgloss/v2"

// Palette: warm picture-book colors on a night-sky background.
var (
	Primary   = lipgloss.Color("#A78BFA") // lavender
	Accent    = lipgloss.Color("#FB923C") // tangerine
	Success   = lipgloss.Color("#4ADE80") // leaf
	Error     = lipgloss.Color("#FB7185") // berry
	StoryGold = lipgloss.Color("#FDE047") // sunflower
	StorySky  = lipgloss.Color("#7DD3FC") // daytime sky

	Text    = lipgloss.Color("#FEFCE8") // paper
	TextDim = lipgloss.Color("#A8A29E") // pencil
	BgDark  = lipgloss.Color("#111827") // night
	BgCard  = lipgloss.Color("#1F2937") // dusk
	Border  = lipgloss.Color("#44403C") // bark
)

var (
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// Dragging marks the sentence being carried in the puzzle.
	Dragging = lipgloss.NewStyle().Foreground(BgDark).Background(StoryGold).Bold(true)

	Alert = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Accent).
		Padding(1, 3).
		Align(lipgloss.Center)

	ButtonActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Primary).
			Bold(true).
			Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
