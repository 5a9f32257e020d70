package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// MascotVariant selects which owl to draw.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, last quiz was perfect
	MascotSleepy                           // Dim, no quizzes yet
)

const mascotIdle = ` ,___,
 (O,O)
 /)__)
--"-"--`

const mascotCelebrating = `\,___,/
 (^,^)
 /)__)
--"-"--`

const mascotSleepy = ` ,___,
 (-,-) z
 /)__)
--"-"--`

// RenderMascot returns Buddy the owl for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.StoryGold
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
