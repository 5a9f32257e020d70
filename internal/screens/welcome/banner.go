package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const bannerArt = `
 ┏━┓╺┳╸┏━┓┏━┓╻ ╻┏┓ ╻ ╻╺┳┓╺┳┓╻ ╻
 ┗━┓ ┃ ┃ ┃┣┳┛┗┳┛┣┻┓┃ ┃ ┃┃ ┃┃┗┳┛
 ┗━┛ ╹ ┗━┛╹┗╸ ╹ ┗━┛┗━┛╺┻┛╺┻┛ ╹ `

const bannerCompact = "S T O R Y B U D D Y"

// RenderBanner returns the Storybuddy banner, or a compact one for
// terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
