package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bookOpenAt   = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bookArt = `     __________   __________
   .'          '.'          '.
  /  once upon  |  a time...   \
 |   ~~~~~~~~   |   ~~~~~~~~    |
 |   ~~~~~~~~   |   ~~~~~~~~    |
 |______________|_______________|`

var twinkleFrames = []string{"✦", "✧", "★"}

type tickMsg struct {
	token screen.Token
}

// WelcomeScreen plays a short book-opening splash, then hands over to home.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	life         screen.Lifecycle
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.tick(w.life.Begin())
}

func (w *WelcomeScreen) tick(token screen.Token) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{token: token}
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !w.life.Valid(msg.token) {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, w.tick(msg.token)

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

// Dispose stops the twinkle timer.
func (w *WelcomeScreen) Dispose() {
	w.life.Dispose()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.ReplaceCmd(w.homeFactory())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	book := lipgloss.NewStyle().Foreground(theme.StoryGold).Render(bookArt)
	if w.elapsed >= bookOpenAt {
		star := twinkleFrames[w.tickCount%len(twinkleFrames)]
		left := lipgloss.NewStyle().Foreground(theme.StorySky).Render(star)
		right := lipgloss.NewStyle().Foreground(theme.Accent).Render(star)
		lines := strings.Split(book, "\n")
		lines[0] = left + "  " + lines[0] + "  " + right
		lines[len(lines)-1] = right + "  " + lines[len(lines)-1] + "  " + left
		book = strings.Join(lines, "\n")
	}
	sections = append(sections, book)

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Stories, puzzles and questions!"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
