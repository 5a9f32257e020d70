package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/quiz"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

type difficultyMsg struct {
	token screen.Token
	level int
	err   error
}

// SummaryScreen shows the quiz result and asks the difficulty service for
// the next level.
type SummaryScreen struct {
	svc    *services.Services
	life   screen.Lifecycle
	result quiz.Result
	played int

	pending  bool
	newLevel int
	note     string
	home     components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a quiz played at level.
func New(svc *services.Services, result quiz.Result, level int) *SummaryScreen {
	return &SummaryScreen{
		svc:    svc,
		result: result,
		played: level,
		home: components.NewButton("Back to the library", "h", func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	token := s.life.Begin()
	if s.svc.Difficulty == nil || s.result.Total == 0 {
		return nil
	}
	s.pending = true
	// The level update is stored even if the child leaves first; only the
	// reply is dropped.
	ctx := context.WithoutCancel(s.life.Context())
	return func() tea.Msg {
		level, err := s.svc.UpdateLevel(ctx, s.result.Accuracy())
		return difficultyMsg{token: token, level: level, err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/h", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

// Dispose drops a difficulty reply that arrives after the screen closed.
func (s *SummaryScreen) Dispose() {
	s.life.Dispose()
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case difficultyMsg:
		if !s.life.Valid(msg.token) {
			return s, nil
		}
		s.pending = false
		if msg.err != nil {
			s.svc.Logger.Error("predict difficulty", "error", msg.err, "accuracy", s.result.Accuracy())
			s.note = fmt.Sprintf("Could not reach the level helper. Staying at level %d.", s.played)
			return s, nil
		}
		s.newLevel = msg.level
		s.svc.Logger.Info("level updated", "from", s.played, "to", msg.level)
		return s, func() tea.Msg { return services.StatsChangedMsg{} }

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.home, cmd = s.home.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), headline(s.result)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("You got %d of %d right", s.result.Score, s.result.Total)))
	b.WriteString("\n\n")

	bar := components.NewMeter("Correct", s.result.Score, s.result.Total, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	switch {
	case s.pending:
		b.WriteString(center(theme.Hint, "Choosing your next level..."))
	case s.note != "":
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent), s.note))
	case s.newLevel > s.played:
		b.WriteString(center(theme.Correct, fmt.Sprintf("Level up! Next stories are level %d.", s.newLevel)))
	case s.newLevel > 0 && s.newLevel < s.played:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.StorySky),
			fmt.Sprintf("Next stories will be a bit easier: level %d.", s.newLevel)))
	case s.newLevel > 0:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
			fmt.Sprintf("Staying at level %d.", s.newLevel)))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.home.View()))
	return b.String()
}

func headline(r quiz.Result) string {
	switch acc := r.Accuracy(); {
	case r.Total == 0:
		return "No questions this time"
	case acc == 1:
		return "Perfect score!"
	case acc >= 0.5:
		return "Great reading!"
	default:
		return "Good try!"
	}
}
