// Package level lets a grown-up set the reading level by hand.
package level

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/config"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const alertInvalid = "invalid-level"

type currentLevelMsg struct {
	token screen.Token
	level int
}

type levelSavedMsg struct {
	token screen.Token
	level int
	err   error
}

// LevelScreen is a numeric entry for the learner level.
type LevelScreen struct {
	svc     *services.Services
	life    screen.Lifecycle
	input   components.TextInput
	current int
	saving  bool
	alert   components.Alert
}

var (
	_ screen.Screen            = (*LevelScreen)(nil)
	_ screen.KeyHintProvider   = (*LevelScreen)(nil)
	_ screen.EscapeInterceptor = (*LevelScreen)(nil)
	_ screen.Disposer          = (*LevelScreen)(nil)
)

func New(svc *services.Services) *LevelScreen {
	return &LevelScreen{
		svc:   svc,
		input: components.NewTextInput(fmt.Sprintf("%d-%d", config.MinLevel, config.MaxLevel), true, 2),
	}
}

// Init focuses the input and reads the stored level.
func (s *LevelScreen) Init() tea.Cmd {
	s.life.Begin()
	return tea.Batch(s.input.Init(), s.loadLevel())
}

func (s *LevelScreen) loadLevel() tea.Cmd {
	token, ctx, svc := s.life.Current(), s.life.Context(), s.svc
	return func() tea.Msg {
		return currentLevelMsg{token: token, level: svc.Level(ctx)}
	}
}

func (s *LevelScreen) Dispose() { s.life.Dispose() }

func (s *LevelScreen) Title() string {
	return "Set Level"
}

func (s *LevelScreen) KeyHints() []layout.KeyHint {
	if s.alert.Visible() {
		return []layout.KeyHint{{Key: "Enter", Description: "OK"}}
	}
	return []layout.KeyHint{
		{Key: "0-9", Description: "Type"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// InterceptsEscape keeps esc for the alert while it is open.
func (s *LevelScreen) InterceptsEscape() bool {
	return s.alert.Visible()
}

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case currentLevelMsg:
		if s.life.Valid(msg.token) {
			s.current = msg.level
		}
		return s, nil
	case levelSavedMsg:
		if !s.life.Valid(msg.token) {
			return s, nil
		}
		return s, s.saved(msg)
	}

	if _, ok := msg.(components.AlertDismissedMsg); ok {
		s.input.Reset()
		return s, nil
	}
	if s.alert.Visible() {
		var cmd tea.Cmd
		s.alert, cmd = s.alert.Update(msg)
		return s, cmd
	}

	if s.saving {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LevelScreen) submit() tea.Cmd {
	level, err := s.input.NumericValue()
	if err != nil || level < config.MinLevel || level > config.MaxLevel {
		s.input.Submit(false)
		s.alert = components.NewAlert(alertInvalid, "Oops!",
			fmt.Sprintf("Please type a level from %d to %d.", config.MinLevel, config.MaxLevel))
		return nil
	}
	s.input.Submit(true)

	token := s.life.Current()
	if s.svc.Profile == nil {
		return func() tea.Msg { return levelSavedMsg{token: token, level: level} }
	}
	s.saving = true
	ctx, profile := context.WithoutCancel(s.life.Context()), s.svc.Profile
	return func() tea.Msg {
		return levelSavedMsg{token: token, level: level, err: profile.SetLevel(ctx, level)}
	}
}

func (s *LevelScreen) saved(msg levelSavedMsg) tea.Cmd {
	s.saving = false
	if msg.err != nil {
		s.svc.Logger.Error("set level", "error", msg.err)
		s.alert = components.NewAlert(alertInvalid, "Could not save", "The level could not be saved.")
		return nil
	}
	s.svc.Logger.Info("level set by hand", "from", s.current, "to", msg.level)
	s.current = msg.level
	return tea.Batch(
		func() tea.Msg { return services.StatsChangedMsg{} },
		router.PopCmd,
	)
}

func (s *LevelScreen) View(width, height int) string {
	if s.alert.Visible() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.alert.View(width))
	}
	content := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.StoryGold).Bold(true).Render(currentLabel(s.current)),
		theme.Body.Render("New level:"),
		s.input.View(),
	}, "\n\n")
	return components.BookFrame(content, width, height)
}

func currentLabel(level int) string {
	if level == 0 {
		return "★ Current level: ..."
	}
	return fmt.Sprintf("★ Current level: %d", level)
}
