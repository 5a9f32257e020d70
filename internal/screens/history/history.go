// Package history shows the child's past quiz attempts.
package history

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/store"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

type attemptsMsg struct {
	token    screen.Token
	attempts []store.Attempt
	err      error
}

type state int

const (
	stateLoading state = iota
	stateReady
	stateFailed
)

// HistoryScreen lists past quiz attempts, newest first, with a score meter
// for the highlighted one.
type HistoryScreen struct {
	attempts store.AttemptStore
	life     screen.Lifecycle

	state    state
	err      error
	rows     []store.Attempt
	stats    store.AttemptStats
	selected int
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
	_ screen.Disposer        = (*HistoryScreen)(nil)
	_ screen.Resumer         = (*HistoryScreen)(nil)
)

func New(attempts store.AttemptStore) *HistoryScreen {
	return &HistoryScreen{attempts: attempts}
}

func (s *HistoryScreen) Init() tea.Cmd { return s.load() }

// Resume reloads so attempts saved by a quiz pushed on top show up.
func (s *HistoryScreen) Resume() tea.Cmd { return s.load() }

func (s *HistoryScreen) Dispose() { s.life.Dispose() }

func (s *HistoryScreen) load() tea.Cmd {
	token := s.life.Begin()
	ctx := s.life.Context()
	src := s.attempts
	return func() tea.Msg {
		list, err := src.Load(ctx)
		return attemptsMsg{token: token, attempts: list, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "My History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsMsg:
		if !s.life.Valid(msg.token) {
			return s, nil
		}
		if msg.err != nil {
			s.state, s.err = stateFailed, msg.err
			return s, nil
		}
		s.rows = slices.Clone(msg.attempts)
		slices.Reverse(s.rows)
		s.stats = store.SummarizeAttempts(msg.attempts)
		s.selected = min(s.selected, max(len(s.rows)-1, 0))
		s.state = stateReady

	case tea.KeyMsg:
		s.move(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) move(key string) {
	switch key {
	case "up", "k":
		s.selected--
	case "down", "j":
		s.selected++
	case "home", "g":
		s.selected = 0
	case "end", "G":
		s.selected = len(s.rows) - 1
	default:
		return
	}
	s.selected = max(0, min(s.selected, len(s.rows)-1))
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.state == stateLoading:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case s.state == stateFailed:
		return center.Foreground(theme.Error).Render("\n\nCould not load history: " + s.err.Error())
	case len(s.rows) == 0:
		return center.Inherit(theme.Hint).Render("\n\nNo quizzes yet. Read a story to start!")
	}

	cw := components.ContentWidth(width)
	summary := fmt.Sprintf("%d quizzes  •  %.0f%% correct  •  best %d/%d",
		s.stats.Attempts, s.stats.Accuracy()*100, s.stats.BestScore, s.stats.BestTotal)

	picked := s.rows[s.selected]
	meter := components.NewMeter(picked.Date, picked.Score, picked.Total, cw-6)

	// Header, meter card and spacing take about ten lines.
	table := s.table(max(height-10, 1))

	body := lipgloss.JoinVertical(lipgloss.Center,
		"",
		lipgloss.NewStyle().Foreground(theme.StoryGold).Bold(true).Render(summary),
		"",
		components.PageCard(meter.View(), cw),
		"",
		table,
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// table renders at most rows lines, scrolled so the selection stays visible.
func (s *HistoryScreen) table(rows int) string {
	first := max(0, s.selected-rows+1)
	last := min(len(s.rows), first+rows)

	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		a := s.rows[i]
		line := fmt.Sprintf("%-12s %2d/%-2d %4.0f%%", a.Date, a.Score, a.Total, a.Accuracy()*100)
		if a.Level > 0 {
			line += fmt.Sprintf("   L%d", a.Level)
		}
		if i == s.selected {
			lines = append(lines, theme.Selected.Render("▸ "+line))
			continue
		}
		lines = append(lines, theme.Unselected.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}
