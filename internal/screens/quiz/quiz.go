// Package quiz is the screen that runs a multiple-choice quiz over a story.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/quiz"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/screens/summary"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/store"
	"github.com/abhisek/storybuddy/internal/storygen"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// DefaultFeedbackDelay is used when the services carry no delay.
const DefaultFeedbackDelay = 1200 * time.Millisecond

// advanceMsg fires after the feedback delay.
type advanceMsg struct {
	token screen.Token
}

// QuizScreen asks each question once, shows whether the answer was right,
// and moves on after the feedback delay.
type QuizScreen struct {
	svc    *services.Services
	life   screen.Lifecycle
	story  *storygen.Story
	engine *quiz.Engine

	shown    int
	choice   components.MultiChoice
	feedback *quiz.Feedback
	result   *quiz.Result
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over the story's questions.
func New(svc *services.Services, story *storygen.Story) *QuizScreen {
	s := &QuizScreen{svc: svc, story: story}
	s.engine = quiz.NewEngine(story.Questions, func(r quiz.Result) {
		s.result = &r
	})
	s.showCurrent()
	return s
}

func (s *QuizScreen) showCurrent() {
	q, ok := s.engine.CurrentQuestion()
	if !ok {
		return
	}
	s.shown = s.engine.Current()
	s.choice = components.NewMultiChoice(q.Text, q.Options)
	s.feedback = nil
}

func (s *QuizScreen) Init() tea.Cmd {
	token := s.life.Begin()
	if s.engine.Completed() {
		return tea.Batch(s.saveAttempt(), func() tea.Msg { return advanceMsg{token: token} })
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

// Dispose cancels the pending feedback timer. An attempt save already
// started still completes.
func (s *QuizScreen) Dispose() {
	s.life.Dispose()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.OptionChosenMsg:
		return s, s.answer(msg.Index)

	case advanceMsg:
		if !s.life.Valid(msg.token) {
			return s, nil
		}
		if s.engine.Completed() {
			return s, router.ReplaceCmd(summary.New(s.svc, *s.result, s.story.Level))
		}
		s.showCurrent()
		return s, nil
	}

	if s.choice.Revealed() || s.engine.Completed() {
		return s, nil
	}
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) answer(option int) tea.Cmd {
	fb := s.engine.Select(s.shown, option)
	if !fb.Applied {
		return nil
	}
	q, _ := s.engine.Question(s.shown)
	s.choice.Reveal(option, q.Correct)
	s.feedback = &fb

	delay := s.svc.FeedbackDelay
	if delay <= 0 {
		delay = DefaultFeedbackDelay
	}
	token := s.life.Current()
	tick := tea.Tick(delay, func(time.Time) tea.Msg {
		return advanceMsg{token: token}
	})
	if fb.Completed {
		return tea.Batch(s.saveAttempt(), tick)
	}
	return tick
}

// saveAttempt appends the finished quiz to history. The write outlives the
// screen.
func (s *QuizScreen) saveAttempt() tea.Cmd {
	if s.svc.Attempts == nil || s.result == nil {
		return nil
	}
	ctx := context.WithoutCancel(s.life.Context())
	attempts, logger := s.svc.Attempts, s.svc.Logger
	attempt := store.Attempt{
		Score: s.result.Score,
		Total: s.result.Total,
		Level: s.story.Level,
	}
	return func() tea.Msg {
		if err := attempts.Save(ctx, attempt); err != nil {
			logger.Error("save attempt", "error", err)
			return nil
		}
		return services.StatsChangedMsg{}
	}
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.engine.Total() == 0 {
		return components.BookFrame(theme.Hint.Render("No questions for this story."), width, height)
	}

	progress := components.NewMeter(fmt.Sprintf("Question %d", s.shown+1), s.engine.Current(), s.engine.Total(), cw).View()

	sections := []string{progress, components.PageCard(s.choice.View(), cw)}

	if s.feedback != nil {
		if s.feedback.Correct {
			sections = append(sections, theme.Correct.Render("✓ That's right!"))
		} else {
			q, _ := s.engine.Question(s.shown)
			sections = append(sections, theme.Incorrect.Render(
				fmt.Sprintf("✗ The answer was %s.", quiz.OptionLetter(q.Correct))))
		}
	}

	return components.BookFrame(strings.Join(sections, "\n\n"), width, height)
}
