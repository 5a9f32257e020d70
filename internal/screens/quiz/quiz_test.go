package quiz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/quiz"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screens/screentest"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/storygen"
)

func testStory() *storygen.Story {
	return &storygen.Story{
		Text:  "A fox found a bird. They became friends.",
		Level: 2,
		Questions: []quiz.Question{
			{Text: "Who found the bird?", Options: []string{"A cat", "A fox", "A dog", "An owl"}, Correct: 1},
			{Text: "What did they become?", Options: []string{"Friends", "Rivals", "Strangers", "Twins"}, Correct: 0},
		},
	}
}

func newTestQuiz(t *testing.T) (*QuizScreen, *screentest.Fakes) {
	t.Helper()
	svc, fakes := screentest.NewServices()
	svc.FeedbackDelay = time.Millisecond
	s := New(svc, testStory())
	s.Init()
	return s, fakes
}

// press sends a key and feeds back the OptionChosenMsg it produces.
func press(s *QuizScreen, r rune) tea.Cmd {
	_, cmd := s.Update(screentest.KeyPress(r))
	if cmd == nil {
		return nil
	}
	_, next := s.Update(cmd())
	return next
}

func advance(t *testing.T, s *QuizScreen, tick tea.Cmd) tea.Cmd {
	t.Helper()
	if tick == nil {
		t.Fatal("expected feedback timer")
	}
	_, cmd := s.Update(tick())
	return cmd
}

func TestAnswerShowsFeedbackThenAdvances(t *testing.T) {
	s, _ := newTestQuiz(t)

	tick := press(s, 'b')
	if s.feedback == nil || !s.feedback.Correct {
		t.Fatal("expected correct feedback")
	}
	if !strings.Contains(s.View(80, 30), "That's right") {
		t.Error("view should show feedback")
	}
	if s.shown != 0 {
		t.Error("question should stay visible during feedback")
	}

	advance(t, s, tick)
	if s.shown != 1 || s.feedback != nil {
		t.Errorf("expected second question, shown=%d", s.shown)
	}
}

func TestKeysIgnoredDuringFeedback(t *testing.T) {
	s, _ := newTestQuiz(t)

	press(s, 'a')
	if cmd := press(s, 'b'); cmd != nil {
		t.Error("answer during feedback should be ignored")
	}
	if got := s.engine.Answer(0); got != 0 {
		t.Errorf("answer = %d, want 0", got)
	}
}

func TestWrongAnswerRevealsCorrectLetter(t *testing.T) {
	s, _ := newTestQuiz(t)
	press(s, 'c')
	if !strings.Contains(s.View(80, 30), "The answer was B") {
		t.Error("expected correct letter in feedback")
	}
}

func TestCompletionSavesAttemptAndShowsSummary(t *testing.T) {
	s, fakes := newTestQuiz(t)

	advance(t, s, press(s, 'b'))
	msgs := screentest.Collect(press(s, 'b'))

	if len(fakes.Attempts.Saved) != 1 {
		t.Fatalf("expected 1 saved attempt, got %d", len(fakes.Attempts.Saved))
	}
	got := fakes.Attempts.Saved[0]
	if got.Score != 1 || got.Total != 2 || got.Level != 2 {
		t.Errorf("unexpected attempt %+v", got)
	}

	var tick advanceMsg
	var ticked, stats bool
	for _, m := range msgs {
		switch m := m.(type) {
		case advanceMsg:
			tick, ticked = m, true
		case services.StatsChangedMsg:
			stats = true
		}
	}
	if !ticked || !stats {
		t.Fatalf("expected feedback timer and stats change, got %v", msgs)
	}

	_, next := s.Update(tick)
	if _, ok := screentest.Find[router.ReplaceScreenMsg](next); !ok {
		t.Error("expected summary to replace the quiz")
	}
}

func TestAttemptSavedWhenLeavingDuringFeedback(t *testing.T) {
	s, fakes := newTestQuiz(t)

	advance(t, s, press(s, 'b'))
	final := press(s, 'a')
	if !s.engine.Completed() {
		t.Fatal("quiz should be complete after the last answer")
	}
	s.Dispose()

	for _, m := range screentest.Collect(final) {
		if m, ok := m.(advanceMsg); ok {
			if _, cmd := s.Update(m); cmd != nil {
				t.Error("disposed screen should not move to the summary")
			}
		}
	}
	if len(fakes.Attempts.Saved) != 1 {
		t.Fatalf("saved attempts = %d, want 1", len(fakes.Attempts.Saved))
	}
	if got := fakes.Attempts.Saved[0]; got.Score != 2 || got.Total != 2 {
		t.Errorf("unexpected attempt %+v", got)
	}
}

func TestSaveErrorStillShowsSummary(t *testing.T) {
	s, fakes := newTestQuiz(t)
	fakes.Attempts.SaveErr = errors.New("disk full")

	advance(t, s, press(s, 'b'))
	msgs := screentest.Collect(press(s, 'b'))
	if len(msgs) != 1 {
		t.Fatalf("expected only the feedback timer, got %v", msgs)
	}
	_, next := s.Update(msgs[0])
	if _, ok := screentest.Find[router.ReplaceScreenMsg](next); !ok {
		t.Error("expected summary after a failed save")
	}
}

func TestStaleTimerDroppedAfterDispose(t *testing.T) {
	s, _ := newTestQuiz(t)

	tick := press(s, 'b')
	s.Dispose()
	if cmd := advance(t, s, tick); cmd != nil {
		t.Error("disposed screen should ignore its timer")
	}
	if s.shown != 0 {
		t.Error("disposed screen must not advance")
	}
}

func TestEmptyQuizGoesStraightToSummary(t *testing.T) {
	svc, fakes := screentest.NewServices()
	s := New(svc, &storygen.Story{Text: "Short.", Level: 1})

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("empty quiz should finish immediately")
	}
	var replaced bool
	for _, m := range screentest.Collect(cmd) {
		if _, next := s.Update(m); next != nil {
			_, replaced = screentest.Find[router.ReplaceScreenMsg](next)
		}
	}
	if !replaced {
		t.Error("expected summary")
	}
	if len(fakes.Attempts.Saved) != 1 || fakes.Attempts.Saved[0].Total != 0 {
		t.Errorf("expected one 0/0 attempt, got %+v", fakes.Attempts.Saved)
	}
}

func TestKeyHints(t *testing.T) {
	s, _ := newTestQuiz(t)
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
