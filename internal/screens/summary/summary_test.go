package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/quiz"
	"github.com/abhisek/storybuddy/internal/remote"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screens/screentest"
	"github.com/abhisek/storybuddy/internal/services"
)

func runInit(t *testing.T, s *SummaryScreen) tea.Cmd {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected difficulty request")
	}
	_, next := s.Update(cmd())
	return next
}

func TestSummaryScreen_Title(t *testing.T) {
	svc, _ := screentest.NewServices()
	s := New(svc, quiz.Result{Score: 2, Total: 3}, 1)
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_PostsAccuracyAndSavesLevel(t *testing.T) {
	svc, fakes := screentest.NewServices()
	svc.Learner.CaretakerNote = "likes animals"
	fakes.Difficulty.Level = 3

	s := New(svc, quiz.Result{Score: 3, Total: 4}, 2)
	next := runInit(t, s)

	if len(fakes.Difficulty.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(fakes.Difficulty.Requests))
	}
	req := fakes.Difficulty.Requests[0]
	if req.ChildID != "child-1" || req.CaretakerInput != "likes animals" || req.Accuracy != 0.75 {
		t.Errorf("unexpected request %+v", req)
	}
	if fakes.Profile.Stored != 3 {
		t.Errorf("stored level = %d, want 3", fakes.Profile.Stored)
	}
	if _, ok := screentest.Find[services.StatsChangedMsg](next); !ok {
		t.Error("expected StatsChangedMsg")
	}
	if !strings.Contains(s.View(80, 24), "Level up") {
		t.Error("expected level-up message")
	}
}

func TestSummaryScreen_ClampsLevel(t *testing.T) {
	svc, fakes := screentest.NewServices()
	fakes.Difficulty.Level = 42

	s := New(svc, quiz.Result{Score: 1, Total: 1}, 9)
	runInit(t, s)

	if fakes.Profile.Stored != 10 {
		t.Errorf("stored level = %d, want 10", fakes.Profile.Stored)
	}
}

func TestSummaryScreen_DifficultyErrorShowsNote(t *testing.T) {
	svc, fakes := screentest.NewServices()
	fakes.Difficulty.Err = errors.New("connection refused")

	s := New(svc, quiz.Result{Score: 1, Total: 2}, 4)
	next := runInit(t, s)

	if next != nil {
		t.Error("failed update should not emit commands")
	}
	if fakes.Profile.Stored != 0 {
		t.Error("level must not change on failure")
	}
	if !strings.Contains(s.View(80, 24), "Staying at level 4") {
		t.Error("expected fallback note")
	}
}

func TestSummaryScreen_StaleReplyDropped(t *testing.T) {
	svc, fakes := screentest.NewServices()
	fakes.Difficulty.Level = 5

	s := New(svc, quiz.Result{Score: 1, Total: 1}, 4)
	cmd := s.Init()
	s.Dispose()
	_, next := s.Update(cmd())

	if next != nil {
		t.Error("stale reply must be ignored")
	}
	if s.newLevel != 0 {
		t.Errorf("newLevel = %d, want 0", s.newLevel)
	}
}

// ctxPredictor fails like an HTTP client once its context is cancelled.
type ctxPredictor struct{ level int }

func (p ctxPredictor) PredictDifficulty(ctx context.Context, _ remote.DifficultyRequest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.level, nil
}

func TestSummaryScreen_LevelStoredAfterLeaving(t *testing.T) {
	svc, fakes := screentest.NewServices()
	svc.Difficulty = ctxPredictor{level: 6}

	s := New(svc, quiz.Result{Score: 4, Total: 4}, 5)
	cmd := s.Init()
	s.Dispose()
	_, next := s.Update(cmd())

	if fakes.Profile.Stored != 6 {
		t.Errorf("stored level = %d, want 6", fakes.Profile.Stored)
	}
	if next != nil || s.newLevel != 0 {
		t.Error("reply for a closed screen must not be applied")
	}
}

func TestSummaryScreen_EmptyQuizKeepsLevel(t *testing.T) {
	svc, fakes := screentest.NewServices()
	fakes.Difficulty.Level = 1

	s := New(svc, quiz.Result{}, 3)
	if s.Init() != nil {
		t.Error("an empty quiz should not report accuracy")
	}
	if len(fakes.Difficulty.Requests) != 0 || fakes.Profile.Stored != 0 {
		t.Error("level must not change for an empty quiz")
	}
}

func TestSummaryScreen_NoDifficultyService(t *testing.T) {
	svc, _ := screentest.NewServices()
	svc.Difficulty = nil
	s := New(svc, quiz.Result{}, 1)
	if s.Init() != nil {
		t.Error("expected no request without a difficulty service")
	}
	if !strings.Contains(s.View(80, 24), "No questions") {
		t.Error("expected empty quiz headline")
	}
}

func TestSummaryScreen_EnterReturnsHome(t *testing.T) {
	svc, _ := screentest.NewServices()
	s := New(svc, quiz.Result{Score: 1, Total: 1}, 1)
	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	if _, ok := screentest.Find[router.PopToRootMsg](cmd); !ok {
		t.Error("expected PopToRootMsg on Enter")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	svc, _ := screentest.NewServices()
	s := New(svc, quiz.Result{}, 1)
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
