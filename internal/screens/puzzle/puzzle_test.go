package puzzle

import (
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/puzzle"
	"github.com/abhisek/storybuddy/internal/screens/screentest"
)

func noShuffle([]string) {}

func newTestPuzzle(t *testing.T) *PuzzleScreen {
	t.Helper()
	svc, _ := screentest.NewServices()
	stages := []puzzle.Stage{{"Ann woke up.", "She ate toast."}, {"Then she ran to school."}}
	return New(svc, stages, puzzle.WithShuffler(noShuffle))
}

func send(s *PuzzleScreen, keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		s.Update(k)
	}
}

var (
	space = screentest.SpecialKey(tea.KeySpace)
	tab   = screentest.SpecialKey(tea.KeyTab)
	down  = screentest.SpecialKey(tea.KeyDown)
	esc   = screentest.SpecialKey(tea.KeyEscape)
	enter = screentest.SpecialKey(tea.KeyEnter)
)

func TestPickUpAndDropMovesSentence(t *testing.T) {
	s := newTestPuzzle(t)

	send(s, space)
	if s.drag == nil {
		t.Fatal("expected an active drag")
	}
	if len(s.puzzle.Arranged()) != 0 {
		t.Fatal("picking up must not move anything yet")
	}

	send(s, space)
	if s.drag != nil {
		t.Error("drop should end the drag")
	}
	if got := s.puzzle.Arranged(); !slices.Equal(got, []string{"Ann woke up."}) {
		t.Errorf("arranged = %v", got)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	s := newTestPuzzle(t)

	send(s, space)
	if !s.InterceptsEscape() {
		t.Fatal("screen should keep esc during a drag")
	}
	send(s, down, esc)

	if s.drag != nil {
		t.Error("esc should cancel the drag")
	}
	if len(s.puzzle.Available()) != 2 || len(s.puzzle.Arranged()) != 0 {
		t.Error("cancelled drag must not change collections")
	}
	if s.InterceptsEscape() {
		t.Error("esc should go back to the app once idle")
	}
}

func TestCorrectOrderAdvancesStage(t *testing.T) {
	s := newTestPuzzle(t)

	send(s, space, space, tab, space, space)
	if got := s.puzzle.Arranged(); !slices.Equal(got, []string{"Ann woke up.", "She ate toast."}) {
		t.Fatalf("arranged = %v", got)
	}

	send(s, screentest.KeyPress('v'))
	if s.puzzle.Stage() != 1 {
		t.Errorf("stage = %d, want 1", s.puzzle.Stage())
	}
	if !s.alert.Visible() || !strings.Contains(s.View(80, 30), "Great job") {
		t.Error("expected success alert")
	}

	_, cmd := s.Update(enter)
	if cmd == nil {
		t.Fatal("expected dismiss command")
	}
	s.Update(cmd())
	if s.alert.Visible() {
		t.Error("alert should be dismissed")
	}
}

func TestWrongOrderResetsStage(t *testing.T) {
	s := newTestPuzzle(t)

	send(s, down, space, space, tab, space, space)
	if got := s.puzzle.Arranged(); !slices.Equal(got, []string{"She ate toast.", "Ann woke up."}) {
		t.Fatalf("arranged = %v", got)
	}

	send(s, screentest.KeyPress('v'))
	if s.puzzle.Stage() != 0 {
		t.Errorf("stage = %d, want 0", s.puzzle.Stage())
	}
	if len(s.puzzle.Arranged()) != 0 || len(s.puzzle.Available()) != 2 {
		t.Error("mismatch should fully reset the stage")
	}
	if !strings.Contains(s.View(80, 30), "0 of 2") {
		t.Error("expected per-position count in alert")
	}
}

func TestKeysBlockedWhileAlertVisible(t *testing.T) {
	s := newTestPuzzle(t)
	send(s, screentest.KeyPress('v'))
	if !s.InterceptsEscape() {
		t.Fatal("alert should keep esc")
	}
	send(s, space)
	if s.drag != nil {
		t.Error("keys must go to the alert while it is visible")
	}
}

func TestFinishingLastStage(t *testing.T) {
	s := newTestPuzzle(t)
	send(s, space, space, tab, space, space, screentest.KeyPress('v'), enter)
	if got := len(s.puzzle.Available()); got != 3 {
		t.Fatalf("second part should hold all three sentences, got %d", got)
	}
	send(s, space, space, tab, space, space, tab, space, space, screentest.KeyPress('v'))

	if !s.puzzle.Finished() {
		t.Fatal("expected the puzzle to be finished")
	}
	if !strings.Contains(s.View(80, 30), "The End") {
		t.Error("expected completion alert")
	}
}

func TestRestart(t *testing.T) {
	s := newTestPuzzle(t)
	send(s, space, space, tab, space, space, screentest.KeyPress('v'), enter)
	send(s, screentest.KeyPress('r'))
	if s.puzzle.Stage() != 0 || len(s.puzzle.Available()) != 2 {
		t.Error("restart should return to the first part")
	}
}

func TestDisposeStopsPuzzle(t *testing.T) {
	s := newTestPuzzle(t)
	send(s, space)
	s.Dispose()
	if !s.puzzle.Stopped() || s.drag != nil {
		t.Error("dispose should stop the game")
	}
	if len(s.puzzle.Available())+len(s.puzzle.Arranged()) != 0 {
		t.Error("stop should clear both collections")
	}
}

func TestEmptyStagesFallBack(t *testing.T) {
	svc, _ := screentest.NewServices()
	s := New(svc, nil)
	if s.puzzle.StageCount() != len(puzzle.DefaultStages()) {
		t.Errorf("expected built-in stages, got %d", s.puzzle.StageCount())
	}
}
