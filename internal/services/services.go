// Package services bundles the dependencies screens share, so screens can
// construct each other without long parameter lists.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/storybuddy/internal/config"
	"github.com/abhisek/storybuddy/internal/remote"
	"github.com/abhisek/storybuddy/internal/speech"
	"github.com/abhisek/storybuddy/internal/store"
	"github.com/abhisek/storybuddy/internal/storygen"
)

// DifficultyPredictor recommends the next level from quiz accuracy.
type DifficultyPredictor interface {
	PredictDifficulty(ctx context.Context, req remote.DifficultyRequest) (int, error)
}

// Learner identifies the child using the app.
type Learner struct {
	ChildID       string
	CaretakerNote string
	StartLevel    int
}

// Services is shared by every screen. Nil fields disable the features that
// need them.
type Services struct {
	Stories     storygen.Generator
	Attempts    store.AttemptStore
	Profile     store.ProfileRepo
	Difficulty  DifficultyPredictor
	Transcriber speech.Transcriber

	Learner       Learner
	FeedbackDelay time.Duration
	AudioFile     string
	Logger        *slog.Logger
}

// StatsChangedMsg tells the app that attempts or the level changed.
type StatsChangedMsg struct{}

// Level returns the stored learner level, falling back to the start level.
func (s *Services) Level(ctx context.Context) int {
	fallback := config.ClampLevel(s.Learner.StartLevel)
	if s.Profile == nil {
		return fallback
	}
	level, err := s.Profile.Level(ctx, fallback)
	if err != nil {
		s.Logger.Error("load level", "error", err)
		return fallback
	}
	return config.ClampLevel(level)
}

// ErrNoDifficulty is returned by UpdateLevel when no predictor is wired.
var ErrNoDifficulty = errors.New("difficulty prediction not configured")

// UpdateLevel asks the predictor for the next level given quiz accuracy,
// clamps it and stores it as the learner level.
func (s *Services) UpdateLevel(ctx context.Context, accuracy float64) (int, error) {
	if s.Difficulty == nil {
		return 0, ErrNoDifficulty
	}
	level, err := s.Difficulty.PredictDifficulty(ctx, remote.DifficultyRequest{
		ChildID:        s.Learner.ChildID,
		CaretakerInput: remote.CaretakerInput(s.Learner.CaretakerNote),
		Accuracy:       accuracy,
	})
	if err != nil {
		return 0, err
	}
	level = config.ClampLevel(level)
	if s.Profile != nil {
		if err := s.Profile.SetLevel(ctx, level); err != nil {
			return 0, fmt.Errorf("save level: %w", err)
		}
	}
	return level, nil
}

// Snapshot is the learner summary shown in the header and on home.
type Snapshot struct {
	Level int
	Stats store.AttemptStats
}

// LoadSnapshot reads the current level and attempt statistics.
func (s *Services) LoadSnapshot(ctx context.Context) Snapshot {
	snap := Snapshot{Level: s.Level(ctx)}
	if s.Attempts == nil {
		return snap
	}
	attempts, err := s.Attempts.Load(ctx)
	if err != nil {
		s.Logger.Error("load attempts", "error", err)
		return snap
	}
	snap.Stats = store.SummarizeAttempts(attempts)
	return snap
}
