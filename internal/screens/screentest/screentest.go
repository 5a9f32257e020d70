// Package screentest provides key helpers and in-memory fakes for screen tests.
package screentest

import (
	"context"
	"log/slog"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/remote"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/store"
	"github.com/abhisek/storybuddy/internal/storygen"
)

// KeyPress returns a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey returns a key press for a named key such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Collect runs cmd and returns every message it produces, flattening
// batches. Nil commands produce nothing.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Find returns the first message of type T produced by cmd.
func Find[T any](cmd tea.Cmd) (T, bool) {
	for _, msg := range Collect(cmd) {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

// Generator returns a fixed story or error.
type Generator struct {
	Story  *storygen.Story
	Err    error
	Levels []int
}

func (g *Generator) Name() string { return "fake" }

func (g *Generator) Generate(ctx context.Context, level int) (*storygen.Story, error) {
	g.Levels = append(g.Levels, level)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Story, nil
}

// Attempts is an in-memory AttemptStore.
type Attempts struct {
	mu      sync.Mutex
	Saved   []store.Attempt
	SaveErr error
	LoadErr error
}

func (a *Attempts) Save(_ context.Context, at store.Attempt) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.Saved = append(a.Saved, at)
	return nil
}

func (a *Attempts) Load(context.Context) ([]store.Attempt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.LoadErr != nil {
		return nil, a.LoadErr
	}
	return append([]store.Attempt(nil), a.Saved...), nil
}

// Profile is an in-memory ProfileRepo.
type Profile struct {
	mu     sync.Mutex
	Stored int
	SetErr error
}

func (p *Profile) Level(_ context.Context, fallback int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Stored == 0 {
		return fallback, nil
	}
	return p.Stored, nil
}

func (p *Profile) SetLevel(_ context.Context, level int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SetErr != nil {
		return p.SetErr
	}
	p.Stored = level
	return nil
}

// Difficulty returns a fixed level or error and records requests.
type Difficulty struct {
	mu       sync.Mutex
	Level    int
	Err      error
	Requests []remote.DifficultyRequest
}

func (d *Difficulty) PredictDifficulty(_ context.Context, req remote.DifficultyRequest) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Requests = append(d.Requests, req)
	if d.Err != nil {
		return 0, d.Err
	}
	return d.Level, nil
}

// Transcriber returns a fixed response or error.
type Transcriber struct {
	Response *remote.SpeechResponse
	Err      error
	Requests []remote.SpeechRequest
}

func (t *Transcriber) Transcribe(ctx context.Context, req remote.SpeechRequest) (*remote.SpeechResponse, error) {
	t.Requests = append(t.Requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.Err != nil {
		return nil, t.Err
	}
	return t.Response, nil
}

// Fakes groups the fakes wired into a Services.
type Fakes struct {
	Stories     *Generator
	Attempts    *Attempts
	Profile     *Profile
	Difficulty  *Difficulty
	Transcriber *Transcriber
}

// NewServices returns Services backed by fresh fakes and a discarding logger.
func NewServices() (*services.Services, *Fakes) {
	f := &Fakes{
		Stories:     &Generator{},
		Attempts:    &Attempts{},
		Profile:     &Profile{},
		Difficulty:  &Difficulty{Level: 2},
		Transcriber: &Transcriber{},
	}
	svc := &services.Services{
		Stories:     f.Stories,
		Attempts:    f.Attempts,
		Profile:     f.Profile,
		Difficulty:  f.Difficulty,
		Transcriber: f.Transcriber,
		Learner:     services.Learner{ChildID: "child-1", StartLevel: 1},
		Logger:      slog.New(slog.DiscardHandler),
	}
	return svc, f
}
