// Package storygen produces a story and its quiz questions for a difficulty
// level, from the remote story service, an LLM provider, or built-in stories.
package storygen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/storybuddy/internal/quiz"
)

// Story is a generated story with its parsed questions.
type Story struct {
	Text      string
	Questions []quiz.Question

	// Skipped lists question blocks that could not be parsed.
	Skipped []string

	// Source names the generator that produced the story.
	Source string
	Level  int
}

// Generator produces a story for a difficulty level.
type Generator interface {
	Generate(ctx context.Context, level int) (*Story, error)
	Name() string
}

// Chain tries each generator in order and returns the first story.
type Chain struct {
	generators []Generator
	logger     *slog.Logger
}

// NewChain builds a Chain. Nil generators are ignored.
func NewChain(logger *slog.Logger, gens ...Generator) *Chain {
	c := &Chain{logger: logger}
	for _, g := range gens {
		if g != nil {
			c.generators = append(c.generators, g)
		}
	}
	return c
}

// Name lists the chained generators.
func (c *Chain) Name() string {
	name := "chain"
	for i, g := range c.generators {
		sep := ":"
		if i > 0 {
			sep = ">"
		}
		name += sep + g.Name()
	}
	return name
}

// Generate returns the first successful story. Context cancellation stops
// the chain immediately.
func (c *Chain) Generate(ctx context.Context, level int) (*Story, error) {
	if len(c.generators) == 0 {
		return nil, errors.New("no story generators configured")
	}

	var errs []error
	for _, g := range c.generators {
		story, err := g.Generate(ctx, level)
		if err == nil {
			return story, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("story generator failed", "generator", g.Name(), "level", level, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", g.Name(), err))
	}
	return nil, errors.Join(errs...)
}

// fromText parses question text into a Story. It fails with
// quiz.ErrNoQuestions when nothing usable was found.
func fromText(source string, level int, text, questions string, logger *slog.Logger) (*Story, error) {
	res := quiz.ParseQuestions(questions)
	for _, s := range res.Skipped {
		logger.Warn("dropped question block", "source", source, "detail", s)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return &Story{
		Text:      text,
		Questions: res.Questions,
		Skipped:   res.Skipped,
		Source:    source,
		Level:     level,
	}, nil
}
