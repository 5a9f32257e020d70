package storygen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/abhisek/storybuddy/internal/llm"
	"github.com/abhisek/storybuddy/internal/quiz"
)

const systemPrompt = `You write short stories for children learning to read, followed by comprehension questions.

Rules:
- The story has 4 to 10 short, simple sentences. Every sentence ends with a period, question mark or exclamation mark.
- Vocabulary and sentence length follow the reading level (1 is a beginning reader, 10 is a confident reader).
- Write 3 to 5 multiple-choice questions that can be answered from the story alone.
- Each question has exactly four options and exactly one correct answer, given as its letter A to D.
- Wrong options are plausible but clearly wrong to a reader of the story.
- Keep everything kind, safe and age-appropriate.`

// LLMConfig tunes the LLM story request.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns the defaults used by the app.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{MaxTokens: 1024, Temperature: 0.7}
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   LLMConfig
	logger   *slog.Logger
	purpose  string
}

// NewLLM creates an LLMGenerator. purpose labels the request in the event log.
func NewLLM(provider llm.Provider, cfg LLMConfig, purpose string, logger *slog.Logger) *LLMGenerator {
	if purpose == "" {
		purpose = "story"
	}
	return &LLMGenerator{provider: provider, config: cfg, purpose: purpose, logger: logger}
}

func (g *LLMGenerator) Name() string { return "llm" }

// storyOutput is the decoded LLM reply.
type storyOutput struct {
	Story     string           `json:"story"`
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

func (q questionOutput) toQuestion() quiz.Question {
	correct := -1
	if len(q.Answer) == 1 {
		correct = int(q.Answer[0] - 'A')
	}
	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = strings.TrimSpace(o)
	}
	return quiz.Question{Text: strings.TrimSpace(q.Question), Options: opts, Correct: correct}
}

func (g *LLMGenerator) Generate(ctx context.Context, level int) (*Story, error) {
	c, err := g.provider.Complete(ctx, llm.Prompt{
		Purpose:     g.purpose,
		System:      systemPrompt,
		User:        fmt.Sprintf("Reading level: %d\nWrite the story and questions.", level),
		Schema:      StorySchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("llm story: %w", err)
	}

	var out storyOutput
	if err := c.Decode(&out); err != nil {
		return nil, fmt.Errorf("llm story: %w", err)
	}
	if strings.TrimSpace(out.Story) == "" {
		return nil, fmt.Errorf("llm story: %w", &llm.Error{Kind: llm.KindInvalidOutput, Err: errors.New("empty story")})
	}

	story := &Story{Text: strings.TrimSpace(out.Story), Source: g.Name(), Level: level}
	for i, qo := range out.Questions {
		q := qo.toQuestion()
		if !q.Valid() || slices.Contains(q.Options, "") {
			story.Skipped = append(story.Skipped, fmt.Sprintf("question %d: %q", i+1, qo.Question))
			g.logger.Warn("dropped question", "source", g.Name(), "index", i+1)
			continue
		}
		story.Questions = append(story.Questions, q)
	}
	if len(story.Questions) == 0 {
		return nil, quiz.ErrNoQuestions
	}
	return story, nil
}
