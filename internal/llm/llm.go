// Package llm asks a language model for one structured completion. It is
// the fallback story source when the story service cannot be reached.
package llm

import (
	"context"
	"encoding/json"
)

// Provider completes a single prompt.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)
	Model() string
}

// Prompt is a single-turn request. When Schema is set the provider asks for
// JSON output and the reply is checked against it before it is returned.
type Prompt struct {
	// Purpose labels the request in the request log.
	Purpose string

	System      string
	User        string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Completion is the model output.
type Completion struct {
	// JSON is the reply body. Without a schema it is the raw text.
	JSON  json.RawMessage
	Model string

	InputTokens  int
	OutputTokens int
}

// Decode unmarshals the reply into v.
func (c *Completion) Decode(v any) error {
	if err := json.Unmarshal(c.JSON, v); err != nil {
		return &Error{Kind: KindInvalidOutput, Output: c.JSON, Err: err}
	}
	return nil
}
