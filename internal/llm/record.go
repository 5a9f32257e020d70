package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/storybuddy/internal/store"
)

// RequestLog is where completed requests are written.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type recorded struct {
	next     Provider
	provider string
	log      RequestLog
	logger   *slog.Logger
}

// WithRecording writes every request, successful or not, to log.
func WithRecording(p Provider, providerName string, log RequestLog, logger *slog.Logger) Provider {
	return &recorded{next: p, provider: providerName, log: log, logger: logger}
}

func (r *recorded) Model() string { return r.next.Model() }

func (r *recorded) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := r.next.Complete(ctx, p)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.next.Model(),
		Purpose:     p.Purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(p),
	}
	if c != nil {
		ev.Model = c.Model
		ev.InputTokens = c.InputTokens
		ev.OutputTokens = c.OutputTokens
		ev.ResponseBody = string(c.JSON)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		r.logger.Warn("llm request failed", "provider", r.provider, "purpose", p.Purpose, "error", err)
	} else {
		r.logger.Debug("llm request", "provider", r.provider, "model", ev.Model,
			"purpose", p.Purpose, "latency_ms", ev.LatencyMs)
	}

	if lerr := r.log.AppendLLMRequest(context.WithoutCancel(ctx), ev); lerr != nil {
		r.logger.Error("record llm request", "error", lerr)
	}
	return c, err
}

// transcript renders a prompt for the request log.
func transcript(p Prompt) string {
	var b strings.Builder
	if p.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", p.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", p.User)
	if p.Schema != nil {
		if def, err := json.Marshal(p.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", p.Schema.Name, def)
		}
	}
	return b.String()
}
