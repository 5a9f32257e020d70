package llm

import (
	"context"
	"log/slog"
	"time"
)

// NewProvider builds the configured provider. Requests are recorded in log
// when it is non-nil, then retried, then bounded by cfg.Timeout.
func NewProvider(ctx context.Context, cfg Config, log RequestLog, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var p Provider
	switch cfg.Provider {
	case ProviderAnthropic:
		p = newAnthropic(cfg)
	case ProviderOpenAI, ProviderOpenRouter:
		p = newOpenAI(cfg.Provider, cfg)
	case ProviderGemini:
		g, err := newGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p = g
	case ProviderStub:
		p = NewStub(StubReply{Text: stubStory})
	}
	logger.Info("llm provider ready", "provider", cfg.Provider, "model", p.Model())

	if log != nil {
		p = WithRecording(p, cfg.Provider, log, logger)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = withTimeout{p, cfg.Timeout}
	}
	return p, nil
}

type withTimeout struct {
	Provider
	d time.Duration
}

func (t withTimeout) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Provider.Complete(ctx, p)
}
