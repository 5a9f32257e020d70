package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryPolicy controls how temporary failures are retried. Invalid output
// is retried once; truncation and cancellation never are.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy is three attempts starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}
}

// delay is the wait before retry n (0-based): doubling from BaseDelay,
// capped at MaxDelay, with up to 20% jitter either way.
func (rp RetryPolicy) delay(n int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := min(rp.BaseDelay<<n, rp.MaxDelay)
	if d <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Int64N(int64(d)/5*2+1)) - d/5
	return d + jitter
}

type retrying struct {
	next   Provider
	policy RetryPolicy
	sleep  func(context.Context, time.Duration) error
}

// WithRetry retries temporary failures of p according to policy.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	return &retrying{next: p, policy: policy, sleep: sleepCtx}
}

func (r *retrying) Model() string { return r.next.Model() }

func (r *retrying) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	attempts := max(r.policy.Attempts, 1)
	invalidSeen := false

	var err error
	for n := range attempts {
		var c *Completion
		if c, err = r.next.Complete(ctx, p); err == nil {
			return c, nil
		}
		if !retryable(err, &invalidSeen) || n == attempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.policy.delay(n, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	switch e.Kind {
	case KindTruncated:
		return false
	case KindInvalidOutput:
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
