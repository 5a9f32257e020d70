package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx replies.
	KindUnavailable ErrorKind = iota
	KindRateLimited
	// KindInvalidOutput means the reply was not the JSON that was asked for.
	KindInvalidOutput
	// KindTruncated means the reply hit the token limit.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is returned by every provider.
type Error struct {
	Kind     ErrorKind
	Provider string
	Status   int

	// RetryAfter is the server's hint for rate limits, zero if absent.
	RetryAfter time.Duration

	// Output holds the offending reply for KindInvalidOutput and KindTruncated.
	Output json.RawMessage
	Err    error
}

func (e *Error) Error() string {
	msg := "llm"
	if e.Provider != "" {
		msg += " " + e.Provider
	}
	msg += ": " + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary reports whether the same request may succeed later.
func (e *Error) Temporary() bool {
	return e.Kind == KindUnavailable || e.Kind == KindRateLimited
}

// statusError classifies an SDK error carrying an HTTP status.
func statusError(provider string, status int, err error) *Error {
	kind := KindUnavailable
	if status == http.StatusTooManyRequests {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Provider: provider, Status: status, Err: err}
}
