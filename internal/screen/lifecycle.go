package screen

import (
	"context"
	"sync/atomic"
)

// Token identifies one generation of a screen's async work. Tokens are
// unique across all screens, so a message from a torn-down screen can never
// match a newer screen of the same type.
type Token uint64

var lastToken atomic.Uint64

// Lifecycle tracks the current generation of a screen. Async results and
// timer ticks carry the Token they were started under and are dropped when
// Valid reports false. The zero value is ready to use.
type Lifecycle struct {
	current  Token
	disposed bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// Begin starts a new generation, invalidating every earlier token and
// cancelling its context.
func (l *Lifecycle) Begin() Token {
	if l.cancel != nil {
		l.cancel()
	}
	l.current = Token(lastToken.Add(1))
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.disposed = false
	return l.current
}

// Current returns the active token, starting a generation if none exists.
func (l *Lifecycle) Current() Token {
	if l.current == 0 && !l.disposed {
		return l.Begin()
	}
	return l.current
}

// Context is cancelled when the generation ends or the screen is disposed.
func (l *Lifecycle) Context() context.Context {
	if l.ctx == nil {
		if l.disposed {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}
		l.Begin()
	}
	return l.ctx
}

// Valid reports whether t belongs to the live generation.
func (l *Lifecycle) Valid(t Token) bool {
	return !l.disposed && t != 0 && t == l.current
}

// Dispose ends the screen's life. All tokens become invalid.
func (l *Lifecycle) Dispose() {
	if l.cancel != nil {
		l.cancel()
	}
	l.disposed = true
}

// Disposed reports whether Dispose has been called.
func (l *Lifecycle) Disposed() bool {
	return l.disposed
}
