package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// globalCounter orders attempts and LLM requests against each other.
const globalCounter = "global"

// sequence hands out monotonic numbers from a named row in counters.
type sequence struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

func (s *sequence) next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO counters (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = value + 1
		RETURNING value`, s.name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", s.name, err)
	}
	return n, nil
}
