package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Level(ctx context.Context, fallback int) (int, error) {
	var level int
	err := r.db.QueryRowContext(ctx, `SELECT level FROM learner_profile WHERE id = 1`).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("query level: %w", err)
	}
	return level, nil
}

func (r *profileRepo) SetLevel(ctx context.Context, level int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO learner_profile (id, level, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`,
		level, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	return nil
}
