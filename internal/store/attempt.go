package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// attemptRepo implements AttemptStore on the quiz_attempts table.
type attemptRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *attemptRepo) Save(ctx context.Context, a Attempt) error {
	if a.Total < 0 || a.Score < 0 || a.Score > a.Total {
		return fmt.Errorf("invalid attempt score %d/%d", a.Score, a.Total)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Date == "" {
		a.Date = a.CreatedAt.Format(DateLayout)
	}

	seqNum, err := r.seq.next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id, sequence, date, score, total, level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, seqNum, a.Date, a.Score, a.Total, a.Level, a.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Load(ctx context.Context) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, score, total, level, created_at
		 FROM quiz_attempts ORDER BY sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.Date, &a.Score, &a.Total, &a.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
