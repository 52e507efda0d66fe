package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type attemptRepo struct {
	db *sqlx.DB
}

func (r *attemptRepo) Append(ctx context.Context, a Attempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts (id, learner_id, item_id, drill, outcome, points, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.LearnerID, a.ItemID, string(a.Drill), int(a.Outcome), a.Points, encodeTime(a.At))
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}
