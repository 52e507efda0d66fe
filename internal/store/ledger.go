package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/ledger"
)

type ledgerRepo struct {
	db *sqlx.DB
}

type recordRow struct {
	LearnerID          string `db:"learner_id"`
	ItemID             string `db:"item_id"`
	Drill              string `db:"drill"`
	FirstTrySuccesses  int    `db:"first_try_successes"`
	SecondTrySuccesses int    `db:"second_try_successes"`
	ConsecutiveMisses  int    `db:"consecutive_misses"`
	LastAttemptAt      string `db:"last_attempt_at"`
	LastSuccessAt      string `db:"last_success_at"`
}

func (r *ledgerRepo) Record(ctx context.Context, learnerID, itemID string, drill card.Drill) (*ledger.Record, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, `
		SELECT * FROM mastery_records WHERE learner_id = ? AND item_id = ? AND drill = ?`,
		learnerID, itemID, string(drill))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select record: %w", err)
	}
	return decodeRecord(row), nil
}

func (r *ledgerRepo) RecordsByDrill(ctx context.Context, learnerID string, drill card.Drill) (map[string]*ledger.Record, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM mastery_records WHERE learner_id = ? AND drill = ?`,
		learnerID, string(drill))
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	records := make(map[string]*ledger.Record, len(rows))
	for _, row := range rows {
		records[row.ItemID] = decodeRecord(row)
	}
	return records, nil
}

func (r *ledgerRepo) RecordsForItem(ctx context.Context, learnerID, itemID string) (map[card.Drill]*ledger.Record, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM mastery_records WHERE learner_id = ? AND item_id = ?`,
		learnerID, itemID)
	if err != nil {
		return nil, fmt.Errorf("select item records: %w", err)
	}
	records := make(map[card.Drill]*ledger.Record, len(rows))
	for _, row := range rows {
		records[card.Drill(row.Drill)] = decodeRecord(row)
	}
	return records, nil
}

func (r *ledgerRepo) Upsert(ctx context.Context, rec *ledger.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mastery_records
			(learner_id, item_id, drill, first_try_successes, second_try_successes,
			 consecutive_misses, last_attempt_at, last_success_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, item_id, drill) DO UPDATE SET
			first_try_successes  = excluded.first_try_successes,
			second_try_successes = excluded.second_try_successes,
			consecutive_misses   = excluded.consecutive_misses,
			last_attempt_at      = excluded.last_attempt_at,
			last_success_at      = excluded.last_success_at`,
		rec.LearnerID, rec.ItemID, string(rec.Drill),
		rec.FirstTrySuccesses, rec.SecondTrySuccesses, rec.ConsecutiveMisses,
		encodeTime(rec.LastAttemptAt), encodeTime(rec.LastSuccessAt))
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func decodeRecord(row recordRow) *ledger.Record {
	return &ledger.Record{
		LearnerID:          row.LearnerID,
		ItemID:             row.ItemID,
		Drill:              card.Drill(row.Drill),
		FirstTrySuccesses:  row.FirstTrySuccesses,
		SecondTrySuccesses: row.SecondTrySuccesses,
		ConsecutiveMisses:  row.ConsecutiveMisses,
		LastAttemptAt:      decodeTime(row.LastAttemptAt),
		LastSuccessAt:      decodeTime(row.LastSuccessAt),
	}
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
