package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/pinyin"
)

type itemRepo struct {
	db *sqlx.DB
}

type itemRow struct {
	ID            string `db:"id"`
	LearnerID     string `db:"learner_id"`
	Simplified    string `db:"simplified"`
	Traditional   string `db:"traditional"`
	Readings      string `db:"readings"`
	LockedReading int    `db:"locked_reading"`
	Drills        string `db:"drills"`
	CreatedAt     string `db:"created_at"`
}

// readingDoc is the persisted reading format. The syllable sequence is
// stored in its serialized triple form; see pinyin.ParseKey.
type readingDoc struct {
	Key      string   `json:"key"`
	Gloss    string   `json:"gloss,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

func (r *itemRepo) Save(ctx context.Context, it card.Item) error {
	readings, err := encodeReadings(it.Readings)
	if err != nil {
		return fmt.Errorf("encode readings for %s: %w", it.Simplified, err)
	}
	drills, err := json.Marshal(it.Drills)
	if err != nil {
		return fmt.Errorf("encode drills: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO items (id, learner_id, simplified, traditional, readings, locked_reading, drills)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.LearnerID, it.Simplified, it.Traditional, string(readings), it.LockedReading, string(drills))
	if err != nil {
		return fmt.Errorf("insert item %s: %w", it.Simplified, err)
	}
	return nil
}

func (r *itemRepo) Items(ctx context.Context, learnerID string) ([]card.Item, error) {
	var rows []itemRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM items WHERE learner_id = ? ORDER BY created_at, id`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	items := make([]card.Item, 0, len(rows))
	for _, row := range rows {
		it, err := decodeItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *itemRepo) ItemsByDrill(ctx context.Context, learnerID string, drill card.Drill) ([]card.Item, error) {
	all, err := r.Items(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	filtered := all[:0]
	for _, it := range all {
		if it.Applies(drill) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (r *itemRepo) SetLockedReading(ctx context.Context, learnerID, itemID string, idx int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET locked_reading = ? WHERE learner_id = ? AND id = ?`,
		idx, learnerID, itemID)
	if err != nil {
		return fmt.Errorf("set locked reading: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("set locked reading: item %s not found", itemID)
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, learnerID, itemID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM mastery_records WHERE learner_id = ? AND item_id = ?`, learnerID, itemID); err != nil {
		return fmt.Errorf("cascade ledger rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM items WHERE learner_id = ? AND id = ?`, learnerID, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return tx.Commit()
}

func encodeReadings(readings []pinyin.Pronunciation) ([]byte, error) {
	docs := make([]readingDoc, 0, len(readings))
	for _, p := range readings {
		docs = append(docs, readingDoc{
			Key:      p.Key(),
			Gloss:    p.Gloss,
			Examples: p.ExampleWords,
		})
	}
	return json.Marshal(docs)
}

func decodeReadings(raw string) ([]pinyin.Pronunciation, error) {
	var docs []readingDoc
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, fmt.Errorf("decode readings: %w", err)
	}
	readings := make([]pinyin.Pronunciation, 0, len(docs))
	for _, d := range docs {
		syllables, err := pinyin.ParseKey(d.Key)
		if err != nil {
			return nil, err
		}
		readings = append(readings, pinyin.Pronunciation{
			Syllables:    syllables,
			Gloss:        d.Gloss,
			ExampleWords: d.Examples,
		})
	}
	return readings, nil
}

func decodeItem(row itemRow) (card.Item, error) {
	it := card.Item{
		ID:            row.ID,
		LearnerID:     row.LearnerID,
		Simplified:    row.Simplified,
		Traditional:   row.Traditional,
		LockedReading: row.LockedReading,
	}
	if row.Readings != "" && row.Readings != "[]" {
		readings, err := decodeReadings(row.Readings)
		if err != nil {
			return card.Item{}, fmt.Errorf("item %s: %w", row.ID, err)
		}
		it.Readings = readings
	}
	if err := json.Unmarshal([]byte(row.Drills), &it.Drills); err != nil {
		return card.Item{}, fmt.Errorf("item %s: decode drills: %w", row.ID, err)
	}
	return it, nil
}

// isNoRows distinguishes missing rows for callers that treat absence as
// a first-class state.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
