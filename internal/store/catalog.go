package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/suyin/hanlian/internal/confusion"
	"github.com/suyin/hanlian/internal/matchround"
	"github.com/suyin/hanlian/internal/pinyin"
)

type catalogRepo struct {
	db *sqlx.DB
}

type pairRow struct {
	Word          string `db:"word"`
	FirstChar     string `db:"first_char"`
	FirstReading  string `db:"first_reading"`
	SecondChar    string `db:"second_char"`
	SecondReading string `db:"second_reading"`
}

func (r *catalogRepo) WordPairs(ctx context.Context) ([]matchround.WordPair, error) {
	var rows []pairRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM word_pairs ORDER BY word`); err != nil {
		return nil, fmt.Errorf("select word pairs: %w", err)
	}

	pairs := make([]matchround.WordPair, 0, len(rows))
	for _, row := range rows {
		first, err := decodePairCharacter(row.FirstChar, row.FirstReading)
		if err != nil {
			return nil, fmt.Errorf("pair %s: %w", row.Word, err)
		}
		second, err := decodePairCharacter(row.SecondChar, row.SecondReading)
		if err != nil {
			return nil, fmt.Errorf("pair %s: %w", row.Word, err)
		}
		pairs = append(pairs, matchround.WordPair{
			Word:   row.Word,
			First:  first,
			Second: second,
		})
	}
	return pairs, nil
}

func (r *catalogRepo) FormPool(ctx context.Context) ([]string, error) {
	// The widened script-drill pool: catalog words plus their constituent
	// characters, so both one- and two-character forms are available.
	var forms []string
	err := r.db.SelectContext(ctx, &forms, `
		SELECT word FROM word_pairs
		UNION SELECT first_char FROM word_pairs
		UNION SELECT second_char FROM word_pairs`)
	if err != nil {
		return nil, fmt.Errorf("select form pool: %w", err)
	}
	return forms, nil
}

func (r *catalogRepo) ConfusionTables(ctx context.Context) (*confusion.Tables, error) {
	var data string
	err := r.db.GetContext(ctx, &data, `
		SELECT data FROM confusion_tables ORDER BY version DESC LIMIT 1`)
	if isNoRows(err) {
		// No curated upload yet: the built-in defaults apply.
		return confusion.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select confusion tables: %w", err)
	}

	var t confusion.Tables
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("decode confusion tables: %w", err)
	}
	return &t, nil
}

// SaveWordPairs replaces the word-pair catalog. Used by seeding.
func (s *Store) SaveWordPairs(ctx context.Context, pairs []matchround.WordPair) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_pairs`); err != nil {
		return fmt.Errorf("clear word pairs: %w", err)
	}
	for _, p := range pairs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO word_pairs (word, first_char, first_reading, second_char, second_reading)
			VALUES (?, ?, ?, ?, ?)`,
			p.Word, p.First.Character, p.First.Reading.Key(), p.Second.Character, p.Second.Reading.Key())
		if err != nil {
			return fmt.Errorf("insert pair %s: %w", p.Word, err)
		}
	}
	return tx.Commit()
}

// SaveConfusionTables stores a curated tables revision. Used by seeding.
func (s *Store) SaveConfusionTables(ctx context.Context, t *confusion.Tables) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode confusion tables: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO confusion_tables (version, data) VALUES (?, ?)
		ON CONFLICT (version) DO UPDATE SET data = excluded.data`,
		t.Version, string(data))
	if err != nil {
		return fmt.Errorf("save confusion tables: %w", err)
	}
	return nil
}

func decodePairCharacter(ch, readingKey string) (matchround.PairCharacter, error) {
	pc := matchround.PairCharacter{Character: ch}
	if readingKey != "" {
		syllables, err := pinyin.ParseKey(readingKey)
		if err != nil {
			return matchround.PairCharacter{}, err
		}
		pc.Reading = pinyin.Pronunciation{Syllables: syllables}
	}
	return pc, nil
}
