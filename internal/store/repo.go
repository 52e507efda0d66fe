package store

import (
	"context"
	"time"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/confusion"
	"github.com/suyin/hanlian/internal/ledger"
	"github.com/suyin/hanlian/internal/matchround"
)

// ItemRepo reads and writes a learner's saved items.
type ItemRepo interface {
	// Save persists a new item.
	Save(ctx context.Context, it card.Item) error

	// ItemsByDrill returns the learner's items to which the drill applies.
	ItemsByDrill(ctx context.Context, learnerID string, drill card.Drill) ([]card.Item, error)

	// Items returns all of the learner's items.
	Items(ctx context.Context, learnerID string) ([]card.Item, error)

	// SetLockedReading pins (or, with card.NoLockedReading, unpins) the
	// item's reading. The only mutable item field.
	SetLockedReading(ctx context.Context, learnerID, itemID string, idx int) error

	// Delete removes an item and cascades its ledger rows.
	Delete(ctx context.Context, learnerID, itemID string) error
}

// LedgerRepo reads and upserts mastery records. Absence of a record is
// the first-class "never practiced" case: reads return nil, not an error.
type LedgerRepo interface {
	// Record returns one record, or nil when never attempted.
	Record(ctx context.Context, learnerID, itemID string, drill card.Drill) (*ledger.Record, error)

	// RecordsByDrill returns the learner's records for one drill, keyed
	// by item ID.
	RecordsByDrill(ctx context.Context, learnerID string, drill card.Drill) (map[string]*ledger.Record, error)

	// RecordsForItem returns one item's records keyed by drill.
	RecordsForItem(ctx context.Context, learnerID, itemID string) (map[card.Drill]*ledger.Record, error)

	// Upsert writes the aggregate. Last write wins; the counters are
	// monotonic aggregates, so a lost increment only delays promotion.
	Upsert(ctx context.Context, rec *ledger.Record) error
}

// CatalogRepo reads the static curated content. Read-only to the engine.
type CatalogRepo interface {
	// WordPairs returns the two-character word catalog.
	WordPairs(ctx context.Context) ([]matchround.WordPair, error)

	// FormPool returns catalog forms usable as widened script-drill
	// distractors.
	FormPool(ctx context.Context) ([]string, error)

	// ConfusionTables returns the curated confusion tables.
	ConfusionTables(ctx context.Context) (*confusion.Tables, error)
}

// Attempt is one append-only history event. The ledger is the
// materialized aggregate over these; the engine never replays them.
type Attempt struct {
	ID        string
	LearnerID string
	ItemID    string
	Drill     card.Drill
	Outcome   ledger.Outcome
	Points    float64
	At        time.Time
}

// AttemptRepo appends attempt history for analytics and debugging. Not
// required for engine correctness.
type AttemptRepo interface {
	Append(ctx context.Context, a Attempt) error
}
