// Package queue builds the ordered practice queue: saved items joined
// with their ledger state, scored, sorted most-urgent-first, and bounded.
package queue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/ledger"
	"github.com/suyin/hanlian/internal/pinyin"
	"github.com/suyin/hanlian/internal/priority"
	"github.com/suyin/hanlian/internal/store"
)

// Entry is one queued item with everything the caller needs to render it.
type Entry struct {
	Item card.Item

	// Reading is the effective pronunciation for the pinyin drill;
	// unset for the script drill.
	Reading pinyin.Pronunciation

	Score  priority.Score
	Record *ledger.Record
}

// Builder derives practice queues from the item and ledger stores.
type Builder struct {
	items  store.ItemRepo
	ledger store.LedgerRepo
	logger *zap.Logger
	now    func() time.Time
}

// NewBuilder creates a Builder. A nil logger disables logging.
func NewBuilder(items store.ItemRepo, ledgerRepo store.LedgerRepo, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		items:  items,
		ledger: ledgerRepo,
		logger: logger,
		now:    time.Now,
	}
}

// Build returns up to limit items for the drill, most urgent first.
//
// Items missing required pronunciation data are excluded and logged as
// data-quality defects; a broken item never takes down the queue.
func (b *Builder) Build(ctx context.Context, learnerID string, drill card.Drill, limit int) ([]Entry, error) {
	if drill == card.DrillMatching {
		return nil, fmt.Errorf("matching rounds are built by the round builder, not the queue")
	}

	items, err := b.items.ItemsByDrill(ctx, learnerID, drill)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	records, err := b.ledger.RecordsByDrill(ctx, learnerID, drill)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger records: %w", err)
	}

	now := b.now()
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entry := Entry{Item: it, Record: records[it.ID]}

		if drill == card.DrillPinyin {
			reading, ok := it.EffectiveReading()
			if !ok || len(reading.Syllables) == 0 {
				b.logger.Warn("excluding item with missing pronunciation data",
					zap.String("item_id", it.ID),
					zap.String("form", it.Simplified),
					zap.String("drill", string(drill)))
				continue
			}
			entry.Reading = reading
		}

		entry.Score = priority.Compute(entry.Record, now)
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score.Priority != entries[j].Score.Priority {
			return entries[i].Score.Priority < entries[j].Score.Priority
		}
		return entries[i].Item.ID < entries[j].Item.ID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
