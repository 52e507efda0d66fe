package engine

import (
	"context"
	"fmt"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/ledger"
)

// DrillStats counts a learner's items by derived state for one drill.
type DrillStats struct {
	Unattempted int
	InProgress  int
	Struggling  int
	Known       int
}

// Total returns the number of items the drill applies to.
func (d DrillStats) Total() int {
	return d.Unattempted + d.InProgress + d.Struggling + d.Known
}

// Stats summarizes a learner's progress across the ledger-tracked drills.
type Stats struct {
	Items  int
	Drills map[card.Drill]DrillStats

	// KnownItems counts items known under the all-drills-AND rule.
	KnownItems int
}

// Stats derives the learner's progress summary from the item and ledger
// stores.
func (e *Engine) Stats(ctx context.Context, learnerID string) (Stats, error) {
	items, err := e.items.Items(ctx, learnerID)
	if err != nil {
		return Stats{}, fmt.Errorf("fetch items: %w", err)
	}

	stats := Stats{
		Items:  len(items),
		Drills: map[card.Drill]DrillStats{},
	}

	byDrill := map[card.Drill]map[string]*ledger.Record{}
	for _, drill := range []card.Drill{card.DrillPinyin, card.DrillScript} {
		records, err := e.ledger.RecordsByDrill(ctx, learnerID, drill)
		if err != nil {
			return Stats{}, fmt.Errorf("fetch %s records: %w", drill, err)
		}
		byDrill[drill] = records
	}

	for _, it := range items {
		itemRecords := map[card.Drill]*ledger.Record{}
		for _, drill := range it.Drills {
			if drill == card.DrillMatching {
				continue
			}
			rec := byDrill[drill][it.ID]
			itemRecords[drill] = rec

			ds := stats.Drills[drill]
			switch rec.State() {
			case ledger.StateUnattempted:
				ds.Unattempted++
			case ledger.StateStruggling:
				ds.Struggling++
			case ledger.StateKnown:
				ds.Known++
			default:
				ds.InProgress++
			}
			stats.Drills[drill] = ds
		}
		if ledger.ItemKnown(it, itemRecords) {
			stats.KnownItems++
		}
	}
	return stats, nil
}
