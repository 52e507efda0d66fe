// Package priority maps a mastery record (or its absence) to a practice
// priority. Lower is more urgent. Tier bases dominate; the fine-grained
// terms are strictly bounded so tiers can never interleave.
package priority

import (
	"fmt"
	"time"

	"github.com/suyin/hanlian/internal/ledger"
)

// Tier bases. Never-practiced items are the most urgent tier.
const (
	baseNever      = 1000.0
	baseStruggling = 2000.0
	baseNotKnown   = 3000.0
	baseKnown      = 4000.0

	// Struggling items sort by streak depth, then recency. The miss term
	// is capped at maxMissTerm and the struggling recency term halved so
	// their sum stays below the 1000-wide tier gap.
	missWeight  = 100.0
	maxMissTerm = 500.0

	recencyCap = 999.0
)

// Score is a priority paired with its human-readable reason.
type Score struct {
	Priority float64
	Reason   string
}

// Compute scores a record against the given clock. A nil record means the
// item was never practiced.
func Compute(rec *ledger.Record, now time.Time) Score {
	if rec == nil {
		return Score{Priority: baseNever, Reason: "Never practiced"}
	}

	recency := recencyTerm(rec.LastAttemptAt, now)

	if rec.Struggling() {
		missTerm := missWeight * float64(rec.ConsecutiveMisses)
		if missTerm > maxMissTerm {
			missTerm = maxMissTerm
		}
		return Score{
			Priority: baseStruggling + missTerm + recency/2,
			Reason:   fmt.Sprintf("Struggling (%d misses in a row)", rec.ConsecutiveMisses),
		}
	}
	if rec.Successes() < ledger.KnownSuccessCount {
		return Score{
			Priority: baseNotKnown + recency,
			Reason:   fmt.Sprintf("Still learning (%d of %d successes)", rec.Successes(), ledger.KnownSuccessCount),
		}
	}
	return Score{
		Priority: baseKnown + recency,
		Reason:   "Known, due for refresh",
	}
}

// recencyTerm decays from just under recencyCap toward zero as the last
// attempt ages, so older records sort first within a tier.
func recencyTerm(lastAttempt, now time.Time) float64 {
	age := now.Sub(lastAttempt)
	if age < 0 {
		age = 0
	}
	hours := age.Hours()
	return recencyCap * (1.0 / (1.0 + hours))
}
