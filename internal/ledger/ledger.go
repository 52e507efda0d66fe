// Package ledger holds the per (learner, item, drill) mastery aggregates
// and the attempt state machine that updates them. "Known" is always
// derived from the counters, never stored.
package ledger

import (
	"time"

	"github.com/suyin/hanlian/internal/card"
)

// Points awarded per attempt outcome.
const (
	PointsFirstTry  = 1.0
	PointsSecondTry = 0.5
	PointsMiss      = 0.0
)

// StrugglingThreshold is the consecutive-miss count at which an item is
// considered struggling.
const StrugglingThreshold = 2

// KnownSuccessCount is the total successes required before a drill counts
// as known.
const KnownSuccessCount = 2

// Outcome summarizes a single two-try attempt at one question.
type Outcome int

const (
	// FirstTryCorrect: correct on the first try.
	FirstTryCorrect Outcome = iota
	// SecondTryCorrect: wrong first, correct on the retry.
	SecondTryCorrect
	// Miss: wrong on both tries.
	Miss
)

// Points returns the score awarded for the outcome.
func (o Outcome) Points() float64 {
	switch o {
	case FirstTryCorrect:
		return PointsFirstTry
	case SecondTryCorrect:
		return PointsSecondTry
	default:
		return PointsMiss
	}
}

// Record is the mastery aggregate for one (learner, item, drill). Created
// lazily on the first attempt; a nil *Record means "never practiced".
// All counters are monotonic except ConsecutiveMisses, which resets to
// zero on any success.
type Record struct {
	LearnerID string
	ItemID    string
	Drill     card.Drill

	FirstTrySuccesses  int
	SecondTrySuccesses int
	ConsecutiveMisses  int

	LastAttemptAt time.Time
	LastSuccessAt time.Time
}

// State is the derived lifecycle position of a record.
type State string

const (
	StateUnattempted State = "unattempted"
	StateInProgress  State = "in_progress"
	StateStruggling  State = "struggling"
	StateKnown       State = "known"
)

// Successes returns the total success count across both tries.
func (r *Record) Successes() int {
	if r == nil {
		return 0
	}
	return r.FirstTrySuccesses + r.SecondTrySuccesses
}

// Struggling reports whether the miss streak has reached the threshold.
func (r *Record) Struggling() bool {
	return r != nil && r.ConsecutiveMisses >= StrugglingThreshold
}

// Known is the derived predicate: at least two total successes and a miss
// streak below the struggling threshold.
func (r *Record) Known() bool {
	return r != nil && r.Successes() >= KnownSuccessCount && !r.Struggling()
}

// State derives the record's lifecycle position.
func (r *Record) State() State {
	switch {
	case r == nil:
		return StateUnattempted
	case r.Struggling():
		return StateStruggling
	case r.Known():
		return StateKnown
	default:
		return StateInProgress
	}
}

// Apply folds one attempt outcome into the record at the given time and
// returns the points awarded.
func (r *Record) Apply(o Outcome, at time.Time) float64 {
	r.LastAttemptAt = at
	switch o {
	case FirstTryCorrect:
		r.FirstTrySuccesses++
		r.ConsecutiveMisses = 0
		r.LastSuccessAt = at
	case SecondTryCorrect:
		r.SecondTrySuccesses++
		r.ConsecutiveMisses = 0
		r.LastSuccessAt = at
	case Miss:
		r.ConsecutiveMisses++
	}
	return o.Points()
}

// ItemKnown reports whether every ledger-tracked drill applicable to the
// item satisfies the known predicate. The matching drill carries no ledger
// state and is skipped. AND across drills: one strong drill never carries
// an item.
func ItemKnown(it card.Item, records map[card.Drill]*Record) bool {
	tracked := 0
	for _, d := range it.Drills {
		if d == card.DrillMatching {
			continue
		}
		tracked++
		if !records[d].Known() {
			return false
		}
	}
	return tracked > 0
}
