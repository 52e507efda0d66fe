// Package scoring consumes attempt outcomes and writes them back to the
// mastery ledger. A ledger write is never silently dropped: transient
// failures retry with backoff, and exhaustion surfaces to the caller so
// points shown to the learner reconcile with the stored counters.
package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suyin/hanlian/internal/backoff"
	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/ledger"
	"github.com/suyin/hanlian/internal/store"
)

// Result reports one scored attempt.
type Result struct {
	Points float64
	Record ledger.Record

	// Known is the drill-level known predicate after this attempt.
	Known bool

	// Promoted is true when this attempt flipped the drill to known.
	Promoted bool
}

// Service applies attempts to the ledger.
type Service struct {
	ledger   store.LedgerRepo
	attempts store.AttemptRepo
	policy   backoff.Policy
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a scoring service. attempts may be nil when no
// attempt history is kept; a nil logger disables logging.
func NewService(ledgerRepo store.LedgerRepo, attempts store.AttemptRepo, policy backoff.Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:   ledgerRepo,
		attempts: attempts,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordAttempt folds one attempt outcome into the (learner, item, drill)
// record, creating it lazily on first attempt, and upserts it.
func (s *Service) RecordAttempt(ctx context.Context, learnerID, itemID string, drill card.Drill, outcome ledger.Outcome) (Result, error) {
	if drill == card.DrillMatching {
		return Result{}, backoff.Permanent(fmt.Errorf("the matching drill carries no mastery state"))
	}
	if learnerID == "" || itemID == "" {
		return Result{}, backoff.Permanent(fmt.Errorf("learner and item IDs are required"))
	}

	var rec *ledger.Record
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		rec, err = s.ledger.Record(ctx, learnerID, itemID, drill)
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("read ledger record: %w", err)
	}
	if rec == nil {
		rec = &ledger.Record{LearnerID: learnerID, ItemID: itemID, Drill: drill}
	}

	knownBefore := rec.Known()
	at := s.now()
	points := rec.Apply(outcome, at)

	err = s.policy.Do(ctx, func(ctx context.Context) error {
		return s.ledger.Upsert(ctx, rec)
	})
	if err != nil {
		// The attempt must not silently vanish: the caller decides how to
		// reconcile what the learner already saw.
		return Result{}, fmt.Errorf("persist attempt for item %s: %w", itemID, err)
	}

	s.appendHistory(ctx, store.Attempt{
		ID:        uuid.NewString(),
		LearnerID: learnerID,
		ItemID:    itemID,
		Drill:     drill,
		Outcome:   outcome,
		Points:    points,
		At:        at,
	})

	return Result{
		Points:   points,
		Record:   *rec,
		Known:    rec.Known(),
		Promoted: !knownBefore && rec.Known(),
	}, nil
}

// appendHistory writes the append-only attempt event. History is for
// analytics, not correctness, so failures are logged and swallowed.
func (s *Service) appendHistory(ctx context.Context, a store.Attempt) {
	if s.attempts == nil {
		return
	}
	if err := s.attempts.Append(ctx, a); err != nil {
		s.logger.Warn("failed to append attempt history",
			zap.String("item_id", a.ItemID),
			zap.String("drill", string(a.Drill)),
			zap.Error(err))
	}
}
