package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/suyin/hanlian/internal/backoff"
	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/ledger"
	"github.com/suyin/hanlian/internal/store"
)

// flakyLedger implements store.LedgerRepo with scriptable failures.
type flakyLedger struct {
	records      map[string]*ledger.Record
	upsertFails  int
	upsertCalls  int
	lastUpserted *ledger.Record
	readErr      error
}

func key(itemID string, drill card.Drill) string {
	return itemID + "/" + string(drill)
}

func (f *flakyLedger) Record(_ context.Context, _, itemID string, drill card.Drill) (*ledger.Record, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.records[key(itemID, drill)], nil
}
func (f *flakyLedger) RecordsByDrill(context.Context, string, card.Drill) (map[string]*ledger.Record, error) {
	return nil, nil
}
func (f *flakyLedger) RecordsForItem(context.Context, string, string) (map[card.Drill]*ledger.Record, error) {
	return nil, nil
}
func (f *flakyLedger) Upsert(_ context.Context, rec *ledger.Record) error {
	f.upsertCalls++
	if f.upsertCalls <= f.upsertFails {
		return errors.New("transient write failure")
	}
	cp := *rec
	f.lastUpserted = &cp
	if f.records == nil {
		f.records = map[string]*ledger.Record{}
	}
	f.records[key(rec.ItemID, rec.Drill)] = &cp
	return nil
}

// recordingAttempts implements store.AttemptRepo.
type recordingAttempts struct {
	appended []store.Attempt
	err      error
}

func (r *recordingAttempts) Append(_ context.Context, a store.Attempt) error {
	if r.err != nil {
		return r.err
	}
	r.appended = append(r.appended, a)
	return nil
}

func fastPolicy() backoff.Policy {
	return backoff.Policy{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRecordAttempt_FirstTryPromotesToKnown(t *testing.T) {
	repo := &flakyLedger{records: map[string]*ledger.Record{
		key("item-1", card.DrillPinyin): {
			LearnerID: "learner-1", ItemID: "item-1", Drill: card.DrillPinyin,
			FirstTrySuccesses: 1,
		},
	}}
	svc := NewService(repo, nil, fastPolicy(), nil)

	res, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillPinyin, ledger.FirstTryCorrect)
	if err != nil {
		t.Fatal(err)
	}
	if res.Points != 1.0 {
		t.Errorf("Points = %v, want 1.0", res.Points)
	}
	if res.Record.FirstTrySuccesses != 2 {
		t.Errorf("FirstTrySuccesses = %d, want 2", res.Record.FirstTrySuccesses)
	}
	if !res.Known || !res.Promoted {
		t.Errorf("Known=%v Promoted=%v, want both true", res.Known, res.Promoted)
	}
}

func TestRecordAttempt_SecondMissDemotes(t *testing.T) {
	repo := &flakyLedger{records: map[string]*ledger.Record{
		key("item-1", card.DrillScript): {
			LearnerID: "learner-1", ItemID: "item-1", Drill: card.DrillScript,
			FirstTrySuccesses: 2, ConsecutiveMisses: 1,
		},
	}}
	svc := NewService(repo, nil, fastPolicy(), nil)

	res, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillScript, ledger.Miss)
	if err != nil {
		t.Fatal(err)
	}
	if res.Points != 0 {
		t.Errorf("Points = %v, want 0", res.Points)
	}
	if res.Record.ConsecutiveMisses != 2 {
		t.Errorf("ConsecutiveMisses = %d, want 2", res.Record.ConsecutiveMisses)
	}
	if res.Known {
		t.Error("two misses in a row must demote even with banked successes")
	}
}

func TestRecordAttempt_LazyRecordCreation(t *testing.T) {
	repo := &flakyLedger{}
	svc := NewService(repo, nil, fastPolicy(), nil)

	res, err := svc.RecordAttempt(context.Background(), "learner-1", "item-9", card.DrillPinyin, ledger.SecondTryCorrect)
	if err != nil {
		t.Fatal(err)
	}
	if res.Points != 0.5 {
		t.Errorf("Points = %v, want 0.5", res.Points)
	}
	if repo.lastUpserted == nil || repo.lastUpserted.SecondTrySuccesses != 1 {
		t.Fatalf("record not created lazily: %+v", repo.lastUpserted)
	}
}

func TestRecordAttempt_RetriesTransientWrites(t *testing.T) {
	repo := &flakyLedger{upsertFails: 2}
	svc := NewService(repo, nil, fastPolicy(), nil)

	if _, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillPinyin, ledger.FirstTryCorrect); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if repo.upsertCalls != 3 {
		t.Errorf("upsert calls = %d, want 3", repo.upsertCalls)
	}
}

func TestRecordAttempt_SurfacesExhaustedWrites(t *testing.T) {
	repo := &flakyLedger{upsertFails: 99}
	svc := NewService(repo, nil, fastPolicy(), nil)

	if _, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillPinyin, ledger.FirstTryCorrect); err == nil {
		t.Fatal("exhausted writes must surface, not vanish")
	}
}

func TestRecordAttempt_MatchingDrillRejected(t *testing.T) {
	svc := NewService(&flakyLedger{}, nil, fastPolicy(), nil)
	_, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillMatching, ledger.FirstTryCorrect)
	var perm *backoff.PermanentError
	if !errors.As(err, &perm) {
		t.Fatalf("err = %v, want permanent rejection", err)
	}
}

func TestRecordAttempt_AttemptHistoryBestEffort(t *testing.T) {
	repo := &flakyLedger{}
	attempts := &recordingAttempts{err: errors.New("analytics down")}
	svc := NewService(repo, attempts, fastPolicy(), nil)

	// History failure must not fail the attempt.
	if _, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillPinyin, ledger.FirstTryCorrect); err != nil {
		t.Fatalf("history failure leaked: %v", err)
	}

	attempts.err = nil
	if _, err := svc.RecordAttempt(context.Background(), "learner-1", "item-1", card.DrillPinyin, ledger.Miss); err != nil {
		t.Fatal(err)
	}
	if len(attempts.appended) != 1 {
		t.Fatalf("appended = %d, want 1", len(attempts.appended))
	}
	a := attempts.appended[0]
	if a.Outcome != ledger.Miss || a.Points != 0 || a.ID == "" {
		t.Errorf("attempt event = %+v", a)
	}
}
