package priority

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/suyin/hanlian/internal/ledger"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestCompute_NeverPracticed(t *testing.T) {
	s := Compute(nil, now)
	if s.Priority != 1000 {
		t.Errorf("Priority = %v, want 1000", s.Priority)
	}
	if s.Reason != "Never practiced" {
		t.Errorf("Reason = %q", s.Reason)
	}
}

func TestCompute_TierOrderingRandomized(t *testing.T) {
	// Tier ordering must hold for any recency value and miss depth.
	rng := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		attemptAge := time.Duration(rng.Int64N(int64(10000 * time.Hour)))
		last := now.Add(-attemptAge)
		misses := 2 + rng.IntN(50)

		struggling := Compute(&ledger.Record{
			FirstTrySuccesses: rng.IntN(10),
			ConsecutiveMisses: misses,
			LastAttemptAt:     last,
		}, now)
		notKnown := Compute(&ledger.Record{
			FirstTrySuccesses: rng.IntN(2),
			LastAttemptAt:     last,
		}, now)
		known := Compute(&ledger.Record{
			FirstTrySuccesses: 2 + rng.IntN(10),
			LastAttemptAt:     last,
		}, now)
		never := Compute(nil, now)

		if !(never.Priority < struggling.Priority) {
			t.Fatalf("never (%v) must beat struggling (%v)", never.Priority, struggling.Priority)
		}
		if !(struggling.Priority < notKnown.Priority) {
			t.Fatalf("struggling (%v, %d misses) must beat not-known (%v)", struggling.Priority, misses, notKnown.Priority)
		}
		if !(notKnown.Priority < known.Priority) {
			t.Fatalf("not-known (%v) must beat known (%v)", notKnown.Priority, known.Priority)
		}
	}
}

func TestCompute_OlderSortsFirstWithinTier(t *testing.T) {
	old := Compute(&ledger.Record{
		FirstTrySuccesses: 2,
		LastAttemptAt:     now.Add(-30 * 24 * time.Hour),
	}, now)
	fresh := Compute(&ledger.Record{
		FirstTrySuccesses: 2,
		LastAttemptAt:     now.Add(-time.Minute),
	}, now)

	if !(old.Priority < fresh.Priority) {
		t.Errorf("older attempt (%v) must sort before fresh (%v)", old.Priority, fresh.Priority)
	}
}

func TestCompute_DeeperMissStreakMoreUrgentLater(t *testing.T) {
	// Within the struggling tier a deeper streak sorts later, while the
	// tier ceiling still holds.
	last := now.Add(-time.Hour)
	two := Compute(&ledger.Record{ConsecutiveMisses: 2, LastAttemptAt: last}, now)
	four := Compute(&ledger.Record{ConsecutiveMisses: 4, LastAttemptAt: last}, now)

	if !(two.Priority < four.Priority) {
		t.Errorf("2 misses (%v) should score below 4 misses (%v)", two.Priority, four.Priority)
	}
	if four.Priority >= 3000 {
		t.Errorf("struggling score %v escaped its tier", four.Priority)
	}
}

func TestCompute_FutureTimestampClamped(t *testing.T) {
	// A clock-skewed record from "the future" must not push the recency
	// term past its cap.
	s := Compute(&ledger.Record{
		FirstTrySuccesses: 2,
		LastAttemptAt:     now.Add(48 * time.Hour),
	}, now)
	if s.Priority >= 5000 {
		t.Errorf("known score %v escaped its tier", s.Priority)
	}
}

func TestCompute_Reasons(t *testing.T) {
	if got := Compute(&ledger.Record{ConsecutiveMisses: 3}, now).Reason; got != "Struggling (3 misses in a row)" {
		t.Errorf("struggling reason = %q", got)
	}
	if got := Compute(&ledger.Record{FirstTrySuccesses: 1}, now).Reason; got != "Still learning (1 of 2 successes)" {
		t.Errorf("learning reason = %q", got)
	}
	if got := Compute(&ledger.Record{FirstTrySuccesses: 2}, now).Reason; got != "Known, due for refresh" {
		t.Errorf("known reason = %q", got)
	}
}
