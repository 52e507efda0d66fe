package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/ledger"
	"github.com/suyin/hanlian/internal/pinyin"
	"github.com/suyin/hanlian/internal/store"
)

var (
	_ store.ItemRepo   = (*fakeItemRepo)(nil)
	_ store.LedgerRepo = (*fakeLedgerRepo)(nil)
)

// fakeItemRepo implements store.ItemRepo over a fixed slice.
type fakeItemRepo struct {
	items []card.Item
	err   error
}

func (f *fakeItemRepo) Save(context.Context, card.Item) error { return nil }
func (f *fakeItemRepo) Items(context.Context, string) ([]card.Item, error) {
	return f.items, f.err
}
func (f *fakeItemRepo) ItemsByDrill(_ context.Context, _ string, drill card.Drill) ([]card.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []card.Item
	for _, it := range f.items {
		if it.Applies(drill) {
			out = append(out, it)
		}
	}
	return out, nil
}
func (f *fakeItemRepo) SetLockedReading(context.Context, string, string, int) error { return nil }
func (f *fakeItemRepo) Delete(context.Context, string, string) error                { return nil }

// fakeLedgerRepo implements store.LedgerRepo over a map keyed by item ID.
type fakeLedgerRepo struct {
	records map[string]*ledger.Record
	err     error
}

func (f *fakeLedgerRepo) Record(_ context.Context, _, itemID string, _ card.Drill) (*ledger.Record, error) {
	return f.records[itemID], f.err
}
func (f *fakeLedgerRepo) RecordsByDrill(context.Context, string, card.Drill) (map[string]*ledger.Record, error) {
	return f.records, f.err
}
func (f *fakeLedgerRepo) RecordsForItem(context.Context, string, string) (map[card.Drill]*ledger.Record, error) {
	return nil, f.err
}
func (f *fakeLedgerRepo) Upsert(context.Context, *ledger.Record) error { return f.err }

func oneReading() []pinyin.Pronunciation {
	return []pinyin.Pronunciation{{Syllables: []pinyin.Syllable{{Onset: "h", Rime: "ao", Tone: "3"}}}}
}

func newItem(simplified string) card.Item {
	return card.New("learner-1", simplified, simplified+"繁", oneReading())
}

func TestBuild_OrdersByUrgency(t *testing.T) {
	never := newItem("一")
	struggling := newItem("二")
	known := newItem("三")
	items := &fakeItemRepo{items: []card.Item{known, never, struggling}}
	records := &fakeLedgerRepo{records: map[string]*ledger.Record{
		struggling.ID: {ConsecutiveMisses: 2, LastAttemptAt: time.Now().Add(-time.Hour)},
		known.ID:      {FirstTrySuccesses: 2, LastAttemptAt: time.Now().Add(-time.Hour)},
	}}

	b := NewBuilder(items, records, nil)
	entries, err := b.Build(context.Background(), "learner-1", card.DrillPinyin, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	wantOrder := []string{never.ID, struggling.ID, known.ID}
	for i, want := range wantOrder {
		if entries[i].Item.ID != want {
			t.Errorf("entries[%d] = %s (%q), want %s", i, entries[i].Item.ID, entries[i].Score.Reason, want)
		}
	}
}

func TestBuild_TruncatesToLimit(t *testing.T) {
	items := &fakeItemRepo{items: []card.Item{newItem("一"), newItem("二"), newItem("三")}}
	b := NewBuilder(items, &fakeLedgerRepo{}, nil)

	entries, err := b.Build(context.Background(), "learner-1", card.DrillPinyin, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestBuild_ExcludesAndLogsDefectiveItems(t *testing.T) {
	// An item claiming the pinyin drill but carrying no reading data is a
	// data-quality defect: excluded and logged, never an error.
	broken := card.New("learner-1", "坏", "壞", oneReading())
	broken.Readings = nil
	good := newItem("好")

	core, logs := observer.New(zap.WarnLevel)
	b := NewBuilder(&fakeItemRepo{items: []card.Item{broken, good}}, &fakeLedgerRepo{}, zap.New(core))

	entries, err := b.Build(context.Background(), "learner-1", card.DrillPinyin, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Item.ID != good.ID {
		t.Fatalf("defective item not excluded: %d entries", len(entries))
	}
	if logs.FilterMessage("excluding item with missing pronunciation data").Len() != 1 {
		t.Error("expected a data-quality warning log")
	}
}

func TestBuild_ScriptDrillNeedsNoReading(t *testing.T) {
	noReading := card.New("learner-1", "车", "車", nil)
	b := NewBuilder(&fakeItemRepo{items: []card.Item{noReading}}, &fakeLedgerRepo{}, nil)

	entries, err := b.Build(context.Background(), "learner-1", card.DrillScript, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if len(entries[0].Reading.Syllables) != 0 {
		t.Error("script entries should not resolve a reading")
	}
}

func TestBuild_RejectsMatchingDrill(t *testing.T) {
	b := NewBuilder(&fakeItemRepo{}, &fakeLedgerRepo{}, nil)
	if _, err := b.Build(context.Background(), "learner-1", card.DrillMatching, 10); err == nil {
		t.Fatal("expected error for the matching drill")
	}
}

func TestBuild_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk gone")
	b := NewBuilder(&fakeItemRepo{err: boom}, &fakeLedgerRepo{}, nil)
	if _, err := b.Build(context.Background(), "learner-1", card.DrillPinyin, 10); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}
