// Package engine is the facade the UI layer consumes: it wires the
// stores, queue builder, distractor generator, round builder, and scoring
// service into one request/response surface. Every call fetches
// just-in-time and computes synchronously; there are no background
// workers.
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suyin/hanlian/internal/backoff"
	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/confusion"
	"github.com/suyin/hanlian/internal/distractor"
	"github.com/suyin/hanlian/internal/ledger"
	"github.com/suyin/hanlian/internal/matchround"
	"github.com/suyin/hanlian/internal/pinyin"
	"github.com/suyin/hanlian/internal/queue"
	"github.com/suyin/hanlian/internal/scoring"
	"github.com/suyin/hanlian/internal/store"
)

// Engine exposes the adaptive practice operations.
type Engine struct {
	items   store.ItemRepo
	catalog store.CatalogRepo
	queue   *queue.Builder
	scoring *scoring.Service
	ledger  store.LedgerRepo
	rounds  *matchround.Builder
	logger  *zap.Logger

	mu     sync.Mutex
	rng    *rand.Rand
	tables *confusion.Tables
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed fixes the random source, for reproducible rounds and options.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// New wires an Engine from a store.
func New(st *store.Store, logger *zap.Logger, opts ...Option) *Engine {
	return NewFromRepos(st.ItemRepo(), st.LedgerRepo(), st.CatalogRepo(), st.AttemptRepo(), logger, opts...)
}

// NewFromRepos wires an Engine from individual repositories.
func NewFromRepos(items store.ItemRepo, ledgerRepo store.LedgerRepo, catalog store.CatalogRepo, attempts store.AttemptRepo, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := uint64(time.Now().UnixNano())
	e := &Engine{
		items:   items,
		catalog: catalog,
		ledger:  ledgerRepo,
		queue:   queue.NewBuilder(items, ledgerRepo, logger),
		scoring: scoring.NewService(ledgerRepo, attempts, backoff.DefaultPolicy(), logger),
		logger:  logger,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rounds = matchround.NewBuilder(matchround.DefaultConfig(), e.rng)
	return e
}

// SaveItem creates and persists a new item for the learner, deriving its
// applicable drills.
func (e *Engine) SaveItem(ctx context.Context, learnerID, simplified, traditional string, readings []pinyin.Pronunciation) (card.Item, error) {
	it := card.New(learnerID, simplified, traditional, readings)
	if err := e.items.Save(ctx, it); err != nil {
		return card.Item{}, fmt.Errorf("save item: %w", err)
	}
	return it, nil
}

// LockReading pins the item to one of its candidate readings.
func (e *Engine) LockReading(ctx context.Context, learnerID, itemID string, idx int) error {
	return e.items.SetLockedReading(ctx, learnerID, itemID, idx)
}

// DeleteItem removes the item and its ledger rows.
func (e *Engine) DeleteItem(ctx context.Context, learnerID, itemID string) error {
	return e.items.Delete(ctx, learnerID, itemID)
}

// PracticeQueue returns up to limit items for the drill, most urgent
// first.
func (e *Engine) PracticeQueue(ctx context.Context, learnerID string, drill card.Drill, limit int) ([]queue.Entry, error) {
	return e.queue.Build(ctx, learnerID, drill, limit)
}

// PinyinOptions builds the four answer options for a pronunciation
// question on the item's effective reading.
func (e *Engine) PinyinOptions(ctx context.Context, it card.Item) ([]distractor.Option, error) {
	reading, ok := it.EffectiveReading()
	if !ok {
		return nil, fmt.Errorf("item %s has no pronunciation data", it.ID)
	}
	gen, err := e.generator(ctx)
	if err != nil {
		return nil, err
	}
	return gen.PinyinOptions(reading)
}

// ScriptOptions builds the four answer options for a script-form
// question, drawing the widened pool from the catalog.
func (e *Engine) ScriptOptions(ctx context.Context, it card.Item) ([]distractor.Option, error) {
	pool, err := e.catalog.FormPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch form pool: %w", err)
	}
	gen, err := e.generator(ctx)
	if err != nil {
		return nil, err
	}
	return gen.ScriptOptions(it, pool)
}

// MatchingRound assembles a word-pair round for the learner. Returns
// matchround.ErrInsufficientPairs when too little eligible content
// exists; callers disable the drill on that condition.
func (e *Engine) MatchingRound(ctx context.Context, learnerID string) (*matchround.Round, error) {
	items, err := e.items.Items(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	pairs, err := e.catalog.WordPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch word pairs: %w", err)
	}
	return e.rounds.BuildRound(items, pairs)
}

// RecordAttempt scores one attempt and writes it to the ledger.
func (e *Engine) RecordAttempt(ctx context.Context, learnerID, itemID string, drill card.Drill, outcome ledger.Outcome) (scoring.Result, error) {
	return e.scoring.RecordAttempt(ctx, learnerID, itemID, drill, outcome)
}

// ItemKnown reports whether the item satisfies the known predicate on
// every ledger-tracked drill.
func (e *Engine) ItemKnown(ctx context.Context, it card.Item) (bool, error) {
	records, err := e.ledger.RecordsForItem(ctx, it.LearnerID, it.ID)
	if err != nil {
		return false, fmt.Errorf("fetch item records: %w", err)
	}
	return ledger.ItemKnown(it, records), nil
}

// generator lazily builds the distractor generator from the catalog's
// curated tables. The tables are static versioned data, so one fetch per
// engine lifetime suffices.
func (e *Engine) generator(ctx context.Context) (*distractor.Generator, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tables == nil {
		tables, err := e.catalog.ConfusionTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch confusion tables: %w", err)
		}
		e.tables = tables
	}
	return distractor.New(e.tables, e.rng), nil
}
