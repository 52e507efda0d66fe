// Package matchround assembles word-pair matching rounds from the catalog
// under the hero-pronunciation eligibility rule.
//
// The rule exists to prevent silent miseducation: a homograph-rich catalog
// word must not be presented as correct unless it matches the exact
// reading the learner is actively studying. The matching drill reads and
// writes no mastery state.
package matchround

import (
	"fmt"
	"math/rand/v2"

	"github.com/suyin/hanlian/internal/card"
	"github.com/suyin/hanlian/internal/pinyin"
)

// PairCharacter is one constituent of a catalog word pair.
type PairCharacter struct {
	Character string
	Reading   pinyin.Pronunciation
}

// WordPair is a catalog fact: a two-character word and its constituents.
// Read-only to the engine.
type WordPair struct {
	Word   string
	First  PairCharacter
	Second PairCharacter
}

// Card is a single-character tile in one of the round's columns.
type Card struct {
	Character string
}

// Round is an assembled matching round: two independently shuffled
// columns plus the pair list used for answer checking.
type Round struct {
	Left  []Card
	Right []Card
	Pairs []WordPair
}

// ErrInsufficientPairs is the expected condition when too few eligible
// pairs exist. Callers disable the matching drill; this is not a bug.
type ErrInsufficientPairs struct {
	Eligible int
	Required int
}

func (e *ErrInsufficientPairs) Error() string {
	return fmt.Sprintf("insufficient word pairs: %d eligible, need %d", e.Eligible, e.Required)
}

// Config bounds round assembly.
type Config struct {
	// MinEligiblePairs is the eligibility threshold below which the round
	// cannot be built.
	MinEligiblePairs int

	// RoundSize caps the number of pairs presented in one round.
	RoundSize int
}

// DefaultConfig returns the standard round bounds.
func DefaultConfig() Config {
	return Config{
		MinEligiblePairs: 5,
		RoundSize:        8,
	}
}

// Builder assembles rounds for one configuration.
type Builder struct {
	cfg Config
	rng *rand.Rand
}

// NewBuilder creates a Builder.
func NewBuilder(cfg Config, rng *rand.Rand) *Builder {
	return &Builder{cfg: cfg, rng: rng}
}

// EligiblePairs filters catalog pairs against the learner's saved items.
//
// A pair is eligible iff at least one of its characters matches a saved
// item and that item's hero reading admits the pair's word: an unlocked
// item is a wildcard hero, a locked item only admits words from the
// locked reading's example list. Results are deduplicated by word,
// keeping catalog order.
func EligiblePairs(items []card.Item, pairs []WordPair) []WordPair {
	var eligible []WordPair
	seen := make(map[string]bool)
	for _, pair := range pairs {
		if seen[pair.Word] {
			continue
		}
		if pairEligible(items, pair) {
			seen[pair.Word] = true
			eligible = append(eligible, pair)
		}
	}
	return eligible
}

func pairEligible(items []card.Item, pair WordPair) bool {
	for _, it := range items {
		if it.Simplified != pair.First.Character && it.Simplified != pair.Second.Character {
			continue
		}
		if !it.Locked() {
			// Wildcard hero: any pair containing the character qualifies.
			return true
		}
		if it.Readings[it.LockedReading].HasExampleWord(pair.Word) {
			return true
		}
	}
	return false
}

// BuildRound selects a round subset from the eligible pairs, decomposes
// each pair into two cards with alternating column assignment, and
// shuffles each column independently.
func (b *Builder) BuildRound(items []card.Item, catalog []WordPair) (*Round, error) {
	eligible := EligiblePairs(items, catalog)
	if len(eligible) < b.cfg.MinEligiblePairs {
		return nil, &ErrInsufficientPairs{
			Eligible: len(eligible),
			Required: b.cfg.MinEligiblePairs,
		}
	}

	b.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > b.cfg.RoundSize {
		eligible = eligible[:b.cfg.RoundSize]
	}

	round := &Round{Pairs: eligible}
	for i, pair := range eligible {
		first := Card{Character: pair.First.Character}
		second := Card{Character: pair.Second.Character}
		// Alternate which character lands in the left column so position
		// gives nothing away.
		if i%2 == 0 {
			round.Left = append(round.Left, first)
			round.Right = append(round.Right, second)
		} else {
			round.Left = append(round.Left, second)
			round.Right = append(round.Right, first)
		}
	}

	b.rng.Shuffle(len(round.Left), func(i, j int) {
		round.Left[i], round.Left[j] = round.Left[j], round.Left[i]
	})
	b.rng.Shuffle(len(round.Right), func(i, j int) {
		round.Right[i], round.Right[j] = round.Right[j], round.Right[i]
	})
	return round, nil
}

// Match checks a left/right card selection against the round's pairs and
// returns the matched word. Selections match in either character order.
func (r *Round) Match(left, right string) (string, bool) {
	for _, pair := range r.Pairs {
		a, b := pair.First.Character, pair.Second.Character
		if (left == a && right == b) || (left == b && right == a) {
			return pair.Word, true
		}
	}
	return "", false
}

// Validate checks round integrity: balanced columns, every pair's two
// characters present on opposite sides, and no short rounds.
func (r *Round) Validate(minPairs int) error {
	if len(r.Pairs) < minPairs {
		return fmt.Errorf("round has %d pairs, need at least %d", len(r.Pairs), minPairs)
	}
	if len(r.Left) != len(r.Pairs) || len(r.Right) != len(r.Pairs) {
		return fmt.Errorf("unbalanced columns: %d left, %d right, %d pairs",
			len(r.Left), len(r.Right), len(r.Pairs))
	}
	for _, pair := range r.Pairs {
		a, b := pair.First.Character, pair.Second.Character
		leftA, rightA := columnHas(r.Left, a), columnHas(r.Right, a)
		leftB, rightB := columnHas(r.Left, b), columnHas(r.Right, b)
		if !((leftA && rightB) || (leftB && rightA)) {
			return fmt.Errorf("pair %q is not split across the columns", pair.Word)
		}
	}
	return nil
}

func columnHas(col []Card, ch string) bool {
	for _, c := range col {
		if c.Character == ch {
			return true
		}
	}
	return false
}
