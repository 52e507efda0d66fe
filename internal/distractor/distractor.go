// Package distractor synthesizes plausible wrong answers for
// multiple-choice drills from the curated confusion tables.
//
// Both strategies share one hard postcondition: exactly OptionCount
// options, exactly one correct, pairwise-distinct texts, and distractors
// the same length as the correct answer. When the curated maps run dry
// the search widens; if even the widened search cannot fill the set, that
// is a configuration error surfaced via ErrExhausted, never a short set.
package distractor

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/suyin/hanlian/internal/confusion"
)

// OptionCount is the number of options every drill question presents.
const OptionCount = 4

// distractorsNeeded is OptionCount minus the correct answer.
const distractorsNeeded = OptionCount - 1

// Option is one on-screen answer choice.
type Option struct {
	Text      string
	IsCorrect bool
}

// ErrExhausted reports that even the widened search could not produce
// enough unique distractors. This indicates broken or pathologically
// small curated tables and is surfaced to the operator.
type ErrExhausted struct {
	Strategy string
	Correct  string
	Found    int
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("%s distractors exhausted for %q: found %d of %d",
		e.Strategy, e.Correct, e.Found, distractorsNeeded)
}

// Generator builds option sets from one set of curated tables.
type Generator struct {
	tables *confusion.Tables
	rng    *rand.Rand
}

// New creates a Generator. A nil tables argument falls back to the
// built-in curated defaults.
func New(tables *confusion.Tables, rng *rand.Rand) *Generator {
	if tables == nil {
		tables = confusion.Default()
	}
	return &Generator{tables: tables, rng: rng}
}

// assemble dedupes the candidate texts against the correct answer and
// each other, takes the first distractorsNeeded, appends the correct
// option, and shuffles. Candidate order encodes tier priority, so the
// most plausible mistakes survive the cut.
func (g *Generator) assemble(correct string, candidates []string) ([]Option, bool) {
	seen := map[string]bool{correct: true}
	options := make([]Option, 0, OptionCount)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		options = append(options, Option{Text: c})
		if len(options) == distractorsNeeded {
			break
		}
	}
	if len(options) < distractorsNeeded {
		return nil, false
	}

	options = append(options, Option{Text: correct, IsCorrect: true})
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, true
}

// sortedKeys returns the map keys in stable order, so widened searches
// are reproducible for a given seed.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
