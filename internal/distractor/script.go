package distractor

import (
	"github.com/suyin/hanlian/internal/card"
)

// ScriptOptions builds the option set for a script-form question. The
// correct answer is the item's traditional form; every distractor has the
// same character count.
//
// Candidates substitute one character at a time from the visual-confusion
// map. A candidate is rejected when it coincides with any valid form of
// the item — a "wrong" answer that is actually right — or, equivalently,
// when it equals the primary form while the two forms differ. When
// curated substitutions run out, the search widens to same-length forms
// from pool (typically the catalog's character inventory).
func (g *Generator) ScriptOptions(it card.Item, pool []string) ([]Option, error) {
	correct := it.Traditional
	runes := []rune(correct)
	if len(runes) == 0 {
		return nil, &ErrExhausted{Strategy: "script", Correct: "", Found: 0}
	}

	rejected := make(map[string]bool, 2)
	for _, form := range it.ValidForms() {
		rejected[form] = true
	}

	var candidates []string
	for i, r := range runes {
		for _, sub := range g.tables.ConfusableCharacters(string(r)) {
			candidate := substituteRune(runes, i, sub)
			if rejected[candidate] {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}

	// Widened search: random same-length forms from the broader catalog,
	// still subject to the rejection rules.
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for _, form := range shuffled {
		if len([]rune(form)) != len(runes) || rejected[form] {
			continue
		}
		candidates = append(candidates, form)
	}

	options, ok := g.assemble(correct, candidates)
	if !ok {
		return nil, &ErrExhausted{
			Strategy: "script",
			Correct:  correct,
			Found:    len(candidates),
		}
	}
	return options, nil
}

func substituteRune(runes []rune, idx int, sub string) string {
	out := make([]rune, len(runes))
	copy(out, runes)
	copied := []rune(sub)
	if len(copied) != 1 {
		// Curated substitutes are single characters; anything else is
		// dropped by returning the original, which assemble dedupes away.
		return string(runes)
	}
	out[idx] = copied[0]
	return string(out)
}
