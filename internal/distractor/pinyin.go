package distractor

import (
	"github.com/suyin/hanlian/internal/pinyin"
)

// toneCycle is the fixed tone-confusion order. Candidates cycle through
// it, skipping the correct tone.
var toneCycle = []string{"4", "2", "1", "3", "5"}

// PinyinOptions builds the option set for a pronunciation question. The
// correct answer is the full syllable sequence; every distractor has the
// same syllable count.
//
// Candidate tiers, most plausible first:
//  1. tone substitution on the final syllable
//  2. onset substitution on the final syllable (curated map)
//  3. rime substitution on the final syllable (curated map)
//  4. tiers 1-3 applied to earlier syllables, right to left
//  5. widened search: any table onset/rime on any syllable
func (g *Generator) PinyinOptions(correct pinyin.Pronunciation) ([]Option, error) {
	n := len(correct.Syllables)
	if n == 0 {
		return nil, &ErrExhausted{Strategy: "pinyin", Correct: "", Found: 0}
	}

	var candidates []string
	add := func(idx int, s pinyin.Syllable) {
		perturbed := make([]pinyin.Syllable, n)
		copy(perturbed, correct.Syllables)
		perturbed[idx] = s
		candidates = append(candidates, pinyin.Pronunciation{Syllables: perturbed}.Display())
	}

	for idx := n - 1; idx >= 0; idx-- {
		g.perturbSyllable(correct.Syllables[idx], idx, add)
	}
	for idx := n - 1; idx >= 0; idx-- {
		g.widenSyllable(correct.Syllables[idx], idx, add)
	}

	options, ok := g.assemble(correct.Display(), candidates)
	if !ok {
		return nil, &ErrExhausted{
			Strategy: "pinyin",
			Correct:  correct.Display(),
			Found:    len(candidates),
		}
	}
	return options, nil
}

// perturbSyllable emits tiered curated candidates for one syllable.
func (g *Generator) perturbSyllable(s pinyin.Syllable, idx int, add func(int, pinyin.Syllable)) {
	for _, tone := range toneCycle {
		if tone == s.Tone {
			continue
		}
		add(idx, pinyin.Syllable{Onset: s.Onset, Rime: s.Rime, Tone: tone})
	}
	for _, onset := range g.tables.ConfusableOnsets(s.Onset) {
		add(idx, pinyin.Syllable{Onset: onset, Rime: s.Rime, Tone: s.Tone})
	}
	for _, rime := range g.tables.ConfusableRimes(s.Rime) {
		add(idx, pinyin.Syllable{Onset: s.Onset, Rime: rime, Tone: s.Tone})
	}
}

// widenSyllable emits fallback candidates: every onset and rime the
// tables know about, regardless of curated pairing.
func (g *Generator) widenSyllable(s pinyin.Syllable, idx int, add func(int, pinyin.Syllable)) {
	for _, onset := range sortedKeys(g.tables.Onsets) {
		if onset == s.Onset {
			continue
		}
		add(idx, pinyin.Syllable{Onset: onset, Rime: s.Rime, Tone: s.Tone})
	}
	for _, rime := range sortedKeys(g.tables.Rimes) {
		if rime == s.Rime {
			continue
		}
		add(idx, pinyin.Syllable{Onset: s.Onset, Rime: rime, Tone: s.Tone})
	}
}
