package pinyin

import (
	"fmt"
	"strings"
)

// Pronunciation is one reading of an item: an ordered syllable sequence
// plus the curation context that disambiguates it from sibling readings.
type Pronunciation struct {
	Syllables []Syllable

	// Gloss is an optional short meaning hint shown alongside the reading.
	Gloss string

	// ExampleWords are catalog words in which the item takes this reading.
	// For a locked reading they define word-pair eligibility.
	ExampleWords []string
}

// Key returns the serialized form of the full reading,
// e.g. "zh:ang:3 d:a:4". Two readings are the same iff their keys match.
func (p Pronunciation) Key() string {
	keys := make([]string, len(p.Syllables))
	for i, s := range p.Syllables {
		keys[i] = s.Key()
	}
	return strings.Join(keys, syllableSep)
}

// Display returns the learner-facing form, e.g. "zhang3da4".
func (p Pronunciation) Display() string {
	var b strings.Builder
	for _, s := range p.Syllables {
		b.WriteString(s.Display())
	}
	return b.String()
}

// HasExampleWord reports whether word appears in the reading's example list.
func (p Pronunciation) HasExampleWord(word string) bool {
	for _, w := range p.ExampleWords {
		if w == word {
			return true
		}
	}
	return false
}

// ParseKey parses a serialized reading produced by Key back into its
// syllable sequence. Round-trips losslessly with Key.
func ParseKey(key string) ([]Syllable, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("parse reading: empty key")
	}
	parts := strings.Split(key, syllableSep)
	syllables := make([]Syllable, 0, len(parts))
	for _, part := range parts {
		s, err := ParseSyllable(part)
		if err != nil {
			return nil, fmt.Errorf("parse reading %q: %w", key, err)
		}
		syllables = append(syllables, s)
	}
	return syllables, nil
}
