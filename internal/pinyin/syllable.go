// Package pinyin holds the value types for pronunciations: syllables
// decomposed into onset, rime, and tone marker, and ordered syllable
// sequences with their serialized form.
//
// The serialized forms are a stable contract: curated confusion tables and
// persisted readings both depend on them, so the delimiters never change.
package pinyin

import (
	"fmt"
	"strings"
)

// Field and syllable delimiters for the serialized triple form,
// e.g. "zh:ang:4 x:i:1" for 长西. Onsets and rimes are plain ASCII
// (the ü vowel is written "v"), so neither delimiter can collide.
const (
	fieldSep    = ":"
	syllableSep = " "
)

// Tones lists the valid tone markers: 1-4 plus "5" for the neutral tone.
var Tones = []string{"1", "2", "3", "4", "5"}

// Syllable is one spoken unit of a reading: an onset (initial consonant,
// possibly empty), a rime (final), and a tone marker.
type Syllable struct {
	Onset string
	Rime  string
	Tone  string
}

// Valid reports whether the syllable has a rime and a recognized tone.
// An empty onset is legal (e.g. "an4").
func (s Syllable) Valid() bool {
	if s.Rime == "" {
		return false
	}
	for _, t := range Tones {
		if s.Tone == t {
			return true
		}
	}
	return false
}

// Key returns the serialized triple form, e.g. "zh:ang:4".
func (s Syllable) Key() string {
	return s.Onset + fieldSep + s.Rime + fieldSep + s.Tone
}

// Display returns the learner-facing form, e.g. "zhang4".
func (s Syllable) Display() string {
	return s.Onset + s.Rime + s.Tone
}

// ParseSyllable parses a serialized triple ("zh:ang:4") back into a Syllable.
func ParseSyllable(key string) (Syllable, error) {
	parts := strings.Split(key, fieldSep)
	if len(parts) != 3 {
		return Syllable{}, fmt.Errorf("parse syllable %q: want onset%srime%stone", key, fieldSep, fieldSep)
	}
	s := Syllable{Onset: parts[0], Rime: parts[1], Tone: parts[2]}
	if !s.Valid() {
		return Syllable{}, fmt.Errorf("parse syllable %q: invalid rime or tone", key)
	}
	return s, nil
}
