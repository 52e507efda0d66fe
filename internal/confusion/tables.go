// Package confusion holds the curated confusion tables the distractor
// generator draws from. The tables are empirical lookup data, versioned
// and loaded from JSON; similarity is never computed.
package confusion

// Tables maps correct units to plausible wrong substitutes.
//
// The schema (unit → list of confusable units) is a stable contract:
// curated content files depend on it.
type Tables struct {
	// Version identifies the curated dataset revision.
	Version int `json:"version"`

	// Onsets maps a syllable onset to phonetically confusable onsets
	// (retroflex/alveolar sibilants, aspirated/unaspirated pairs, ...).
	Onsets map[string][]string `json:"onsets"`

	// Rimes maps a syllable rime to confusable rimes (nasal-coda pairs,
	// similar vowel nuclei).
	Rimes map[string][]string `json:"rimes"`

	// Characters maps a character to visually confusable characters
	// (one stroke apart or sharing a component).
	Characters map[string][]string `json:"characters"`
}

// ConfusableOnsets returns the curated substitutes for an onset.
func (t *Tables) ConfusableOnsets(onset string) []string {
	return t.Onsets[onset]
}

// ConfusableRimes returns the curated substitutes for a rime.
func (t *Tables) ConfusableRimes(rime string) []string {
	return t.Rimes[rime]
}

// ConfusableCharacters returns the curated substitutes for a character.
func (t *Tables) ConfusableCharacters(ch string) []string {
	return t.Characters[ch]
}

// Merge overlays other onto t, appending substitutes for units present in
// both. Used when an operator ships a supplement next to the built-ins.
func (t *Tables) Merge(other *Tables) {
	if other == nil {
		return
	}
	if t.Onsets == nil {
		t.Onsets = map[string][]string{}
	}
	if t.Rimes == nil {
		t.Rimes = map[string][]string{}
	}
	if t.Characters == nil {
		t.Characters = map[string][]string{}
	}
	for k, v := range other.Onsets {
		t.Onsets[k] = appendUnique(t.Onsets[k], v)
	}
	for k, v := range other.Rimes {
		t.Rimes[k] = appendUnique(t.Rimes[k], v)
	}
	for k, v := range other.Characters {
		t.Characters[k] = appendUnique(t.Characters[k], v)
	}
}

func appendUnique(dst []string, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
