// Package card defines saved items and the drills that apply to them.
package card

import (
	"github.com/google/uuid"

	"github.com/suyin/hanlian/internal/pinyin"
)

// Drill is one of the practice modes.
type Drill string

const (
	// DrillPinyin is pronunciation recognition (pick the right reading).
	DrillPinyin Drill = "pinyin"

	// DrillScript is script-form recall (pick the traditional form).
	DrillScript Drill = "script"

	// DrillMatching is the word-pair matching round. It never touches the
	// mastery ledger.
	DrillMatching Drill = "matching"
)

// NoLockedReading marks an item whose reading is not pinned.
const NoLockedReading = -1

// Item is a character or word a learner has saved. Immutable after
// creation except for LockedReading.
type Item struct {
	ID        string
	LearnerID string

	// Simplified is the primary form; Traditional may equal it.
	Simplified  string
	Traditional string

	// Readings holds the candidate pronunciations, default first.
	// Empty for items with no pronunciation data.
	Readings []pinyin.Pronunciation

	// LockedReading indexes into Readings when the learner has pinned a
	// reading for an ambiguous item, or NoLockedReading.
	LockedReading int

	// Drills is derived once at creation and never recomputed.
	Drills []Drill
}

// New creates an item, deriving its applicable drills: the pinyin drill if
// any reading exists, the script drill only if the two forms differ. The
// matching drill applies to every saved item.
func New(learnerID, simplified, traditional string, readings []pinyin.Pronunciation) Item {
	it := Item{
		ID:            uuid.NewString(),
		LearnerID:     learnerID,
		Simplified:    simplified,
		Traditional:   traditional,
		Readings:      readings,
		LockedReading: NoLockedReading,
	}
	if len(readings) > 0 {
		it.Drills = append(it.Drills, DrillPinyin)
	}
	if traditional != "" && traditional != simplified {
		it.Drills = append(it.Drills, DrillScript)
	}
	it.Drills = append(it.Drills, DrillMatching)
	return it
}

// Applies reports whether the drill is applicable to this item.
func (it Item) Applies(d Drill) bool {
	for _, have := range it.Drills {
		if have == d {
			return true
		}
	}
	return false
}

// Ambiguous reports whether the item has more than one candidate reading.
func (it Item) Ambiguous() bool {
	return len(it.Readings) > 1
}

// Locked reports whether the learner has pinned a reading.
func (it Item) Locked() bool {
	return it.LockedReading >= 0 && it.LockedReading < len(it.Readings)
}

// EffectiveReading resolves the reading used for pronunciation drills:
// the locked reading if pinned, otherwise the default. ok is false when
// the item has no reading data at all.
func (it Item) EffectiveReading() (pinyin.Pronunciation, bool) {
	if len(it.Readings) == 0 {
		return pinyin.Pronunciation{}, false
	}
	if it.Locked() {
		return it.Readings[it.LockedReading], true
	}
	return it.Readings[0], true
}

// ValidForms returns every form that counts as a correct answer for this
// item: the simplified and traditional forms. Script-drill distractors
// must never collide with any of these.
func (it Item) ValidForms() []string {
	forms := []string{it.Simplified}
	if it.Traditional != "" && it.Traditional != it.Simplified {
		forms = append(forms, it.Traditional)
	}
	return forms
}
