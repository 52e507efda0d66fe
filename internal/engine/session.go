package engine

import "github.com/suyin/hanlian/internal/scoring"

// Session accumulates points and promotions over one practice sitting.
// Derived display state only; nothing here is persisted.
type Session struct {
	Points     float64
	Attempts   int
	FirstTries int
	Recoveries int
	Misses     int

	// PromotedItems lists item IDs whose drill flipped to known during
	// the session.
	PromotedItems []string
}

// Add folds one scored attempt into the running summary.
func (s *Session) Add(itemID string, res scoring.Result) {
	s.Points += res.Points
	s.Attempts++
	switch {
	case res.Points == 1.0:
		s.FirstTries++
	case res.Points == 0.5:
		s.Recoveries++
	default:
		s.Misses++
	}
	if res.Promoted {
		s.PromotedItems = append(s.PromotedItems, itemID)
	}
}

// Accuracy returns the fraction of attempts that earned any points.
func (s *Session) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.FirstTries+s.Recoveries) / float64(s.Attempts)
}
