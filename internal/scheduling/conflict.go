package scheduling

import "sportsclub/pkg/model"

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Touching
// boundaries do not overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && e1 > s2
}

// FindConflict returns the first booking in existing that shares the
// candidate's date and sport and overlaps its interval, or nil. A booking is
// never in conflict with itself.
func FindConflict(candidate *model.Booking, existing []*model.Booking) *model.Booking {
	for _, b := range existing {
		if b == nil || (candidate.ID != "" && b.ID == candidate.ID) {
			continue
		}
		if b.Date != candidate.Date || b.Sport != candidate.Sport {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime) {
			return b
		}
	}
	return nil
}

func HasConflict(candidate *model.Booking, existing []*model.Booking) bool {
	return FindConflict(candidate, existing) != nil
}
