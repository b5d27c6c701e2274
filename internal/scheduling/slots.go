package scheduling

import "time"

// AvailableStartSlots returns the start slots of date under DefaultHours.
func AvailableStartSlots(date time.Time) []string {
	return DefaultHours.StartSlots(date)
}

// ValidEndTimes returns the hours at which a booking starting at start may
// end, given the start slots of the same day. A booking may run through
// consecutive open hours and end at the close of its window, but never across
// a closed gap into a later window.
func ValidEndTimes(start string, slots []string) []string {
	if start == "" || !contains(slots, start) {
		return []string{}
	}

	startHour, ok := ParseHour(start)
	if !ok {
		return []string{}
	}

	open := make(map[int]bool, len(slots))
	for _, s := range slots {
		if h, ok := ParseHour(s); ok {
			open[h] = true
		}
	}

	ends := []string{}
	for h := startHour + 1; h <= 24; h++ {
		if open[h] {
			ends = append(ends, FormatHour(h))
			continue
		}
		if open[h-1] {
			ends = append(ends, FormatHour(h))
		}
		break
	}
	return ends
}

func contains(slots []string, s string) bool {
	for _, v := range slots {
		if v == s {
			return true
		}
	}
	return false
}
