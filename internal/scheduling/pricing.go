package scheduling

// Price is the whole-hour duration times the hourly rate, or 0 when the
// duration is not positive or either time is malformed.
func Price(start, end string, hourlyRate int) int {
	startHour, ok := ParseHour(start)
	if !ok {
		return 0
	}
	endHour, ok := ParseHour(end)
	if !ok {
		return 0
	}

	duration := endHour - startHour
	if duration <= 0 {
		return 0
	}
	return duration * hourlyRate
}
