package scheduling

import "time"

// Horizon is the range of bookable dates: today through today+Days,
// inclusive, where "today" is the calendar date at the venue.
type Horizon struct {
	Location *time.Location
	Days     int
	Now      func() time.Time
}

func NewHorizon(loc *time.Location, days int) Horizon {
	if loc == nil {
		loc = time.UTC
	}
	return Horizon{Location: loc, Days: days, Now: time.Now}
}

// Today is the venue's current calendar date as midnight UTC.
func (h Horizon) Today() time.Time {
	now := h.Now
	if now == nil {
		now = time.Now
	}
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	t := now().In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (h Horizon) Last() time.Time {
	return h.Today().AddDate(0, 0, h.Days)
}

func (h Horizon) Contains(date time.Time) bool {
	return !date.Before(h.Today()) && !date.After(h.Last())
}

func (h Horizon) Dates() []string {
	today := h.Today()
	dates := make([]string, 0, h.Days+1)
	for i := 0; i <= h.Days; i++ {
		dates = append(dates, FormatDate(today.AddDate(0, 0, i)))
	}
	return dates
}
