// Package scheduling holds the pure booking rules of the club: which hours
// can be booked on a date, where a booking may end, what it costs, whether it
// collides with another booking and which dates are open for booking.
//
// Times are hour boundaries written "HH:00" (zero padded, "24:00" is the
// end of day), so lexicographic order equals chronological order.
package scheduling

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

var (
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrOutsideHorizon = errors.New("date is outside the booking horizon")
	ErrInvalidSlot    = errors.New("time must be a whole hour in HH:00 format")
)

const DateLayout = "2006-01-02"

var reHourSlot = regexp.MustCompile(`^([01][0-9]|2[0-4]):00$`)

func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// ParseHour reads "HH:00" with HH in 0..24.
func ParseHour(s string) (int, bool) {
	if !reHourSlot.MatchString(s) {
		return 0, false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, false
	}
	return h, true
}

func IsHourSlot(s string) bool {
	_, ok := ParseHour(s)
	return ok
}

// ParseDate reads a calendar date. The result is midnight UTC so that its
// weekday is the weekday of the calendar date itself.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// Window is a half-open range of opening hours [Start, End).
type Window struct {
	Start int
	End   int
}

// OperatingHours lists the opening windows for Sundays and for every other day.
type OperatingHours struct {
	Sunday  []Window
	Weekday []Window
}

// DefaultHours: Sunday 06-12 and 17-21, other days 06-09 and 17-21.
var DefaultHours = OperatingHours{
	Sunday:  []Window{{Start: 6, End: 12}, {Start: 17, End: 21}},
	Weekday: []Window{{Start: 6, End: 9}, {Start: 17, End: 21}},
}

func (o OperatingHours) windows(date time.Time) []Window {
	if date.Weekday() == time.Sunday {
		return o.Sunday
	}
	return o.Weekday
}

// StartSlots returns every hour at which a booking may start on date,
// ascending and without duplicates even if windows overlap.
func (o OperatingHours) StartSlots(date time.Time) []string {
	seen := make(map[int]struct{})
	hours := make([]int, 0, 16)

	for _, w := range o.windows(date) {
		for h := max(w.Start, 0); h < w.End && h < 24; h++ {
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			hours = append(hours, h)
		}
	}
	sort.Ints(hours)

	slots := make([]string, len(hours))
	for i, h := range hours {
		slots[i] = FormatHour(h)
	}
	return slots
}
