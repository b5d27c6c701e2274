package scheduling

import (
	"testing"
	"time"

	"sportsclub/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sunday  = mustDate("2025-01-05")
	tuesday = mustDate("2025-01-07")
)

func mustDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAvailableStartSlots_SortedUniqueNonEmpty(t *testing.T) {
	start := mustDate("2025-01-01")
	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		slots := AvailableStartSlots(d)

		require.NotEmpty(t, slots, d.Weekday().String())
		assert.Contains(t, slots, "17:00", "every day has the evening window")
		for j := 1; j < len(slots); j++ {
			assert.Less(t, slots[j-1], slots[j], "slots must be strictly ascending on %s", d.Weekday())
		}
	}
}

func TestAvailableStartSlots_Sunday(t *testing.T) {
	assert.Equal(t,
		[]string{"06:00", "07:00", "08:00", "09:00", "10:00", "11:00", "17:00", "18:00", "19:00", "20:00"},
		AvailableStartSlots(sunday))
}

func TestAvailableStartSlots_Tuesday(t *testing.T) {
	assert.Equal(t,
		[]string{"06:00", "07:00", "08:00", "17:00", "18:00", "19:00", "20:00"},
		AvailableStartSlots(tuesday))
}

func TestStartSlots_OverlappingWindowsDeduplicated(t *testing.T) {
	hours := OperatingHours{
		Sunday:  []Window{{Start: 8, End: 10}, {Start: 6, End: 9}},
		Weekday: []Window{{Start: 8, End: 10}, {Start: 6, End: 9}},
	}
	assert.Equal(t, []string{"06:00", "07:00", "08:00", "09:00"}, hours.StartSlots(tuesday))
}

func TestValidEndTimes(t *testing.T) {
	sundaySlots := AvailableStartSlots(sunday)
	tuesdaySlots := AvailableStartSlots(tuesday)

	tests := []struct {
		name  string
		start string
		slots []string
		want  []string
	}{
		{"sunday morning runs to the window close", "08:00", sundaySlots, []string{"09:00", "10:00", "11:00", "12:00"}},
		{"weekday morning cannot bridge the gap", "08:00", tuesdaySlots, []string{"09:00"}},
		{"evening window", "17:00", tuesdaySlots, []string{"18:00", "19:00", "20:00", "21:00"}},
		{"last slot before closing", "20:00", tuesdaySlots, []string{"21:00"}},
		{"start not offered", "10:00", tuesdaySlots, []string{}},
		{"start in the gap before a window", "16:00", tuesdaySlots, []string{}},
		{"empty start", "", tuesdaySlots, []string{}},
		{"no slots", "08:00", nil, []string{}},
		{"malformed start", "8am", tuesdaySlots, []string{}},
		{"late window ends at midnight", "23:00", []string{"22:00", "23:00"}, []string{"24:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEndTimes(tt.start, tt.slots))
		})
	}
}

func TestValidEndTimes_NeverBridgesClosedHours(t *testing.T) {
	for _, d := range []time.Time{sunday, tuesday} {
		slots := AvailableStartSlots(d)
		for _, start := range slots {
			startHour, _ := ParseHour(start)
			for _, end := range ValidEndTimes(start, slots) {
				endHour, _ := ParseHour(end)
				for h := startHour; h < endHour; h++ {
					assert.Contains(t, slots, FormatHour(h), "%s-%s covers closed hour %d", start, end, h)
				}
			}
		}
	}
}

func TestPrice(t *testing.T) {
	assert.Equal(t, 900, Price("06:00", "09:00", 300))
	assert.Equal(t, 0, Price("08:00", "08:00", 300))
	assert.Equal(t, 0, Price("09:00", "08:00", 300))
	assert.Equal(t, 0, Price("", "08:00", 300))
	assert.Equal(t, 450, Price("17:00", "18:00", 450))
}

func booking(id, sport, date, start, end string) *model.Booking {
	return &model.Booking{ID: id, Sport: sport, Date: date, StartTime: start, EndTime: end}
}

func TestHasConflict(t *testing.T) {
	existing := []*model.Booking{booking("a", "Table Tennis", "2025-01-07", "06:00", "08:00")}

	tests := []struct {
		name      string
		candidate *model.Booking
		want      bool
	}{
		{"touching boundary", booking("", "Table Tennis", "2025-01-07", "08:00", "10:00"), false},
		{"overlap", booking("", "Table Tennis", "2025-01-07", "07:00", "09:00"), true},
		{"contained", booking("", "Table Tennis", "2025-01-07", "06:00", "07:00"), true},
		{"other sport", booking("", "Box Cricket", "2025-01-07", "07:00", "09:00"), false},
		{"other date", booking("", "Table Tennis", "2025-01-08", "07:00", "09:00"), false},
		{"itself", booking("a", "Table Tennis", "2025-01-07", "06:00", "08:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(tt.candidate, existing))
		})
	}
}

func TestHasConflict_Symmetric(t *testing.T) {
	slots := AvailableStartSlots(sunday)
	var all []*model.Booking
	for _, s := range slots {
		for _, e := range ValidEndTimes(s, slots) {
			all = append(all, booking("", "Football", "2025-01-05", s, e))
		}
	}

	for _, a := range all {
		for _, b := range all {
			assert.Equal(t,
				HasConflict(a, []*model.Booking{b}),
				HasConflict(b, []*model.Booking{a}),
				"%s-%s vs %s-%s", a.StartTime, a.EndTime, b.StartTime, b.EndTime)
		}
	}
}

func TestOverlaps_DocumentedCases(t *testing.T) {
	assert.False(t, Overlaps("06:00", "08:00", "08:00", "10:00"))
	assert.True(t, Overlaps("06:00", "09:00", "08:00", "10:00"))
}

func fixedHorizon(now time.Time, loc *time.Location) Horizon {
	h := NewHorizon(loc, 2)
	h.Now = func() time.Time { return now }
	return h
}

func TestHorizon(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on the 6th is already the 7th in Kolkata.
	h := fixedHorizon(time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC), kolkata)

	assert.Equal(t, "2025-01-07", FormatDate(h.Today()))
	assert.Equal(t, []string{"2025-01-07", "2025-01-08", "2025-01-09"}, h.Dates())
	assert.True(t, h.Contains(mustDate("2025-01-07")))
	assert.True(t, h.Contains(mustDate("2025-01-09")))
	assert.False(t, h.Contains(mustDate("2025-01-06")))
	assert.False(t, h.Contains(mustDate("2025-01-10")))
}

func TestPlan_Defaults(t *testing.T) {
	h := fixedHorizon(time.Date(2025, 1, 5, 3, 0, 0, 0, time.UTC), time.UTC)

	p, err := DefaultHours.Plan(h, Selection{Rate: 300})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-05", p.Date)
	assert.Equal(t, "2025-01-05", p.MinDate)
	assert.Equal(t, "2025-01-07", p.MaxDate)
	assert.Equal(t, "06:00", p.StartTime)
	assert.Equal(t, "07:00", p.EndTime)
	assert.Equal(t, 300, p.TotalAmount)
}

func TestPlan_KeepsValidSelection(t *testing.T) {
	h := fixedHorizon(time.Date(2025, 1, 5, 3, 0, 0, 0, time.UTC), time.UTC)

	p, err := DefaultHours.Plan(h, Selection{Date: "2025-01-05", StartTime: "08:00", EndTime: "11:00", Rate: 300})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, p.EndSlots)
	assert.Equal(t, "11:00", p.EndTime)
	assert.Equal(t, 900, p.TotalAmount)
}

func TestPlan_ResetsStaleSelection(t *testing.T) {
	h := fixedHorizon(time.Date(2025, 1, 5, 3, 0, 0, 0, time.UTC), time.UTC)

	// 10:00 is open on Sunday but not on Tuesday.
	p, err := DefaultHours.Plan(h, Selection{Date: "2025-01-07", StartTime: "10:00", EndTime: "12:00", Rate: 200})
	require.NoError(t, err)

	assert.Equal(t, "06:00", p.StartTime)
	assert.Equal(t, "07:00", p.EndTime)
	assert.Equal(t, 200, p.TotalAmount)
}

func TestPlan_Errors(t *testing.T) {
	h := fixedHorizon(time.Date(2025, 1, 5, 3, 0, 0, 0, time.UTC), time.UTC)

	_, err := DefaultHours.Plan(h, Selection{Date: "05/01/2025"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = DefaultHours.Plan(h, Selection{Date: "2025-01-08"})
	assert.ErrorIs(t, err, ErrOutsideHorizon)
}

func TestCheckSlot(t *testing.T) {
	assert.NoError(t, DefaultHours.CheckSlot("2025-01-05", "08:00", "12:00"))
	assert.ErrorIs(t, DefaultHours.CheckSlot("2025-01-07", "08:00", "10:00"), ErrInvalidSlot)
	assert.ErrorIs(t, DefaultHours.CheckSlot("2025-01-07", "10:00", "11:00"), ErrInvalidSlot)
	assert.ErrorIs(t, DefaultHours.CheckSlot("2025-01-07", "8:00", "9:00"), ErrInvalidSlot)
	assert.ErrorIs(t, DefaultHours.CheckSlot("tomorrow", "08:00", "09:00"), ErrInvalidDate)
}

func TestParseHour(t *testing.T) {
	for _, ok := range []string{"00:00", "06:00", "23:00", "24:00"} {
		_, valid := ParseHour(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", "6:00", "06:30", "25:00", "24:01", "ab:00"} {
		_, valid := ParseHour(bad)
		assert.False(t, valid, bad)
	}
}
