package scheduling

import "fmt"

// Selection is what a customer has picked so far. Empty fields are filled in
// by Plan the way the booking form does it.
type Selection struct {
	Date      string
	StartTime string
	EndTime   string
	Rate      int
}

// Plan is the derived state of a booking form: every value follows from the
// selection and the rules, nothing else.
type Plan struct {
	Date        string   `json:"date"`
	MinDate     string   `json:"min_date"`
	MaxDate     string   `json:"max_date"`
	StartSlots  []string `json:"start_slots"`
	StartTime   string   `json:"start_time"`
	EndSlots    []string `json:"end_slots"`
	EndTime     string   `json:"end_time"`
	Rate        int      `json:"rate"`
	TotalAmount int      `json:"total_amount"`
}

// Plan derives start slots from the date, end slots from the start and the
// price from both. An empty date means today. A start or end that is not
// offered is replaced by the first one that is.
func (o OperatingHours) Plan(h Horizon, sel Selection) (*Plan, error) {
	dateStr := sel.Date
	if dateStr == "" {
		dateStr = FormatDate(h.Today())
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if !h.Contains(date) {
		return nil, fmt.Errorf("%w: %s not in [%s, %s]", ErrOutsideHorizon, dateStr, FormatDate(h.Today()), FormatDate(h.Last()))
	}

	p := &Plan{
		Date:       dateStr,
		MinDate:    FormatDate(h.Today()),
		MaxDate:    FormatDate(h.Last()),
		StartSlots: o.StartSlots(date),
		EndSlots:   []string{},
		Rate:       sel.Rate,
	}

	switch {
	case contains(p.StartSlots, sel.StartTime):
		p.StartTime = sel.StartTime
	case len(p.StartSlots) > 0:
		p.StartTime = p.StartSlots[0]
	}

	p.EndSlots = ValidEndTimes(p.StartTime, p.StartSlots)
	switch {
	case contains(p.EndSlots, sel.EndTime):
		p.EndTime = sel.EndTime
	case len(p.EndSlots) > 0:
		p.EndTime = p.EndSlots[0]
	}

	p.TotalAmount = Price(p.StartTime, p.EndTime, p.Rate)
	return p, nil
}

// CheckSlot reports whether [start, end) is a bookable interval on date.
func (o OperatingHours) CheckSlot(date, start, end string) error {
	d, err := ParseDate(date)
	if err != nil {
		return err
	}
	if !IsHourSlot(start) || !IsHourSlot(end) {
		return ErrInvalidSlot
	}

	slots := o.StartSlots(d)
	if !contains(slots, start) {
		return fmt.Errorf("%w: %s is not an opening hour on %s", ErrInvalidSlot, start, date)
	}
	if !contains(ValidEndTimes(start, slots), end) {
		return fmt.Errorf("%w: a booking starting at %s cannot end at %s", ErrInvalidSlot, start, end)
	}
	return nil
}
