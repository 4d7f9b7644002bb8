package model

import "time"

// Slot layouts for the date and time-of-day parts.  Dates carry no time
// zone; times are quantized to the half-hour by the booking UI (08:00
// through 18:00), which this package does not enforce.
const (
	SlotDateLayout = "2006-01-02"
	SlotTimeLayout = "15:04"
)

// Slot is a candidate appointment time: a calendar date plus a
// time-of-day.  Both parts are kept as strings so that they map directly
// onto DATE and TIME columns without time zone ambiguity.
//
// Fields:
//  Date      – calendar date in YYYY-MM-DD form.
//  StartTime – time of day in HH:MM form.
type Slot struct {
	Date      string `json:"date"`       // reservations.requested_date / proposed_date
	StartTime string `json:"start_time"` // reservations.requested_time / proposed_time
}

// IsZero reports whether the slot carries no value at all.
func (s Slot) IsZero() bool {
	return s.Date == "" && s.StartTime == ""
}

// Equal reports whether two slots denote the same date and time-of-day.
func (s Slot) Equal(o Slot) bool {
	return s.Date == o.Date && s.StartTime == o.StartTime
}

// Validate checks that both parts parse under their layouts.  It does not
// check half-hour quantization or opening hours; those are UI concerns.
func (s Slot) Validate() error {
	if _, err := time.Parse(SlotDateLayout, s.Date); err != nil {
		return err
	}
	if _, err := time.Parse(SlotTimeLayout, s.StartTime); err != nil {
		return err
	}
	return nil
}

// IsPast reports whether the slot has lapsed relative to now.  A slot is
// past iff its date is strictly before today's date; the time-of-day is
// ignored on purpose, so a slot earlier today is still actionable.
// Unparseable dates are treated as past so they never survive validation.
func (s Slot) IsPast(now time.Time) bool {
	d, err := time.Parse(SlotDateLayout, s.Date)
	if err != nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}
