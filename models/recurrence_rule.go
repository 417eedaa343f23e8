package models

import (
	"fmt"
	"time"
)

// RecurrenceRule is the canonical rule payload stored on a recurring event.
// The shape is a tagged variant keyed by Frequency: weekly rules carry ByDay,
// monthly rules carry ByMonthDay, yearly rules carry ByMonthDay and ByMonth,
// daily rules carry no constraints. Exceptions hold skipped dates (YYYY-MM-DD).
type RecurrenceRule struct {
	Frequency  RecurrenceKind `json:"frequency"`
	Interval   int            `json:"interval"`
	ByDay      []int          `json:"by_day,omitempty"`       // 0 = Sunday ... 6 = Saturday
	ByMonthDay []int          `json:"by_month_day,omitempty"` // 1..31
	ByMonth    []int          `json:"by_month,omitempty"`     // 1..12
	Exceptions []string       `json:"exceptions,omitempty"`
}

// Validate checks that the rule carries only the fields its frequency allows
// and that every constraint is within range.
func (r *RecurrenceRule) Validate() error {
	if !ValidRecurrenceKind(r.Frequency) || r.Frequency == RecurrenceNone {
		return fmt.Errorf("invalid recurrence frequency %q", r.Frequency)
	}
	if r.Interval < 1 {
		return fmt.Errorf("recurrence interval must be at least 1, got %d", r.Interval)
	}

	switch r.Frequency {
	case RecurrenceDaily:
		if len(r.ByDay) > 0 || len(r.ByMonthDay) > 0 || len(r.ByMonth) > 0 {
			return fmt.Errorf("daily rules take no by_day/by_month_day/by_month constraints")
		}
	case RecurrenceWeekly:
		if len(r.ByMonthDay) > 0 || len(r.ByMonth) > 0 {
			return fmt.Errorf("weekly rules only take by_day constraints")
		}
	case RecurrenceMonthly:
		if len(r.ByDay) > 0 || len(r.ByMonth) > 0 {
			return fmt.Errorf("monthly rules only take by_month_day constraints")
		}
	case RecurrenceYearly:
		if len(r.ByDay) > 0 {
			return fmt.Errorf("yearly rules only take by_month_day and by_month constraints")
		}
	}

	for _, d := range r.ByDay {
		if d < 0 || d > 6 {
			return fmt.Errorf("by_day entry %d out of range 0..6", d)
		}
	}
	for _, d := range r.ByMonthDay {
		if d < 1 || d > 31 {
			return fmt.Errorf("by_month_day entry %d out of range 1..31", d)
		}
	}
	for _, m := range r.ByMonth {
		if m < 1 || m > 12 {
			return fmt.Errorf("by_month entry %d out of range 1..12", m)
		}
	}
	for _, ex := range r.Exceptions {
		if _, err := time.Parse("2006-01-02", ex); err != nil {
			return fmt.Errorf("exception %q is not a YYYY-MM-DD date", ex)
		}
	}
	return nil
}

// ExceptionDates parses the exception list into dates; invalid entries are
// ignored (Validate rejects them on write).
func (r *RecurrenceRule) ExceptionDates() map[string]struct{} {
	if len(r.Exceptions) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(r.Exceptions))
	for _, ex := range r.Exceptions {
		out[ex] = struct{}{}
	}
	return out
}
