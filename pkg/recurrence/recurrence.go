// Package recurrence derives canonical recurrence rules from an event's start
// time and expands recurring events into concrete occurrences inside a query
// window. Expansion is built on rrule-go and always enforces a hard occurrence
// cap and horizon, so a malformed rule can never iterate unbounded.
package recurrence

import (
	"time"

	"faithhub.app/models"

	"github.com/teambition/rrule-go"
)

// DefaultMaxOccurrences bounds expansion when the caller passes no limit.
const DefaultMaxOccurrences = 365

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Derive builds the canonical rule for a recurrence kind anchored at start:
// weekly repeats on start's weekday, monthly on start's day of month, yearly
// on start's day and month, daily with no extra constraint.
func Derive(kind models.RecurrenceKind, start time.Time) *models.RecurrenceRule {
	if kind == models.RecurrenceNone {
		return nil
	}
	rule := &models.RecurrenceRule{Frequency: kind, Interval: 1}
	switch kind {
	case models.RecurrenceWeekly:
		rule.ByDay = []int{int(start.Weekday())}
	case models.RecurrenceMonthly:
		rule.ByMonthDay = []int{start.Day()}
	case models.RecurrenceYearly:
		rule.ByMonthDay = []int{start.Day()}
		rule.ByMonth = []int{int(start.Month())}
	}
	return rule
}

// Expand returns the occurrence start times of the event that fall within
// [windowStart, windowEnd), clipped by the event's recurrence end and by the
// maxOccurrences / maxYears caps. Non-recurring events yield their single
// start time when it lies in the window.
func Expand(event *models.CalendarEvent, windowStart, windowEnd time.Time, maxOccurrences, maxYears int) ([]time.Time, error) {
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}

	if !event.IsRecurring || event.Recurrence == models.RecurrenceNone {
		if !event.StartTime.Before(windowStart) && event.StartTime.Before(windowEnd) {
			return []time.Time{event.StartTime}, nil
		}
		return nil, nil
	}

	until := windowEnd
	if event.RecurrenceEnd != nil && event.RecurrenceEnd.Before(until) {
		until = *event.RecurrenceEnd
	}
	if maxYears > 0 {
		if horizon := event.StartTime.AddDate(maxYears, 0, 0); horizon.Before(until) {
			until = horizon
		}
	}
	if until.Before(windowStart) {
		return nil, nil
	}

	rule, err := buildRRule(event, until)
	if err != nil {
		return nil, err
	}

	occurrences := rule.Between(windowStart, until, true)

	var exceptions map[string]struct{}
	if event.RecurrenceRules != nil {
		exceptions = event.RecurrenceRules.ExceptionDates()
	}

	out := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		if !occ.Before(windowEnd) {
			continue
		}
		if _, skip := exceptions[occ.Format("2006-01-02")]; skip {
			continue
		}
		out = append(out, occ)
		if len(out) >= maxOccurrences {
			break
		}
	}
	return out, nil
}

// Count is Expand reduced to the number of occurrences.
func Count(event *models.CalendarEvent, windowStart, windowEnd time.Time, maxOccurrences, maxYears int) int {
	occs, err := Expand(event, windowStart, windowEnd, maxOccurrences, maxYears)
	if err != nil {
		return 0
	}
	return len(occs)
}

func buildRRule(event *models.CalendarEvent, until time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Dtstart:  event.StartTime,
		Until:    until,
		Interval: 1,
	}

	switch event.Recurrence {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
	case models.RecurrenceYearly:
		opt.Freq = rrule.YEARLY
	}

	if rule := event.RecurrenceRules; rule != nil {
		if rule.Interval > 1 {
			opt.Interval = rule.Interval
		}
		for _, d := range rule.ByDay {
			if d >= 0 && d <= 6 {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
			}
		}
		opt.Bymonthday = append(opt.Bymonthday, rule.ByMonthDay...)
		opt.Bymonth = append(opt.Bymonth, rule.ByMonth...)
	}

	return rrule.NewRRule(opt)
}

// PerYear is the nominal occurrence frequency of a recurrence kind, used to
// rank recurring events by how often they fire.
func PerYear(kind models.RecurrenceKind) int {
	switch kind {
	case models.RecurrenceDaily:
		return 365
	case models.RecurrenceWeekly:
		return 52
	case models.RecurrenceMonthly:
		return 12
	case models.RecurrenceYearly:
		return 1
	}
	return 0
}

// Expected estimates how many occurrences a rule should have produced over
// the given number of elapsed days.
func Expected(kind models.RecurrenceKind, days int) int {
	switch kind {
	case models.RecurrenceDaily:
		return days
	case models.RecurrenceWeekly:
		return days / 7
	case models.RecurrenceMonthly:
		return days / 30
	case models.RecurrenceYearly:
		return days / 365
	}
	return 1
}
