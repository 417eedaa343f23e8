// Package timeperiod resolves named reporting periods (week, month, quarter,
// year) and explicit date ranges into half-open [start, end) windows. Every
// function takes the reference time as a parameter so callers stay
// deterministic and testable.
package timeperiod

import (
	"fmt"
	"time"
)

// Period is a named date-range shorthand.
type Period string

const (
	Week    Period = "week"
	Month   Period = "month"
	Quarter Period = "quarter"
	Year    Period = "year"
)

// Parse validates a period name, defaulting empty input to Month.
func Parse(s string) (Period, error) {
	switch Period(s) {
	case Week, Month, Quarter, Year:
		return Period(s), nil
	case "":
		return Month, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Range returns the half-open window of the period containing now.
// Weeks start on Monday.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case Week:
		weekday := int(now.Weekday())
		if weekday == 0 { // Sunday belongs to the week that started last Monday
			weekday = 7
		}
		start := time.Date(y, m, d-(weekday-1), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 7)
	case Quarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 3, 0)
	case Year:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default: // Month
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
}

// Previous returns the window immediately before the period containing now.
func (p Period) Previous(now time.Time) (time.Time, time.Time) {
	start, _ := p.Range(now)
	switch p {
	case Week:
		return start.AddDate(0, 0, -7), start
	case Quarter:
		return start.AddDate(0, -3, 0), start
	case Year:
		return start.AddDate(-1, 0, 0), start
	default:
		return start.AddDate(0, -1, 0), start
	}
}

// Resolve produces the query window: explicit start/end dates win over the
// named period. Date-only values are accepted alongside RFC 3339 timestamps;
// a date-only end is inclusive, so the window extends through that day.
func Resolve(period, startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	if startStr != "" && endStr != "" {
		start, _, err := parseFlexible(startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
		}
		end, dateOnly, err := parseFlexible(endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1)
		}
		if !end.After(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("end date must be after start date")
		}
		return start, end, nil
	}

	p, err := Parse(period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := p.Range(now)
	return start, end, nil
}

func parseFlexible(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("cannot parse %q", s)
}

// Days counts the calendar days covered by [start, end), rounding partial
// days up.
func Days(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	d := end.Sub(start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// WorkingDays counts the non-weekend days whose midnight falls in [start, end).
func WorkingDays(start, end time.Time) int {
	count := 0
	y, m, d := start.Date()
	cur := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	if cur.Before(start) {
		cur = cur.AddDate(0, 0, 1)
	}
	for cur.Before(end) {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return count
}
