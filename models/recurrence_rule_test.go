package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceRuleValidate(t *testing.T) {
	valid := []RecurrenceRule{
		{Frequency: RecurrenceDaily, Interval: 1},
		{Frequency: RecurrenceWeekly, Interval: 2, ByDay: []int{1, 3, 5}},
		{Frequency: RecurrenceMonthly, Interval: 1, ByMonthDay: []int{15}},
		{Frequency: RecurrenceYearly, Interval: 1, ByMonthDay: []int{25}, ByMonth: []int{12}},
		{Frequency: RecurrenceWeekly, Interval: 1, ByDay: []int{0}, Exceptions: []string{"2024-06-09"}},
	}
	for _, r := range valid {
		rule := r
		require.NoError(t, rule.Validate(), "frequency %s", rule.Frequency)
	}
}

func TestRecurrenceRuleValidateRejects(t *testing.T) {
	invalid := []RecurrenceRule{
		{Frequency: RecurrenceNone, Interval: 1},
		{Frequency: "hourly", Interval: 1},
		{Frequency: RecurrenceDaily, Interval: 0},
		{Frequency: RecurrenceDaily, Interval: 1, ByDay: []int{1}},
		{Frequency: RecurrenceWeekly, Interval: 1, ByMonthDay: []int{15}},
		{Frequency: RecurrenceMonthly, Interval: 1, ByDay: []int{1}},
		{Frequency: RecurrenceYearly, Interval: 1, ByDay: []int{1}},
		{Frequency: RecurrenceWeekly, Interval: 1, ByDay: []int{7}},
		{Frequency: RecurrenceMonthly, Interval: 1, ByMonthDay: []int{32}},
		{Frequency: RecurrenceYearly, Interval: 1, ByMonth: []int{13}},
		{Frequency: RecurrenceDaily, Interval: 1, Exceptions: []string{"09/06/2024"}},
	}
	for _, r := range invalid {
		rule := r
		assert.Error(t, rule.Validate(), "%+v should not validate", rule)
	}
}

func TestExceptionDates(t *testing.T) {
	rule := RecurrenceRule{
		Frequency:  RecurrenceWeekly,
		Interval:   1,
		Exceptions: []string{"2024-01-08", "2024-01-15"},
	}

	dates := rule.ExceptionDates()
	require.Len(t, dates, 2)
	_, ok := dates["2024-01-08"]
	assert.True(t, ok)

	var empty RecurrenceRule
	assert.Nil(t, empty.ExceptionDates())
}
