package timeperiod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("week")
	require.NoError(t, err)
	assert.Equal(t, Week, p)

	p, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, Month, p)

	_, err = Parse("decade")
	assert.Error(t, err)
}

func TestWeekRangeStartsMonday(t *testing.T) {
	// 2024-01-10 is a Wednesday.
	start, end := Week.Range(time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), end)

	// Sunday belongs to the week that started the previous Monday.
	start, _ = Week.Range(time.Date(2024, time.January, 14, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), start)
}

func TestMonthQuarterYearRanges(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)

	start, end := Month.Range(now)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = Quarter.Range(now)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = Year.Range(now)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPrevious(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

	start, end := Month.Previous(now)
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = Week.Previous(now)
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveExplicitDatesWin(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	start, end, err := Resolve("month", "2024-01-01", "2024-01-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	// A date-only end is inclusive.
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveRejectsInvertedRange(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	_, _, err := Resolve("", "2024-02-01", "2024-01-01", now)
	assert.Error(t, err)
}

func TestDays(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 31, Days(start, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, Days(start, start.Add(6*time.Hour)))
	assert.Equal(t, 0, Days(start, start))
}

func TestWorkingDays(t *testing.T) {
	// 2024-01-01 is a Monday; one full week has five working days.
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, WorkingDays(start, start.AddDate(0, 0, 7)))
	assert.Equal(t, 10, WorkingDays(start, start.AddDate(0, 0, 14)))
}
