package services

import (
	"testing"
	"time"

	"faithhub.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsEvent(start time.Time, minutes int, typ models.EventType) models.CalendarEvent {
	return models.CalendarEvent{
		UserID:    1,
		Title:     "event",
		Type:      typ,
		Status:    models.StatusScheduled,
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestEventMinutesWeighsAllDay(t *testing.T) {
	e := statsEvent(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), 60, models.EventTypeEvent)
	assert.Equal(t, 60, eventMinutes(&e))

	e.IsAllDay = true
	assert.Equal(t, allDayMinutes, eventMinutes(&e))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, float64(100), percentChange(0, 5))
	assert.Equal(t, float64(0), percentChange(0, 0))
	assert.Equal(t, float64(50), percentChange(10, 15))
	assert.Equal(t, float64(-25), percentChange(20, 15))
}

func TestBuildOverview(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	allDay := statsEvent(start, 0, models.EventTypeHoliday)
	allDay.IsAllDay = true
	recurring := statsEvent(start.Add(24*time.Hour), 30, models.EventTypeMeeting)
	recurring.IsRecurring = true

	stats := buildOverview([]models.CalendarEvent{
		statsEvent(start, 60, models.EventTypeMeeting),
		allDay,
		recurring,
	})

	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 60+480+30, stats.TotalMinutes)
	assert.Equal(t, 190.0, stats.AvgDurationMinutes)
	assert.Equal(t, 2, stats.MeetingsCount)
	assert.Equal(t, 1, stats.AllDayCount)
	assert.Equal(t, 1, stats.RecurringCount)
	assert.Equal(t, 2, stats.EventsByType["meeting"])
	assert.Equal(t, 3, stats.EventsByStatus["scheduled"])
}

func TestBuildBusyDays(t *testing.T) {
	windowStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 7)
	day1 := windowStart.Add(9 * time.Hour)
	day2 := windowStart.AddDate(0, 0, 1).Add(9 * time.Hour)

	stats := buildBusyDays([]models.CalendarEvent{
		statsEvent(day1, 60, models.EventTypeEvent),
		statsEvent(day1.Add(2*time.Hour), 30, models.EventTypeEvent),
		statsEvent(day2, 45, models.EventTypeEvent),
	}, windowStart, windowEnd, 10)

	require.Len(t, stats.BusiestDays, 2)
	assert.Equal(t, "2024-01-01", stats.BusiestDays[0].Date)
	assert.Equal(t, 2, stats.BusiestDays[0].EventsCount)
	assert.Equal(t, 90, stats.BusiestDays[0].Minutes)
	assert.Equal(t, 2, stats.DaysWithEvents)
	assert.Equal(t, 5, stats.DaysWithoutEvents)
}

func TestBuildBusyDaysExpandsRecurringOccurrences(t *testing.T) {
	windowStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 28)

	weekly := statsEvent(windowStart.Add(9*time.Hour), 30, models.EventTypeEvent)
	weekly.IsRecurring = true
	weekly.Recurrence = models.RecurrenceWeekly

	stats := buildBusyDays([]models.CalendarEvent{weekly}, windowStart, windowEnd, 10)

	// The stored row is one event, but the series lands on four Mondays.
	require.Len(t, stats.BusiestDays, 4)
	assert.Equal(t, "2024-01-01", stats.BusiestDays[0].Date)
	assert.Equal(t, "2024-01-22", stats.BusiestDays[3].Date)
	for _, day := range stats.BusiestDays {
		assert.Equal(t, 1, day.EventsCount)
		assert.Equal(t, 30, day.Minutes)
	}
	assert.Equal(t, 4, stats.DaysWithEvents)
	assert.Equal(t, 24, stats.DaysWithoutEvents)
}

func TestBuildTypeDistribution(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	slices := buildTypeDistribution([]models.CalendarEvent{
		statsEvent(start, 60, models.EventTypeMeeting),
		statsEvent(start, 30, models.EventTypeMeeting),
		statsEvent(start, 30, models.EventTypeTask),
	})

	require.Len(t, slices, 2)
	assert.Equal(t, "meeting", slices[0].Type)
	assert.Equal(t, 2, slices[0].Count)
	assert.Equal(t, 66.67, slices[0].Percent)
	assert.Equal(t, "#3b82f6", slices[0].Color)
	assert.Equal(t, "#64748b", slices[1].Color)
}

func TestBuildPlatformUsage(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	zoom := statsEvent(start, 60, models.EventTypeMeeting)
	zoom.MeetingPlatform = "zoom"
	linkOnly := statsEvent(start, 30, models.EventTypeMeeting)
	linkOnly.MeetingLink = "https://example.com/room"
	offline := statsEvent(start, 30, models.EventTypeEvent)

	usage := buildPlatformUsage([]models.CalendarEvent{zoom, linkOnly, offline})

	require.Len(t, usage, 2)
	assert.Equal(t, "other", usage[0].Platform)
	assert.Equal(t, "zoom", usage[1].Platform)
	assert.Equal(t, "Zoom Meeting", usage[1].Label)
	assert.Equal(t, 50.0, usage[1].Percent)
}

func TestBuildDurationStatsBucketBoundaries(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	stats := buildDurationStats([]models.CalendarEvent{
		statsEvent(start, 14, models.EventTypeEvent),
		statsEvent(start, 15, models.EventTypeEvent),
		statsEvent(start, 239, models.EventTypeEvent),
		statsEvent(start, 240, models.EventTypeEvent),
	})

	assert.Equal(t, 1, stats.Buckets["0-15"])
	assert.Equal(t, 1, stats.Buckets["15-30"])
	assert.Equal(t, 1, stats.Buckets["120-240"])
	assert.Equal(t, 1, stats.Buckets["240+"])
	assert.Equal(t, 0, stats.Buckets["30-60"])
	assert.Equal(t, 14, stats.MinMinutes)
	assert.Equal(t, 240, stats.MaxMinutes)
	assert.Equal(t, 127.0, stats.AvgMinutes)
}

func TestBuildTimePatterns(t *testing.T) {
	monday := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	patterns := buildTimePatterns([]models.CalendarEvent{
		statsEvent(monday, 60, models.EventTypeEvent),
		statsEvent(monday.Add(5*time.Hour), 60, models.EventTypeEvent),
		statsEvent(tuesday, 60, models.EventTypeEvent),
	})

	assert.Equal(t, 2, patterns.Hourly[9])
	assert.Equal(t, 1, patterns.Hourly[14])
	assert.Equal(t, 2, patterns.Daily["Monday"])
	assert.Equal(t, 3, patterns.Weekly["2024-W01"])
	assert.Equal(t, "Monday", patterns.PeakDay)
}

func TestBuildProductivityInsights(t *testing.T) {
	// One working week: 5 working days, 2400 capacity minutes.
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	meeting := statsEvent(start.Add(9*time.Hour), 1500, models.EventTypeMeeting)
	other := statsEvent(start.AddDate(0, 0, 1).Add(9*time.Hour), 900, models.EventTypeEvent)

	stats := buildProductivity([]models.CalendarEvent{meeting, other}, start, end)

	assert.Equal(t, 5, stats.WorkingDays)
	assert.Equal(t, 2400, stats.CapacityMin)
	assert.Equal(t, 2400, stats.BusyMinutes)
	assert.Equal(t, 0, stats.FreeMinutes)
	assert.Equal(t, 62.5, stats.MeetingPercent)

	levels := make([]string, 0, len(stats.Insights))
	for _, in := range stats.Insights {
		levels = append(levels, in.Level)
	}
	assert.Contains(t, levels, "warning")
	assert.NotContains(t, levels, "critical")
}

func TestBuildProductivityOverbooked(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	stats := buildProductivity([]models.CalendarEvent{
		statsEvent(start.Add(9*time.Hour), 3000, models.EventTypeEvent),
	}, start, end)

	require.NotEmpty(t, stats.Insights)
	levels := make([]string, 0, len(stats.Insights))
	for _, in := range stats.Insights {
		levels = append(levels, in.Level)
	}
	assert.Contains(t, levels, "critical")
	assert.Contains(t, levels, "info")
}

func TestBuildPeriodComparison(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	current := []models.CalendarEvent{
		statsEvent(start, 60, models.EventTypeMeeting),
	}
	previous := []models.CalendarEvent{
		statsEvent(start.AddDate(0, 0, -7), 60, models.EventTypeMeeting),
		statsEvent(start.AddDate(0, 0, -7), 60, models.EventTypeMeeting),
	}

	cmp := buildPeriodComparison(current, previous)

	events := cmp.Metrics["events_count"]
	assert.Equal(t, 1.0, events.Current)
	assert.Equal(t, 2.0, events.Previous)
	assert.Equal(t, -50.0, events.ChangePercent)
	assert.False(t, events.Improved)

	// Fewer meetings counts as an improvement.
	meetings := cmp.Metrics["meetings_count"]
	assert.True(t, meetings.Improved)
}

func TestBuildTopCollaborators(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	e1 := statsEvent(start, 60, models.EventTypeMeeting)
	e1.Subscriptions = []models.CalendarSubscription{
		{UserID: 2, Status: models.SubscriptionAccepted, User: models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Mary"}},
		{UserID: 3, Status: models.SubscriptionPending},
		{UserID: 1, Status: models.SubscriptionAccepted},
	}
	e2 := statsEvent(start.Add(2*time.Hour), 30, models.EventTypeMeeting)
	e2.Subscriptions = []models.CalendarSubscription{
		{UserID: 2, Status: models.SubscriptionAccepted, User: models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Mary"}},
		{UserID: 4, Status: models.SubscriptionAccepted, User: models.User{BaseModel: models.BaseModel{ID: 4}, Name: "John"}},
	}

	out := buildTopCollaborators([]models.CalendarEvent{e1, e2}, 1, 5)

	require.Len(t, out, 2)
	assert.Equal(t, uint(2), out[0].UserID)
	assert.Equal(t, 2, out[0].SharedEvents)
	assert.Equal(t, "Mary", out[0].Name)
	assert.Equal(t, uint(4), out[1].UserID)
}

func TestLocationCategory(t *testing.T) {
	cases := map[string]string{
		"Zoom call":         "virtual",
		"Main Office":       "office",
		"Home":              "home",
		"Cafe Luna":         "cafe",
		"St. Mary's Church": "religious",
		"City Park":         "outdoor",
		"Warehouse 12":      "other",
	}
	for location, want := range cases {
		assert.Equal(t, want, locationCategory(location), location)
	}
}

func TestBuildRecurringStats(t *testing.T) {
	windowStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 28)
	now := windowEnd

	chain := "chain-1"
	weekly := statsEvent(windowStart.Add(9*time.Hour), 30, models.EventTypeEvent)
	weekly.IsRecurring = true
	weekly.Recurrence = models.RecurrenceWeekly
	weekly.RecurrenceChainID = &chain
	weekly.CreatedAt = windowStart

	stats := buildRecurringStats([]models.CalendarEvent{
		weekly, statsEvent(windowStart.Add(10*time.Hour), 45, models.EventTypeEvent),
	}, windowStart, windowEnd, now)

	assert.Equal(t, 1, stats.RecurringEvents)
	assert.Equal(t, 1, stats.OneTimeEvents)
	assert.Equal(t, 1, stats.ByFrequency["weekly"])
	assert.Equal(t, 52, stats.ExpectedPerYear)
	assert.Equal(t, 1, stats.ChainsInProgress)

	// Four Mondays in the window.
	assert.Equal(t, 4, stats.TotalOccurrences)
	assert.Equal(t, 4.0, stats.AvgOccurrences)
	// Three repeats, each sparing creation plus the 30-minute slot setup.
	assert.Equal(t, 3*(eventCreationMinutes+30), stats.TimeSavedMinutes)
	// Four weeks elapsed, four occurrences produced.
	assert.Equal(t, 100.0, stats.ConsistencyScore)
	require.Len(t, stats.Recommendations, 1)
	assert.Contains(t, stats.Recommendations[0], "well managed")
}

func TestBuildRecurringStatsFlagsStaleSeries(t *testing.T) {
	windowStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 7)
	now := windowEnd

	old := statsEvent(windowStart.Add(9*time.Hour), 30, models.EventTypeEvent)
	old.IsRecurring = true
	old.Recurrence = models.RecurrenceWeekly
	old.CreatedAt = now.AddDate(-2, 0, 0)

	stats := buildRecurringStats([]models.CalendarEvent{old}, windowStart, windowEnd, now)

	require.NotEmpty(t, stats.Recommendations)
	assert.Contains(t, stats.Recommendations[0], "older than a year")
}

func TestBuildStatusStats(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	completed := statsEvent(start, 60, models.EventTypeEvent)
	completed.Status = models.StatusCompleted
	cancelled := statsEvent(start, 60, models.EventTypeEvent)
	cancelled.Status = models.StatusCancelled
	prevCompleted := statsEvent(start.AddDate(0, 0, -7), 60, models.EventTypeEvent)
	prevCompleted.Status = models.StatusCompleted

	stats := buildStatusStats(
		[]models.CalendarEvent{
			completed, cancelled,
			statsEvent(start, 60, models.EventTypeEvent),
			statsEvent(start, 60, models.EventTypeEvent),
		},
		[]models.CalendarEvent{prevCompleted, prevCompleted},
	)

	assert.Equal(t, 25.0, stats.CompletionRate)
	assert.Equal(t, 25.0, stats.CancelRate)
	assert.Equal(t, 2, stats.ByStatus["scheduled"])
	assert.Equal(t, 50.0, stats.Percentages["scheduled"])
	assert.Equal(t, 25.0, stats.Percentages["completed"])

	completedTrend := stats.Trends["completed"]
	assert.Equal(t, 1, completedTrend.Current)
	assert.Equal(t, 2, completedTrend.Previous)
	assert.Equal(t, -50.0, completedTrend.ChangePercent)
	assert.Equal(t, "down", completedTrend.Direction)

	cancelledTrend := stats.Trends["cancelled"]
	assert.Equal(t, 0, cancelledTrend.Previous)
	assert.Equal(t, 100.0, cancelledTrend.ChangePercent)
	assert.Equal(t, "up", cancelledTrend.Direction)

	require.Len(t, stats.Recommendations, 2)
	assert.Contains(t, stats.Recommendations[0], "completion rate")
	assert.Contains(t, stats.Recommendations[1], "cancelled")
}

func TestBuildStatusStatsHealthy(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	var current []models.CalendarEvent
	for i := 0; i < 5; i++ {
		e := statsEvent(start, 60, models.EventTypeEvent)
		e.Status = models.StatusCompleted
		current = append(current, e)
	}

	stats := buildStatusStats(current, nil)

	assert.Equal(t, 100.0, stats.CompletionRate)
	require.Len(t, stats.Recommendations, 1)
	assert.Contains(t, stats.Recommendations[0], "healthy")
}

func TestBuildAttendanceStats(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	e := statsEvent(start, 60, models.EventTypeMeeting)
	e.Subscriptions = []models.CalendarSubscription{
		{UserID: 2, Status: models.SubscriptionAccepted},
		{UserID: 3, Status: models.SubscriptionAccepted},
		{UserID: 4, Status: models.SubscriptionDeclined},
		{UserID: 5, Status: models.SubscriptionPending},
	}

	stats := buildAttendanceStats([]models.CalendarEvent{e})

	assert.Equal(t, 4, stats.Invited)
	assert.Equal(t, 2, stats.Accepted)
	assert.Equal(t, 1, stats.Declined)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 66.67, stats.AcceptanceRate)
}

func TestBuildAdminStats(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	a := statsEvent(start, 60, models.EventTypeMeeting)
	b := statsEvent(start, 30, models.EventTypeEvent)
	b.UserID = 2
	c := statsEvent(start, 30, models.EventTypeEvent)
	c.UserID = 2

	stats := buildAdminStats([]models.CalendarEvent{a, b, c})

	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 2, stats.ActiveUsers)
	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 2, stats.EventsPerUser[2])
}

func TestBuildMediaStats(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	withImages := statsEvent(start, 60, models.EventTypeEvent)
	withImages.Images = []models.CalendarEventImage{
		{Size: 1000, IsPrimary: true},
		{Size: 2000},
	}

	stats := buildMediaStats([]models.CalendarEvent{
		withImages, statsEvent(start, 30, models.EventTypeEvent),
	})

	assert.Equal(t, 1, stats.EventsWithImages)
	assert.Equal(t, 2, stats.TotalImages)
	assert.Equal(t, 1, stats.PrimarySet)
	assert.Equal(t, int64(3000), stats.TotalBytes)
	assert.Equal(t, 2.0, stats.AvgPerEvent)
}
