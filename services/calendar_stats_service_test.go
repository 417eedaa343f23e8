package services

import (
	"context"
	"testing"
	"time"

	"faithhub.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomRejectsBadRequests(t *testing.T) {
	// Validation happens before any row is fetched, so a zero-value service
	// is enough here.
	svc := &StatsService{}
	ctx := context.Background()

	_, err := svc.Custom(ctx, 1, CustomStatsRequest{})
	assert.ErrorIs(t, err, ErrStatsInvalidInput)

	_, err = svc.Custom(ctx, 1, CustomStatsRequest{Metrics: []string{"median_duration"}})
	assert.ErrorIs(t, err, ErrStatsInvalidInput)

	_, err = svc.Custom(ctx, 1, CustomStatsRequest{
		Metrics: []string{"events_count"},
		GroupBy: "hour",
	})
	assert.ErrorIs(t, err, ErrStatsInvalidInput)
}

func TestCustomGroupKey(t *testing.T) {
	e := &models.CalendarEvent{
		Type:      models.EventTypeMeeting,
		Status:    models.StatusScheduled,
		StartTime: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "2024-01-10", customGroupKey(e, "day"))
	assert.Equal(t, "2024-W02", customGroupKey(e, "week"))
	assert.Equal(t, "2024-01", customGroupKey(e, "month"))
	assert.Equal(t, "meeting", customGroupKey(e, "type"))
	assert.Equal(t, "scheduled", customGroupKey(e, "status"))
	assert.Equal(t, "none", customGroupKey(e, "platform"))

	e.MeetingPlatform = "zoom"
	assert.Equal(t, "zoom", customGroupKey(e, "platform"))
}

func TestBuildCustomStats(t *testing.T) {
	day1 := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	events := []models.CalendarEvent{
		{StartTime: day1, EndTime: day1.Add(time.Hour), Attendees: []string{"a@x", "b@x"}},
		{StartTime: day1.Add(2 * time.Hour), EndTime: day1.Add(2*time.Hour + 30*time.Minute)},
		{StartTime: day2, EndTime: day2.Add(45 * time.Minute)},
	}

	rows := buildCustomStats(events, []string{"events_count", "duration_sum", "avg_duration", "max_attendees"}, "day")

	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-08", rows[0].Group)
	assert.Equal(t, 2.0, rows[0].Values["events_count"])
	assert.Equal(t, 90.0, rows[0].Values["duration_sum"])
	assert.Equal(t, 45.0, rows[0].Values["avg_duration"])
	assert.Equal(t, 2.0, rows[0].Values["max_attendees"])

	assert.Equal(t, "2024-01-09", rows[1].Group)
	assert.Equal(t, 45.0, rows[1].Values["duration_sum"])
}
