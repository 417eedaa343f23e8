package icalendar

import (
	"strings"
	"testing"
	"time"

	"faithhub.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	event := &models.CalendarEvent{
		Title:       "Team Sync",
		Description: "Weekly planning call",
		Location:    "Main Hall",
		MeetingLink: "https://zoom.us/j/123",
		StartTime:   time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC),
	}
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	body, err := Encode(event, "-//FaithHub//Calendar//EN", now)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "PRODID:-//FaithHub//Calendar//EN")
	assert.Contains(t, out, "SUMMARY:Team Sync")
	assert.Contains(t, out, "LOCATION:Main Hall")
	assert.Contains(t, out, "DTSTART:20240108T090000Z")
	assert.Contains(t, out, "DTEND:20240108T100000Z")
	assert.Contains(t, out, "DTSTAMP:20240101T000000Z")
	assert.Contains(t, out, "@faithhub.app")
}

func TestEncodeEscapesText(t *testing.T) {
	event := &models.CalendarEvent{
		Title:     "Prayer, praise; worship",
		StartTime: time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, time.March, 1, 19, 0, 0, 0, time.UTC),
	}

	body, err := Encode(event, "-//FaithHub//Calendar//EN", time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(body), `Prayer\, praise\; worship`)
}

func TestEncodeOmitsEmptyOptionalProps(t *testing.T) {
	event := &models.CalendarEvent{
		Title:     "Quiet Hour",
		StartTime: time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, time.March, 1, 7, 0, 0, 0, time.UTC),
	}

	body, err := Encode(event, "-//FaithHub//Calendar//EN", time.Now())
	require.NoError(t, err)
	out := string(body)
	assert.False(t, strings.Contains(out, "DESCRIPTION"))
	assert.False(t, strings.Contains(out, "LOCATION"))
	assert.False(t, strings.Contains(out, "URL"))
}
