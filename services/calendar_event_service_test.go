package services

import (
	"testing"
	"time"

	"faithhub.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() EventInput {
	return EventInput{
		Title:     "Sunday Service",
		StartTime: time.Date(2024, time.June, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, time.June, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestValidateEventInput(t *testing.T) {
	require.NoError(t, ValidateEventInput(validInput()))

	full := validInput()
	full.Type = models.EventTypeMeeting
	full.Visibility = models.VisibilityPublic
	full.Status = models.StatusScheduled
	full.MeetingPlatform = "zoom"
	full.Recurrence = models.RecurrenceWeekly
	full.RecurrenceRules = &models.RecurrenceRule{
		Frequency: models.RecurrenceWeekly,
		Interval:  1,
		ByDay:     []int{0},
	}
	full.Reminders = []int{30, 15}
	require.NoError(t, ValidateEventInput(full))
}

func TestValidateEventInputRejects(t *testing.T) {
	cases := map[string]func(*EventInput){
		"missing title":       func(in *EventInput) { in.Title = "" },
		"missing times":       func(in *EventInput) { in.StartTime, in.EndTime = time.Time{}, time.Time{} },
		"end before start":    func(in *EventInput) { in.EndTime = in.StartTime.Add(-time.Hour) },
		"end equals start":    func(in *EventInput) { in.EndTime = in.StartTime },
		"unknown type":        func(in *EventInput) { in.Type = "party" },
		"unknown visibility":  func(in *EventInput) { in.Visibility = "secret" },
		"unknown status":      func(in *EventInput) { in.Status = "done" },
		"unknown recurrence":  func(in *EventInput) { in.Recurrence = "hourly" },
		"unknown platform":    func(in *EventInput) { in.MeetingPlatform = "skype" },
		"negative reminder":   func(in *EventInput) { in.Reminders = []int{-5} },
		"reminder too large":  func(in *EventInput) { in.Reminders = []int{2000} },
		"rules without freq":  func(in *EventInput) { in.RecurrenceRules = &models.RecurrenceRule{Frequency: models.RecurrenceWeekly, Interval: 1} },
		"rule freq mismatch": func(in *EventInput) {
			in.Recurrence = models.RecurrenceDaily
			in.RecurrenceRules = &models.RecurrenceRule{Frequency: models.RecurrenceWeekly, Interval: 1}
		},
		"invalid rule": func(in *EventInput) {
			in.Recurrence = models.RecurrenceWeekly
			in.RecurrenceRules = &models.RecurrenceRule{Frequency: models.RecurrenceWeekly, Interval: 0}
		},
		"recurrence end before start": func(in *EventInput) {
			end := in.StartTime.Add(-24 * time.Hour)
			in.Recurrence = models.RecurrenceWeekly
			in.RecurrenceEnd = &end
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			err := ValidateEventInput(in)
			assert.ErrorIs(t, err, ErrEventInvalidInput)
		})
	}
}

func TestBuildEventDefaults(t *testing.T) {
	svc := &CalendarEventService{now: func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}}

	event := svc.buildEvent(7, validInput())

	assert.Equal(t, uint(7), event.UserID)
	assert.Equal(t, models.EventTypeEvent, event.Type)
	assert.Equal(t, "#8b5cf6", event.Color)
	assert.Equal(t, "UTC", event.Timezone)
	assert.Equal(t, models.VisibilityPrivate, event.Visibility)
	assert.Equal(t, models.StatusScheduled, event.Status)
	assert.Equal(t, models.RecurrenceNone, event.Recurrence)
	assert.False(t, event.IsRecurring)
	assert.Nil(t, event.RecurrenceChainID)
	assert.Equal(t, []int{30, 15}, event.Reminders)
}

func TestBuildEventRecurring(t *testing.T) {
	svc := &CalendarEventService{now: func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}}

	input := validInput()
	input.Recurrence = models.RecurrenceWeekly

	event := svc.buildEvent(7, input)

	assert.True(t, event.IsRecurring)
	require.NotNil(t, event.RecurrenceChainID)
	assert.NotEmpty(t, *event.RecurrenceChainID)
	require.NotNil(t, event.RecurrenceRules)
	assert.Equal(t, models.RecurrenceWeekly, event.RecurrenceRules.Frequency)
	// 2024-06-02 is a Sunday.
	assert.Equal(t, []int{0}, event.RecurrenceRules.ByDay)
}

func recurringChainEvent() *models.CalendarEvent {
	chain := "chain-1"
	start := time.Date(2024, time.June, 2, 10, 0, 0, 0, time.UTC)
	return &models.CalendarEvent{
		BaseModel:         models.BaseModel{ID: 42},
		UserID:            7,
		Title:             "Sunday Service",
		StartTime:         start,
		EndTime:           start.Add(2 * time.Hour),
		IsRecurring:       true,
		Recurrence:        models.RecurrenceWeekly,
		RecurrenceChainID: &chain,
	}
}

func TestPastSegmentSplitsChainOnMovedStart(t *testing.T) {
	event := recurringChainEvent()
	newStart := event.StartTime.AddDate(0, 1, 0)

	segment := pastSegment(event, newStart)

	require.NotNil(t, segment)
	// A fresh row on the same chain, so this/future/all reach different rows.
	assert.Zero(t, segment.ID)
	require.NotNil(t, segment.RecurrenceChainID)
	assert.Equal(t, *event.RecurrenceChainID, *segment.RecurrenceChainID)
	assert.Equal(t, event.StartTime, segment.StartTime)
	assert.Equal(t, event.Title, segment.Title)
	require.NotNil(t, segment.RecurrenceEnd)
	assert.Equal(t, newStart, *segment.RecurrenceEnd)
}

func TestPastSegmentKeepsEarlierRecurrenceEnd(t *testing.T) {
	event := recurringChainEvent()
	existingEnd := event.StartTime.AddDate(0, 0, 14)
	event.RecurrenceEnd = &existingEnd

	segment := pastSegment(event, event.StartTime.AddDate(0, 1, 0))

	require.NotNil(t, segment)
	assert.Equal(t, existingEnd, *segment.RecurrenceEnd)
}

func TestPastSegmentSkipsWhenNothingPrecedes(t *testing.T) {
	event := recurringChainEvent()

	// Start unchanged or moved earlier: no past occurrences to preserve.
	assert.Nil(t, pastSegment(event, event.StartTime))
	assert.Nil(t, pastSegment(event, event.StartTime.Add(-time.Hour)))

	oneOff := recurringChainEvent()
	oneOff.IsRecurring = false
	assert.Nil(t, pastSegment(oneOff, oneOff.StartTime.AddDate(0, 1, 0)))
}
