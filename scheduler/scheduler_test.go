package scheduler

import (
	"context"
	"os"
	"testing"
	"time"

	"faithhub.app/configs/configslog"
	"faithhub.app/models"
	"faithhub.app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

type fakeEventRepo struct {
	repositories.ICalendarEventRepository
	events []models.CalendarEvent
}

func (f *fakeEventRepo) FindStartingBetween(_ context.Context, _, _ time.Time) ([]models.CalendarEvent, error) {
	return f.events, nil
}

type fakeNotifier struct {
	reminders []int
}

func (f *fakeNotifier) SendInvitation(context.Context, *models.CalendarEvent, *models.User)         {}
func (f *fakeNotifier) SendInvitationAccepted(context.Context, *models.CalendarEvent, *models.User) {}
func (f *fakeNotifier) SendInvitationDeclined(context.Context, *models.CalendarEvent, *models.User) {}
func (f *fakeNotifier) SendRemoval(context.Context, *models.CalendarEvent, *models.User)            {}

func (f *fakeNotifier) SendReminder(_ context.Context, _ *models.CalendarEvent, minutesBefore int) {
	f.reminders = append(f.reminders, minutesBefore)
}

func newTestScheduler(events []models.CalendarEvent, now time.Time) (*ReminderScheduler, *fakeNotifier) {
	notifier := &fakeNotifier{}
	return &ReminderScheduler{
		eventRepo: &fakeEventRepo{events: events},
		notifier:  notifier,
		now:       func() time.Time { return now },
	}, notifier
}

func TestRunOnceFiresDueReminders(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		{
			Title:     "Morning Prayer",
			StartTime: now.Add(30 * time.Minute),
			Reminders: []int{30, 15},
		},
	}

	s, notifier := newTestScheduler(events, now)
	s.lastRun = now.Add(-time.Minute)
	s.RunOnce()

	// Only the 30-minute offset is due in this scan window; the 15-minute
	// one comes due fifteen minutes later.
	require.Len(t, notifier.reminders, 1)
	assert.Equal(t, 30, notifier.reminders[0])
}

func TestRunOnceFiresEachReminderOnce(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		{
			Title:     "Bible Study",
			StartTime: now.Add(30 * time.Minute),
			Reminders: []int{30},
		},
	}

	s, notifier := newTestScheduler(events, now)
	s.lastRun = now.Add(-time.Minute)
	s.RunOnce()
	require.Len(t, notifier.reminders, 1)

	// The next scan starts where the previous one ended, so the same
	// reminder is never sent twice.
	s.now = func() time.Time { return now.Add(time.Minute) }
	s.RunOnce()
	assert.Len(t, notifier.reminders, 1)
}

func TestRunOnceSkipsFutureReminders(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	events := []models.CalendarEvent{
		{
			Title:     "Choir Practice",
			StartTime: now.Add(2 * time.Hour),
			Reminders: []int{15},
		},
	}

	s, notifier := newTestScheduler(events, now)
	s.lastRun = now.Add(-time.Minute)
	s.RunOnce()
	assert.Empty(t, notifier.reminders)
}
