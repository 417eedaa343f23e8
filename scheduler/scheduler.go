// Package scheduler runs the reminder daemon: a cron job scanning for events
// whose configured reminder offsets come due, delivered through the
// notification service.
package scheduler

import (
	"context"
	"sync"
	"time"

	"faithhub.app/configs/configslog"
	"faithhub.app/repositories"
	"faithhub.app/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// lookahead bounds the scan so the daemon never walks the whole table.
const lookahead = 24 * time.Hour

// ReminderScheduler fires each event reminder exactly once: a reminder is due
// when its send time falls inside the half-open interval since the last run.
type ReminderScheduler struct {
	eventRepo repositories.ICalendarEventRepository
	notifier  services.INotificationService
	cron      *cron.Cron
	now       func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewReminderScheduler(notifier services.INotificationService) *ReminderScheduler {
	return &ReminderScheduler{
		eventRepo: repositories.NewCalendarEventRepository(),
		notifier:  notifier,
		cron:      cron.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the scan once per minute and returns immediately.
func (s *ReminderScheduler) Start() error {
	s.mu.Lock()
	s.lastRun = s.now()
	s.mu.Unlock()

	if _, err := s.cron.AddFunc("* * * * *", s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	configslog.SLog.Info("reminder scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running scan to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	configslog.SLog.Info("reminder scheduler stopped")
}

// RunOnce scans (lastRun, now] for due reminders.
func (s *ReminderScheduler) RunOnce() {
	s.mu.Lock()
	since := s.lastRun
	now := s.now()
	s.lastRun = now
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events, err := s.eventRepo.FindStartingBetween(ctx, now, now.Add(lookahead))
	if err != nil {
		configslog.Log.Error("reminder scan failed", zap.Error(err))
		return
	}

	sent := 0
	for i := range events {
		event := &events[i]
		for _, minutes := range event.Reminders {
			due := event.StartTime.Add(-time.Duration(minutes) * time.Minute)
			if due.After(since) && !due.After(now) {
				s.notifier.SendReminder(ctx, event, minutes)
				sent++
			}
		}
	}
	if sent > 0 {
		configslog.SLog.Infof("reminder scan: %d reminders sent for %d events", sent, len(events))
	}
}
