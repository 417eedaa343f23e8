package migrations

import (
	"faithhub.app/configs/configslog"
	"faithhub.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The three calendar tables migrate together: events first, then the tables
// whose foreign keys point at them.

func MigrateCalendarEventsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating calendar_events table...")
	if err := db.AutoMigrate(&models.CalendarEvent{}); err != nil {
		configslog.Log.Error("Failed to migrate calendar_events table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Calendar_events table migrated successfully")
	return nil
}

func MigrateCalendarSubscriptionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating calendar_subscriptions table...")
	if err := db.AutoMigrate(&models.CalendarSubscription{}); err != nil {
		configslog.Log.Error("Failed to migrate calendar_subscriptions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Calendar_subscriptions table migrated successfully")
	return nil
}

func MigrateCalendarEventImagesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating calendar_event_images table...")
	if err := db.AutoMigrate(&models.CalendarEventImage{}); err != nil {
		configslog.Log.Error("Failed to migrate calendar_event_images table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Calendar_event_images table migrated successfully")
	return nil
}
