package database

import (
	"faithhub.app/configs/configslog"
	"faithhub.app/database/migrations"
	"faithhub.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and seeders inside one transaction, so a failed
// step leaves the schema untouched.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("neither migrate nor seed requested, nothing to do")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("could not begin database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("database initialization panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("rolling back after initialization error", zap.Error(err))
			if rbErr := tx.Rollback().Error; rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("database initialization starting...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("migrations failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("migrations completed")
	}

	if seed {
		if err := RunSeeders(tx); err != nil {
			configslog.Log.Error("seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("seeders completed")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("commit failed", zap.Error(err))
		return
	}
	configslog.SLog.Info("database initialization finished successfully")
}

// RunMigrationsInOrder migrates the tables in dependency order: users first,
// then events, then the tables referencing events.
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateUsersTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateCalendarEventsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateCalendarSubscriptionsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateCalendarEventImagesTable(db); err != nil {
		return err
	}
	return nil
}

// RunSeeders inserts the baseline records.
func RunSeeders(db *gorm.DB) error {
	return seeders.SeedSystemAdmin(db)
}
