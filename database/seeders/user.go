package seeders

import (
	"errors"

	"faithhub.app/configs/configslog"
	"faithhub.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedSystemAdmin ensures the system administrator account exists. The
// account owns seeded data and unlocks the admin statistics endpoints.
func SeedSystemAdmin(db *gorm.DB) error {
	admin := models.User{
		Name:    "System Administrator",
		Email:   "admin@faithhub.app",
		IsAdmin: true,
	}

	var existing models.User
	result := db.Where("email = ?", admin.Email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("admin account %q already exists, skipping", admin.Email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("failed to check admin account", zap.Error(result.Error))
		return result.Error
	}

	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("failed to create admin account", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("admin account created: %s (ID: %d)", admin.Email, admin.ID)
	return nil
}
