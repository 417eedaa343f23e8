package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"faithhub.app/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the Postgres connection pool from DB_* environment variables.
// It must be called once during startup, after configslog.InitLogger.
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "faithhub"),
		envOr("DB_SSLMODE", "disable"),
	)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		configslog.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("failed to access underlying sql.DB", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	configslog.SLog.Infof("database connection established (%s)", envOr("DB_NAME", "faithhub"))
}

// GetDB returns the shared *gorm.DB. InitDB must have been called first.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("database accessed before InitDB")
	}
	return db
}

// CloseDB closes the underlying connection pool.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
