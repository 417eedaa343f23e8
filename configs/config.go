package configs

import (
	"os"
	"strconv"

	"faithhub.app/configs/configsdatabase"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv reads the .env file if present. Missing files are not an error so
// container deployments can rely on real environment variables.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetDB is a convenience passthrough so callers outside configs do not need
// to import configsdatabase directly.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// AppPort returns the HTTP listen address.
func AppPort() string {
	if v := os.Getenv("APP_PORT"); v != "" {
		return ":" + v
	}
	return ":3000"
}

// RecurrenceLimits bound occurrence expansion so a malformed or unbounded
// rule can never loop past the configured horizon.
type RecurrenceLimits struct {
	MaxOccurrences int
	MaxYears       int
}

// CalendarConfig carries the calendar module limits and display vocabularies.
type CalendarConfig struct {
	MaxImagesPerEvent int
	MaxImageSizeKB    int
	AllowedImageMIMEs []string
	DefaultTimezone   string
	DefaultReminders  []int
	ICalProdID        string
	Recurrence        RecurrenceLimits
	MeetingPlatforms  map[string]string
	TypeColors        map[string]string
	DefaultTypeColor  string
}

var calendarConfig *CalendarConfig

// Calendar returns the calendar module configuration, built once from the
// environment with production defaults.
func Calendar() CalendarConfig {
	if calendarConfig == nil {
		calendarConfig = &CalendarConfig{
			MaxImagesPerEvent: envInt("CALENDAR_MAX_IMAGES_PER_EVENT", 5),
			MaxImageSizeKB:    envInt("CALENDAR_MAX_IMAGE_SIZE_KB", 5120),
			AllowedImageMIMEs: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
			DefaultTimezone:   "UTC",
			DefaultReminders:  []int{30, 15},
			ICalProdID:        "-//FaithHub//Calendar//EN",
			Recurrence: RecurrenceLimits{
				MaxOccurrences: envInt("CALENDAR_MAX_OCCURRENCES", 365),
				MaxYears:       envInt("CALENDAR_MAX_RECURRENCE_YEARS", 5),
			},
			MeetingPlatforms: map[string]string{
				"zoom":        "Zoom Meeting",
				"google_meet": "Google Meet",
				"teams":       "Microsoft Teams",
				"webex":       "Cisco Webex",
				"other":       "Other",
			},
			TypeColors: map[string]string{
				"meeting":     "#3b82f6",
				"appointment": "#10b981",
				"reminder":    "#f59e0b",
				"holiday":     "#ef4444",
				"event":       "#8b5cf6",
				"task":        "#64748b",
			},
			DefaultTypeColor: "#6b7280",
		}
	}
	return *calendarConfig
}

// ImageStorageRoot is the base directory for stored event images.
func ImageStorageRoot() string {
	if v := os.Getenv("IMAGE_STORAGE_ROOT"); v != "" {
		return v
	}
	return "./storage"
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
