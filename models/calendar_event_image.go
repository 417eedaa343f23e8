package models

import "time"

// CalendarEventImage is the stored metadata of one image attached to an event.
// At most one image per event carries IsPrimary; the flag is set by an explicit
// action, not a database constraint.
type CalendarEventImage struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CalendarEventID uint           `gorm:"not null;index" json:"calendar_event_id"`
	ImagePath       string         `gorm:"type:varchar(500);not null" json:"image_path"`
	ThumbnailPath   string         `gorm:"type:varchar(500)" json:"thumbnail_path"`
	OriginalName    string         `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType        string         `gorm:"type:varchar(100);not null" json:"mime_type"`
	Size            int64          `gorm:"not null" json:"size"`
	DisplayOrder    int            `gorm:"default:0" json:"order"`
	IsPrimary       bool           `gorm:"default:false" json:"is_primary"`
	Metadata        map[string]any `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
