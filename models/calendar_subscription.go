package models

import "time"

// SubscriptionPermission is the access level granted by a subscription.
type SubscriptionPermission string

const (
	PermissionViewer SubscriptionPermission = "viewer"
	PermissionEditor SubscriptionPermission = "editor"
	PermissionOwner  SubscriptionPermission = "owner"
)

// SubscriptionStatus is the lifecycle state of an invitation.
type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionAccepted SubscriptionStatus = "accepted"
	SubscriptionDeclined SubscriptionStatus = "declined"
)

// CalendarSubscription links one invited user to one event. The (event, user)
// pair is unique; rows are hard-deleted so the constraint never collides with
// a tombstone.
type CalendarSubscription struct {
	ID              uint                   `gorm:"primarykey" json:"id"`
	CalendarEventID uint                   `gorm:"not null;uniqueIndex:idx_subscription_event_user" json:"calendar_event_id"`
	UserID          uint                   `gorm:"not null;uniqueIndex:idx_subscription_event_user;index" json:"user_id"`
	Permission      SubscriptionPermission `gorm:"type:varchar(10);default:'viewer';index" json:"permission"`
	Status          SubscriptionStatus     `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	SubscribedAt    time.Time              `gorm:"type:timestamptz;not null" json:"subscribed_at"`
	AcceptedAt      *time.Time             `gorm:"type:timestamptz" json:"accepted_at,omitempty"`
	DeclinedAt      *time.Time             `gorm:"type:timestamptz" json:"declined_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`

	Event CalendarEvent `gorm:"foreignKey:CalendarEventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"event,omitempty"`
	User  User          `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}

// ValidPermission reports whether p is a grantable permission. Owner rows are
// only created internally, never through the invite API.
func ValidPermission(p SubscriptionPermission) bool {
	return p == PermissionViewer || p == PermissionEditor || p == PermissionOwner
}

// ValidSubscriptionStatus reports whether s is a known status.
func ValidSubscriptionStatus(s SubscriptionStatus) bool {
	return s == SubscriptionPending || s == SubscriptionAccepted || s == SubscriptionDeclined
}
