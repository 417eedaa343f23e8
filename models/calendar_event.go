package models

import (
	"time"
)

// EventType classifies a calendar event.
type EventType string

const (
	EventTypeMeeting     EventType = "meeting"
	EventTypeAppointment EventType = "appointment"
	EventTypeReminder    EventType = "reminder"
	EventTypeHoliday     EventType = "holiday"
	EventTypeEvent       EventType = "event"
	EventTypeTask        EventType = "task"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{
	EventTypeMeeting, EventTypeAppointment, EventTypeReminder,
	EventTypeHoliday, EventTypeEvent, EventTypeTask,
}

// RecurrenceKind is the repetition frequency of an event.
type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
	RecurrenceYearly  RecurrenceKind = "yearly"
)

// RecurrenceKinds lists every valid recurrence kind.
var RecurrenceKinds = []RecurrenceKind{
	RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly,
}

// EventVisibility controls default viewer access, modulated by subscriptions.
type EventVisibility string

const (
	VisibilityPublic  EventVisibility = "public"
	VisibilityPrivate EventVisibility = "private"
	VisibilityShared  EventVisibility = "shared"
)

// EventVisibilities lists every valid visibility.
var EventVisibilities = []EventVisibility{VisibilityPublic, VisibilityPrivate, VisibilityShared}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusScheduled  EventStatus = "scheduled"
	StatusInProgress EventStatus = "in_progress"
	StatusCompleted  EventStatus = "completed"
	StatusCancelled  EventStatus = "cancelled"
)

// EventStatuses lists every valid status.
var EventStatuses = []EventStatus{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

// MutationScope selects which rows of a recurrence chain an update or delete
// touches: only this row, this row and everything after it, or the whole chain.
type MutationScope string

const (
	ScopeThis   MutationScope = "this"
	ScopeFuture MutationScope = "future"
	ScopeAll    MutationScope = "all"
)

// CalendarEvent is the persisted calendar entry with recurrence metadata,
// attached images and visibility rules.
type CalendarEvent struct {
	BaseModel
	UserID            uint            `gorm:"index:idx_events_user_start;not null" json:"user_id"`
	Title             string          `gorm:"type:varchar(255);not null" json:"title"`
	Description       string          `gorm:"type:text" json:"description"`
	Type              EventType       `gorm:"type:varchar(20);default:'event';index" json:"type"`
	Color             string          `gorm:"type:varchar(7);default:'#3b82f6'" json:"color"`
	StartTime         time.Time       `gorm:"type:timestamptz;not null;index:idx_events_user_start;index:idx_events_window" json:"start_time"`
	EndTime           time.Time       `gorm:"type:timestamptz;not null;index:idx_events_window" json:"end_time"`
	IsAllDay          bool            `gorm:"default:false" json:"is_all_day"`
	Location          string          `gorm:"type:varchar(500)" json:"location"`
	MeetingLink       string          `gorm:"type:varchar(500)" json:"meeting_link"`
	MeetingPlatform   string          `gorm:"type:varchar(20)" json:"meeting_platform"`
	Timezone          string          `gorm:"type:varchar(50);default:'UTC'" json:"timezone"`
	Recurrence        RecurrenceKind  `gorm:"type:varchar(10);default:'none'" json:"recurrence"`
	RecurrenceRules   *RecurrenceRule `gorm:"type:jsonb;serializer:json" json:"recurrence_rules,omitempty"`
	RecurrenceChainID *string         `gorm:"type:varchar(36);index" json:"recurrence_chain_id,omitempty"`
	RecurrenceEnd     *time.Time      `gorm:"type:timestamptz" json:"recurrence_end,omitempty"`
	IsRecurring       bool            `gorm:"default:false;index" json:"is_recurring"`
	Visibility        EventVisibility `gorm:"type:varchar(10);default:'private';index" json:"visibility"`
	Status            EventStatus     `gorm:"type:varchar(15);default:'scheduled';index" json:"status"`
	Attendees         []string        `gorm:"type:jsonb;serializer:json" json:"attendees,omitempty"`
	Reminders         []int           `gorm:"type:jsonb;serializer:json" json:"reminders,omitempty"`
	CustomFields      map[string]any  `gorm:"type:jsonb;serializer:json" json:"custom_fields,omitempty"`

	User          User                   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Images        []CalendarEventImage   `gorm:"foreignKey:CalendarEventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Subscriptions []CalendarSubscription `gorm:"foreignKey:CalendarEventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"subscriptions,omitempty"`
}

// Duration is the scheduled length of the event.
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// DurationMinutes is the scheduled length in whole minutes.
func (e *CalendarEvent) DurationMinutes() int {
	return int(e.Duration().Minutes())
}

// SubscriptionFor returns the preloaded subscription of the given user, if any.
func (e *CalendarEvent) SubscriptionFor(userID uint) *CalendarSubscription {
	for i := range e.Subscriptions {
		if e.Subscriptions[i].UserID == userID {
			return &e.Subscriptions[i]
		}
	}
	return nil
}

// PrimaryImage returns the preloaded image flagged as primary, if any.
func (e *CalendarEvent) PrimaryImage() *CalendarEventImage {
	for i := range e.Images {
		if e.Images[i].IsPrimary {
			return &e.Images[i]
		}
	}
	return nil
}

// ValidEventType reports whether t is a known event type.
func ValidEventType(t EventType) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidRecurrenceKind reports whether k is a known recurrence kind.
func ValidRecurrenceKind(k RecurrenceKind) bool {
	for _, v := range RecurrenceKinds {
		if v == k {
			return true
		}
	}
	return false
}

// ValidVisibility reports whether v is a known visibility.
func ValidVisibility(v EventVisibility) bool {
	for _, x := range EventVisibilities {
		if x == v {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s EventStatus) bool {
	for _, x := range EventStatuses {
		if x == s {
			return true
		}
	}
	return false
}

// ValidMutationScope reports whether s is a known mutation scope.
func ValidMutationScope(s MutationScope) bool {
	return s == ScopeThis || s == ScopeFuture || s == ScopeAll
}
