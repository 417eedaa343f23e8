package policies

import "faithhub.app/models"

// The calendar event predicates are evaluated over an event whose
// Subscriptions association has been preloaded. They are pure: every mutating
// operation in the services consults them before touching storage, and a
// false result maps to 403 at the HTTP boundary.

// CanViewEvent reports whether the user may see the event: they own it, it is
// public, or they hold an accepted subscription.
func CanViewEvent(event *models.CalendarEvent, userID uint) bool {
	if event.UserID == userID || event.Visibility == models.VisibilityPublic {
		return true
	}
	sub := event.SubscriptionFor(userID)
	return sub != nil && sub.Status == models.SubscriptionAccepted
}

// CanUpdateEvent reports whether the user may modify the event: they own it,
// or they hold an accepted subscription with editor or owner permission.
func CanUpdateEvent(event *models.CalendarEvent, userID uint) bool {
	if event.UserID == userID {
		return true
	}
	sub := event.SubscriptionFor(userID)
	return sub != nil && sub.Status == models.SubscriptionAccepted &&
		(sub.Permission == models.PermissionEditor || sub.Permission == models.PermissionOwner)
}

// CanDeleteEvent reports whether the user may delete the event: they own it,
// or they hold an accepted subscription with owner permission.
func CanDeleteEvent(event *models.CalendarEvent, userID uint) bool {
	if event.UserID == userID {
		return true
	}
	sub := event.SubscriptionFor(userID)
	return sub != nil && sub.Status == models.SubscriptionAccepted &&
		sub.Permission == models.PermissionOwner
}

// CanManageImages mirrors the update predicate.
func CanManageImages(event *models.CalendarEvent, userID uint) bool {
	return CanUpdateEvent(event, userID)
}

// CanInviteUsers mirrors the update predicate.
func CanInviteUsers(event *models.CalendarEvent, userID uint) bool {
	return CanUpdateEvent(event, userID)
}

// CanUpdateOwnSubscription reports whether the user may act on their own
// invite; only a still-pending invitation may be answered.
func CanUpdateOwnSubscription(event *models.CalendarEvent, userID uint) bool {
	sub := event.SubscriptionFor(userID)
	return sub != nil && sub.Status == models.SubscriptionPending
}

// CanUnsubscribe reports whether the user may remove themselves from the
// event; declined invites have nothing left to remove.
func CanUnsubscribe(event *models.CalendarEvent, userID uint) bool {
	sub := event.SubscriptionFor(userID)
	return sub != nil &&
		(sub.Status == models.SubscriptionPending || sub.Status == models.SubscriptionAccepted)
}
