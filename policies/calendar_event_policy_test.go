package policies

import (
	"testing"

	"faithhub.app/models"

	"github.com/stretchr/testify/assert"
)

const (
	ownerID   = uint(1)
	memberID  = uint(2)
	outsider  = uint(3)
	pendingID = uint(4)
)

func eventWith(visibility models.EventVisibility, subs ...models.CalendarSubscription) *models.CalendarEvent {
	return &models.CalendarEvent{
		BaseModel:     models.BaseModel{ID: 10},
		UserID:        ownerID,
		Visibility:    visibility,
		Subscriptions: subs,
	}
}

func sub(userID uint, perm models.SubscriptionPermission, status models.SubscriptionStatus) models.CalendarSubscription {
	return models.CalendarSubscription{CalendarEventID: 10, UserID: userID, Permission: perm, Status: status}
}

func TestCanViewEvent(t *testing.T) {
	private := eventWith(models.VisibilityPrivate,
		sub(memberID, models.PermissionViewer, models.SubscriptionAccepted),
		sub(pendingID, models.PermissionViewer, models.SubscriptionPending),
	)

	assert.True(t, CanViewEvent(private, ownerID))
	assert.True(t, CanViewEvent(private, memberID))
	assert.False(t, CanViewEvent(private, pendingID), "pending invite does not grant access")
	assert.False(t, CanViewEvent(private, outsider))

	public := eventWith(models.VisibilityPublic)
	assert.True(t, CanViewEvent(public, outsider))
}

func TestCanUpdateEvent(t *testing.T) {
	event := eventWith(models.VisibilityShared,
		sub(memberID, models.PermissionEditor, models.SubscriptionAccepted),
		sub(pendingID, models.PermissionEditor, models.SubscriptionPending),
		sub(outsider, models.PermissionViewer, models.SubscriptionAccepted),
	)

	assert.True(t, CanUpdateEvent(event, ownerID))
	assert.True(t, CanUpdateEvent(event, memberID))
	assert.False(t, CanUpdateEvent(event, pendingID), "editor grant is inert until accepted")
	assert.False(t, CanUpdateEvent(event, outsider), "viewers cannot update")
}

func TestCanDeleteEvent(t *testing.T) {
	event := eventWith(models.VisibilityShared,
		sub(memberID, models.PermissionOwner, models.SubscriptionAccepted),
		sub(outsider, models.PermissionEditor, models.SubscriptionAccepted),
	)

	assert.True(t, CanDeleteEvent(event, ownerID))
	assert.True(t, CanDeleteEvent(event, memberID))
	assert.False(t, CanDeleteEvent(event, outsider), "editors cannot delete")
}

func TestCanUpdateOwnSubscription(t *testing.T) {
	event := eventWith(models.VisibilityPrivate,
		sub(memberID, models.PermissionViewer, models.SubscriptionAccepted),
		sub(pendingID, models.PermissionViewer, models.SubscriptionPending),
	)

	assert.True(t, CanUpdateOwnSubscription(event, pendingID))
	assert.False(t, CanUpdateOwnSubscription(event, memberID), "answered invites are final")
	assert.False(t, CanUpdateOwnSubscription(event, outsider))
}

func TestCanUnsubscribe(t *testing.T) {
	event := eventWith(models.VisibilityPrivate,
		sub(memberID, models.PermissionViewer, models.SubscriptionAccepted),
		sub(pendingID, models.PermissionViewer, models.SubscriptionPending),
		sub(outsider, models.PermissionViewer, models.SubscriptionDeclined),
	)

	assert.True(t, CanUnsubscribe(event, memberID))
	assert.True(t, CanUnsubscribe(event, pendingID))
	assert.False(t, CanUnsubscribe(event, outsider), "declined rows have nothing to remove")
}
