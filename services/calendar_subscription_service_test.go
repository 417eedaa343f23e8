package services

import (
	"testing"

	"faithhub.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inviteEvent(subs ...models.CalendarSubscription) *models.CalendarEvent {
	return &models.CalendarEvent{
		BaseModel:     models.BaseModel{ID: 10},
		UserID:        1,
		Title:         "Sunday Service",
		Subscriptions: subs,
	}
}

func TestPlanInvitesPartitions(t *testing.T) {
	event := inviteEvent(
		models.CalendarSubscription{UserID: 3, Status: models.SubscriptionAccepted},
		models.CalendarSubscription{UserID: 4, Status: models.SubscriptionDeclined},
	)
	found := []models.User{
		{BaseModel: models.BaseModel{ID: 1}, Email: "owner@faithhub.app"},
		{BaseModel: models.BaseModel{ID: 2}, Email: "fresh@faithhub.app"},
		{BaseModel: models.BaseModel{ID: 3}, Email: "member@faithhub.app"},
		{BaseModel: models.BaseModel{ID: 4}, Email: "declined@faithhub.app"},
	}

	plan := PlanInvites(event, []string{
		"owner@faithhub.app",
		"fresh@faithhub.app",
		"member@faithhub.app",
		"declined@faithhub.app",
		"nobody@faithhub.app",
	}, found)

	require.Len(t, plan.Invite, 1)
	assert.Equal(t, uint(2), plan.Invite[0].ID)

	require.Len(t, plan.Revive, 1)
	assert.Equal(t, uint(4), plan.Revive[0].UserID)

	require.Len(t, plan.Failures, 3)
	reasons := make(map[string]string, len(plan.Failures))
	for _, f := range plan.Failures {
		reasons[f.Email] = f.Reason
	}
	assert.Equal(t, "user owns this event", reasons["owner@faithhub.app"])
	assert.Equal(t, "user is already subscribed", reasons["member@faithhub.app"])
	assert.Equal(t, "user not found", reasons["nobody@faithhub.app"])
}

func TestPlanInvitesDeduplicates(t *testing.T) {
	event := inviteEvent()
	found := []models.User{{BaseModel: models.BaseModel{ID: 2}, Email: "fresh@faithhub.app"}}

	plan := PlanInvites(event, []string{"fresh@faithhub.app", "fresh@faithhub.app"}, found)

	assert.Len(t, plan.Invite, 1)
	assert.Empty(t, plan.Failures)
}

func TestPlanInvitesPendingIsAlreadySubscribed(t *testing.T) {
	event := inviteEvent(models.CalendarSubscription{UserID: 2, Status: models.SubscriptionPending})
	found := []models.User{{BaseModel: models.BaseModel{ID: 2}, Email: "pending@faithhub.app"}}

	plan := PlanInvites(event, []string{"pending@faithhub.app"}, found)

	assert.Empty(t, plan.Invite)
	assert.Empty(t, plan.Revive)
	require.Len(t, plan.Failures, 1)
	assert.Equal(t, "user is already subscribed", plan.Failures[0].Reason)
}

func TestNormalizeInvitePermission(t *testing.T) {
	p, err := normalizeInvitePermission("")
	require.NoError(t, err)
	assert.Equal(t, models.PermissionViewer, p)

	p, err = normalizeInvitePermission(models.PermissionEditor)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionEditor, p)

	_, err = normalizeInvitePermission(models.PermissionOwner)
	assert.ErrorIs(t, err, ErrSubscriptionInvalidInput)

	_, err = normalizeInvitePermission("superuser")
	assert.ErrorIs(t, err, ErrSubscriptionInvalidInput)
}
