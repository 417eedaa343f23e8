package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"faithhub.app/configs"
	"faithhub.app/configs/configslog"
	"faithhub.app/models"
	"faithhub.app/pkg/queryparams"
	"faithhub.app/policies"
	"faithhub.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubscriptionServiceError is the typed error vocabulary of the subscription
// service.
type SubscriptionServiceError string

func (e SubscriptionServiceError) Error() string { return string(e) }

const (
	ErrSubscriptionNotFound     SubscriptionServiceError = "subscription not found"
	ErrSubscriptionForbidden    SubscriptionServiceError = "you are not allowed to perform this action"
	ErrSubscriptionInvalidInput SubscriptionServiceError = "invalid subscription data"
	ErrSubscriptionExists       SubscriptionServiceError = "user is already subscribed to this event"
	ErrSubscriptionOwner        SubscriptionServiceError = "the event owner cannot be invited"
	ErrInvitationNotPending     SubscriptionServiceError = "invitation has already been answered"
	ErrSubscriptionFailed       SubscriptionServiceError = "subscription could not be saved"
)

// InvitePlan partitions an invite list before any row is written: users to
// invite fresh, declined rows to revive, and addresses that fail with a
// reason. The partition is pure so it can be tested without storage.
type InvitePlan struct {
	Invite   []models.User
	Revive   []models.CalendarSubscription
	Failures []InviteFailure
}

// PlanInvites decides what happens to each requested address. Unknown
// addresses and the owner fail, pending or accepted members fail as already
// subscribed, and declined members are revived back to pending.
func PlanInvites(event *models.CalendarEvent, emails []string, found []models.User) InvitePlan {
	byEmail := make(map[string]*models.User, len(found))
	for i := range found {
		byEmail[found[i].Email] = &found[i]
	}

	var plan InvitePlan
	seen := make(map[string]bool, len(emails))
	for _, email := range emails {
		if seen[email] {
			continue
		}
		seen[email] = true

		user, ok := byEmail[email]
		if !ok {
			plan.Failures = append(plan.Failures, InviteFailure{Email: email, Reason: "user not found"})
			continue
		}
		if user.ID == event.UserID {
			plan.Failures = append(plan.Failures, InviteFailure{Email: email, Reason: "user owns this event"})
			continue
		}
		existing := event.SubscriptionFor(user.ID)
		if existing == nil {
			plan.Invite = append(plan.Invite, *user)
			continue
		}
		switch existing.Status {
		case models.SubscriptionDeclined:
			plan.Revive = append(plan.Revive, *existing)
		default:
			plan.Failures = append(plan.Failures, InviteFailure{Email: email, Reason: "user is already subscribed"})
		}
	}
	return plan
}

// InviteResult reports the outcome of a bulk invite.
type InviteResult struct {
	Successful []string        `json:"successful"`
	Failed     []InviteFailure `json:"failed"`
}

// ISubscriptionService is the application surface for event subscriptions.
type ISubscriptionService interface {
	InviteUser(ctx context.Context, eventID, actingUserID uint, email string, permission models.SubscriptionPermission) (*models.CalendarSubscription, error)
	InviteMultipleUsers(ctx context.Context, eventID, actingUserID uint, emails []string, permission models.SubscriptionPermission) (*InviteResult, error)
	AcceptInvitation(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error)
	DeclineInvitation(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error)
	Unsubscribe(ctx context.Context, eventID, userID uint) error
	RemoveUser(ctx context.Context, eventID, actingUserID, targetUserID uint) error
	UpdatePermission(ctx context.Context, eventID, actingUserID, targetUserID uint, permission models.SubscriptionPermission) (*models.CalendarSubscription, error)
	UpdateStatusBulk(ctx context.Context, eventID, actingUserID uint, userIDs []uint, status models.SubscriptionStatus) (int64, error)
	RemoveBulk(ctx context.Context, eventID, actingUserID uint, userIDs []uint) (int64, error)
	ListEventSubscriptions(ctx context.Context, eventID, actingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ListUserSubscriptions(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ListPendingInvitations(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	CountPendingInvitations(ctx context.Context, userID uint) (int64, error)
	CheckSubscription(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error)
}

// SubscriptionService implements ISubscriptionService.
type SubscriptionService struct {
	repo      repositories.ICalendarSubscriptionRepository
	eventRepo repositories.ICalendarEventRepository
	userRepo  repositories.IUserRepository
	notifier  INotificationService
	db        *gorm.DB
	now       func() time.Time
}

func NewSubscriptionService(notifier INotificationService) ISubscriptionService {
	return &SubscriptionService{
		repo:      repositories.NewCalendarSubscriptionRepository(),
		eventRepo: repositories.NewCalendarEventRepository(),
		userRepo:  repositories.NewUserRepository(),
		notifier:  notifier,
		db:        configs.GetDB(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func normalizeInvitePermission(p models.SubscriptionPermission) (models.SubscriptionPermission, error) {
	if p == "" {
		return models.PermissionViewer, nil
	}
	if p == models.PermissionOwner {
		return "", fmt.Errorf("%w: owner permission cannot be granted by invite", ErrSubscriptionInvalidInput)
	}
	if !models.ValidPermission(p) {
		return "", fmt.Errorf("%w: unknown permission %q", ErrSubscriptionInvalidInput, p)
	}
	return p, nil
}

// InviteUser invites one user by email as a pending member.
func (s *SubscriptionService) InviteUser(ctx context.Context, eventID, actingUserID uint, email string, permission models.SubscriptionPermission) (*models.CalendarSubscription, error) {
	result, err := s.InviteMultipleUsers(ctx, eventID, actingUserID, []string{email}, permission)
	if err != nil {
		return nil, err
	}
	if len(result.Failed) > 0 {
		reason := result.Failed[0].Reason
		switch reason {
		case "user not found":
			return nil, ErrSubscriptionNotFound
		case "user owns this event":
			return nil, ErrSubscriptionOwner
		case "user is already subscribed":
			return nil, ErrSubscriptionExists
		}
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionInvalidInput, reason)
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrSubscriptionNotFound
	}
	return s.repo.FindByEventAndUser(ctx, eventID, user.ID)
}

// InviteMultipleUsers invites the listed addresses in one transaction. The
// whole batch commits or rolls back together; per-address problems are
// reported in the result, not as an error.
func (s *SubscriptionService) InviteMultipleUsers(ctx context.Context, eventID, actingUserID uint, emails []string, permission models.SubscriptionPermission) (*InviteResult, error) {
	if len(emails) == 0 {
		return nil, fmt.Errorf("%w: no addresses to invite", ErrSubscriptionInvalidInput)
	}
	permission, err := normalizeInvitePermission(permission)
	if err != nil {
		return nil, err
	}

	var result *InviteResult
	var event *models.CalendarEvent
	var invited []models.User
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, actingUserID)
		eventRepoTx := repositories.NewCalendarEventRepositoryTx(tx)
		subRepoTx := repositories.NewCalendarSubscriptionRepositoryTx(tx)
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		var err error
		event, err = eventRepoTx.FindByIDForUpdate(txCtx, eventID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !policies.CanInviteUsers(event, actingUserID) {
			return ErrSubscriptionForbidden
		}

		found, err := userRepoTx.FindByEmails(txCtx, emails)
		if err != nil {
			return ErrSubscriptionFailed
		}
		plan := PlanInvites(event, emails, found)

		res := &InviteResult{Failed: plan.Failures}
		for i := range plan.Invite {
			user := plan.Invite[i]
			sub := &models.CalendarSubscription{
				CalendarEventID: eventID,
				UserID:          user.ID,
				Permission:      permission,
				Status:          models.SubscriptionPending,
				SubscribedAt:    s.now(),
			}
			if err := subRepoTx.Create(txCtx, sub); err != nil {
				configslog.Log.Error("InviteMultipleUsers: insert failed",
					zap.Uint("eventID", eventID), zap.Uint("userID", user.ID), zap.Error(err))
				return ErrSubscriptionFailed
			}
			res.Successful = append(res.Successful, user.Email)
			invited = append(invited, user)
		}
		for i := range plan.Revive {
			sub := plan.Revive[i]
			sub.Status = models.SubscriptionPending
			sub.Permission = permission
			sub.SubscribedAt = s.now()
			sub.AcceptedAt = nil
			sub.DeclinedAt = nil
			if err := subRepoTx.Update(txCtx, &sub); err != nil {
				return ErrSubscriptionFailed
			}
			if user, err := userRepoTx.FindByID(txCtx, sub.UserID); err == nil {
				res.Successful = append(res.Successful, user.Email)
				invited = append(invited, *user)
			}
		}
		result = res
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	for i := range invited {
		s.notifier.SendInvitation(ctx, event, &invited[i])
	}
	return result, nil
}

// AcceptInvitation moves the user's pending invite to accepted.
func (s *SubscriptionService) AcceptInvitation(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error) {
	return s.answerInvitation(ctx, eventID, userID, models.SubscriptionAccepted)
}

// DeclineInvitation moves the user's pending invite to declined.
func (s *SubscriptionService) DeclineInvitation(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error) {
	return s.answerInvitation(ctx, eventID, userID, models.SubscriptionDeclined)
}

func (s *SubscriptionService) answerInvitation(ctx context.Context, eventID, userID uint, status models.SubscriptionStatus) (*models.CalendarSubscription, error) {
	var sub *models.CalendarSubscription
	var event *models.CalendarEvent
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		subRepoTx := repositories.NewCalendarSubscriptionRepositoryTx(tx)
		eventRepoTx := repositories.NewCalendarEventRepositoryTx(tx)

		var err error
		event, err = eventRepoTx.FindByID(txCtx, eventID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		sub, err = subRepoTx.FindByEventAndUser(txCtx, eventID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSubscriptionNotFound
			}
			return err
		}
		if sub.Status != models.SubscriptionPending {
			return fmt.Errorf("%w: already %s", ErrInvitationNotPending, sub.Status)
		}

		now := s.now()
		sub.Status = status
		if status == models.SubscriptionAccepted {
			sub.AcceptedAt = &now
		} else {
			sub.DeclinedAt = &now
		}
		return subRepoTx.Update(txCtx, sub)
	})
	if txErr != nil {
		return nil, txErr
	}

	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		if status == models.SubscriptionAccepted {
			s.notifier.SendInvitationAccepted(ctx, event, user)
		} else {
			s.notifier.SendInvitationDeclined(ctx, event, user)
		}
	}
	return sub, nil
}

// Unsubscribe removes the user's own pending or accepted subscription.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, eventID, userID uint) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if !policies.CanUnsubscribe(event, userID) {
		return ErrSubscriptionNotFound
	}
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

// RemoveUser removes another member from the event.
func (s *SubscriptionService) RemoveUser(ctx context.Context, eventID, actingUserID, targetUserID uint) error {
	if targetUserID == actingUserID {
		return s.Unsubscribe(ctx, eventID, targetUserID)
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if !policies.CanInviteUsers(event, actingUserID) {
		return ErrSubscriptionForbidden
	}
	if err := s.repo.Delete(ctx, eventID, targetUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if user, err := s.userRepo.FindByID(ctx, targetUserID); err == nil {
		s.notifier.SendRemoval(ctx, event, user)
	}
	return nil
}

// UpdatePermission changes another member's access level.
func (s *SubscriptionService) UpdatePermission(ctx context.Context, eventID, actingUserID, targetUserID uint, permission models.SubscriptionPermission) (*models.CalendarSubscription, error) {
	permission, err := normalizeInvitePermission(permission)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !policies.CanInviteUsers(event, actingUserID) {
		return nil, ErrSubscriptionForbidden
	}
	sub, err := s.repo.FindByEventAndUser(ctx, eventID, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	sub.Permission = permission
	if err := s.repo.Update(models.ContextWithUserID(ctx, actingUserID), sub); err != nil {
		return nil, ErrSubscriptionFailed
	}
	return sub, nil
}

// UpdateStatusBulk moves several members of the event to a new status.
func (s *SubscriptionService) UpdateStatusBulk(ctx context.Context, eventID, actingUserID uint, userIDs []uint, status models.SubscriptionStatus) (int64, error) {
	if !models.ValidSubscriptionStatus(status) {
		return 0, fmt.Errorf("%w: unknown status %q", ErrSubscriptionInvalidInput, status)
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if !policies.CanInviteUsers(event, actingUserID) {
		return 0, ErrSubscriptionForbidden
	}
	return s.repo.UpdateStatusBulk(models.ContextWithUserID(ctx, actingUserID), eventID, userIDs, status)
}

// RemoveBulk removes several members of the event.
func (s *SubscriptionService) RemoveBulk(ctx context.Context, eventID, actingUserID uint, userIDs []uint) (int64, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if !policies.CanInviteUsers(event, actingUserID) {
		return 0, ErrSubscriptionForbidden
	}
	return s.repo.DeleteBulk(models.ContextWithUserID(ctx, actingUserID), eventID, userIDs)
}

// ListEventSubscriptions returns the members of one event, visible to anyone
// who may view the event.
func (s *SubscriptionService) ListEventSubscriptions(ctx context.Context, eventID, actingUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !policies.CanViewEvent(event, actingUserID) {
		return nil, ErrSubscriptionForbidden
	}
	params.Validate()
	subs, totalCount, err := s.repo.ListByEvent(ctx, eventID, params)
	if err != nil {
		return nil, err
	}
	return paginated(subs, totalCount, params), nil
}

// ListUserSubscriptions returns the user's own subscriptions.
func (s *SubscriptionService) ListUserSubscriptions(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	subs, totalCount, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return paginated(subs, totalCount, params), nil
}

// ListPendingInvitations returns the user's open invitations.
func (s *SubscriptionService) ListPendingInvitations(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	subs, totalCount, err := s.repo.FindPendingByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return paginated(subs, totalCount, params), nil
}

// CountPendingInvitations returns the number of open invitations, for the
// notification badge.
func (s *SubscriptionService) CountPendingInvitations(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountByUserAndStatus(ctx, userID, models.SubscriptionPending)
}

// CheckSubscription returns the user's subscription on the event, if any.
func (s *SubscriptionService) CheckSubscription(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error) {
	sub, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func paginated(data any, totalCount int64, params queryparams.ListParams) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: data,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

var _ ISubscriptionService = (*SubscriptionService)(nil)
