package repositories

import (
	"context"
	"errors"
	"time"

	"faithhub.app/configs"
	"faithhub.app/configs/configslog"
	"faithhub.app/models"
	"faithhub.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICalendarSubscriptionRepository is the storage surface for event
// subscriptions. Rows are hard-deleted; the unique (event, user) index is the
// single source of truth for membership.
type ICalendarSubscriptionRepository interface {
	Create(ctx context.Context, sub *models.CalendarSubscription) error
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error)
	FindPendingByUser(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.CalendarSubscription, int64, error)
	ListByEvent(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.CalendarSubscription, int64, error)
	ListByUser(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.CalendarSubscription, int64, error)
	Update(ctx context.Context, sub *models.CalendarSubscription) error
	UpdateStatusBulk(ctx context.Context, eventID uint, userIDs []uint, status models.SubscriptionStatus) (int64, error)
	Delete(ctx context.Context, eventID, userID uint) error
	DeleteBulk(ctx context.Context, eventID uint, userIDs []uint) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID uint, status models.SubscriptionStatus) (int64, error)
}

type CalendarSubscriptionRepository struct {
	db *gorm.DB
}

func NewCalendarSubscriptionRepository() ICalendarSubscriptionRepository {
	return &CalendarSubscriptionRepository{db: configs.GetDB()}
}

func NewCalendarSubscriptionRepositoryTx(tx *gorm.DB) ICalendarSubscriptionRepository {
	return &CalendarSubscriptionRepository{db: tx}
}

func (r *CalendarSubscriptionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create replaces any existing row for the (event, user) pair before
// inserting. The delete makes a re-invite idempotent: a concurrent invite
// lands on the unique index as a replacement, not a constraint error.
func (r *CalendarSubscriptionRepository) Create(ctx context.Context, sub *models.CalendarSubscription) error {
	if sub == nil || sub.CalendarEventID == 0 || sub.UserID == 0 {
		return errors.New("cannot create subscription without event and user")
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now().UTC()
	}
	db := r.getDB(ctx)
	err := db.
		Where("calendar_event_id = ? AND user_id = ?", sub.CalendarEventID, sub.UserID).
		Delete(&models.CalendarSubscription{}).Error
	if err != nil {
		configslog.Log.Error("CalendarSubscriptionRepository.Create: replace failed",
			zap.Uint("eventID", sub.CalendarEventID), zap.Uint("userID", sub.UserID), zap.Error(err))
		return err
	}
	return db.Create(sub).Error
}

func (r *CalendarSubscriptionRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*models.CalendarSubscription, error) {
	if eventID == 0 || userID == 0 {
		return nil, errors.New("invalid event or user ID")
	}
	var sub models.CalendarSubscription
	err := r.getDB(ctx).
		Where("calendar_event_id = ? AND user_id = ?", eventID, userID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CalendarSubscriptionRepository.FindByEventAndUser: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return &sub, nil
}

// FindPendingByUser returns the user's open invitations, newest first.
func (r *CalendarSubscriptionRepository) FindPendingByUser(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.CalendarSubscription, int64, error) {
	params.Status = string(models.SubscriptionPending)
	return r.ListByUser(ctx, userID, params)
}

// ListByEvent returns the subscriptions of one event with optional status and
// permission filters.
func (r *CalendarSubscriptionRepository) ListByEvent(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.CalendarSubscription, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("invalid event ID")
	}
	query := r.getDB(ctx).Model(&models.CalendarSubscription{}).
		Where("calendar_event_id = ?", eventID)
	return r.paginate(query.Preload("User"), params, "CalendarSubscriptionRepository.ListByEvent")
}

// ListByUser returns the user's subscriptions with optional status and
// permission filters, event preloaded.
func (r *CalendarSubscriptionRepository) ListByUser(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.CalendarSubscription, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("invalid user ID")
	}
	query := r.getDB(ctx).Model(&models.CalendarSubscription{}).
		Where("user_id = ?", userID)
	return r.paginate(query.Preload("Event").Preload("Event.User"), params, "CalendarSubscriptionRepository.ListByUser")
}

func (r *CalendarSubscriptionRepository) paginate(query *gorm.DB, params queryparams.ListParams, caller string) ([]models.CalendarSubscription, int64, error) {
	if params.Status != "" {
		query = query.Where("calendar_subscriptions.status = ?", params.Status)
	}
	if params.Permission != "" {
		query = query.Where("calendar_subscriptions.permission = ?", params.Permission)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error(caller+": count error", zap.Error(err))
		return nil, 0, err
	}
	var subs []models.CalendarSubscription
	if totalCount == 0 {
		return subs, 0, nil
	}

	err := query.
		Order("calendar_subscriptions.subscribed_at DESC").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&subs).Error
	if err != nil {
		configslog.Log.Error(caller+": find error", zap.Error(err))
		return nil, totalCount, err
	}
	return subs, totalCount, nil
}

func (r *CalendarSubscriptionRepository) Update(ctx context.Context, sub *models.CalendarSubscription) error {
	if sub == nil || sub.ID == 0 {
		return errors.New("cannot update unsaved subscription")
	}
	return r.getDB(ctx).Save(sub).Error
}

// UpdateStatusBulk moves the given members of one event to a new status.
func (r *CalendarSubscriptionRepository) UpdateStatusBulk(ctx context.Context, eventID uint, userIDs []uint, status models.SubscriptionStatus) (int64, error) {
	if eventID == 0 || len(userIDs) == 0 {
		return 0, errors.New("invalid event ID or empty user list")
	}
	data := map[string]interface{}{"status": status}
	now := time.Now().UTC()
	switch status {
	case models.SubscriptionAccepted:
		data["accepted_at"] = now
	case models.SubscriptionDeclined:
		data["declined_at"] = now
	}
	result := r.getDB(ctx).Model(&models.CalendarSubscription{}).
		Where("calendar_event_id = ? AND user_id IN ?", eventID, userIDs).
		Updates(data)
	if result.Error != nil {
		configslog.Log.Error("CalendarSubscriptionRepository.UpdateStatusBulk: DB error",
			zap.Uint("eventID", eventID), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes the subscription row outright.
func (r *CalendarSubscriptionRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if eventID == 0 || userID == 0 {
		return errors.New("invalid event or user ID")
	}
	result := r.getDB(ctx).
		Where("calendar_event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.CalendarSubscription{})
	if result.Error != nil {
		configslog.Log.Error("CalendarSubscriptionRepository.Delete: DB error",
			zap.Uint("eventID", eventID), zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBulk removes the given members of one event.
func (r *CalendarSubscriptionRepository) DeleteBulk(ctx context.Context, eventID uint, userIDs []uint) (int64, error) {
	if eventID == 0 || len(userIDs) == 0 {
		return 0, errors.New("invalid event ID or empty user list")
	}
	result := r.getDB(ctx).
		Where("calendar_event_id = ? AND user_id IN ?", eventID, userIDs).
		Delete(&models.CalendarSubscription{})
	if result.Error != nil {
		configslog.Log.Error("CalendarSubscriptionRepository.DeleteBulk: DB error",
			zap.Uint("eventID", eventID), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *CalendarSubscriptionRepository) CountByUserAndStatus(ctx context.Context, userID uint, status models.SubscriptionStatus) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.CalendarSubscription{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

var _ ICalendarSubscriptionRepository = (*CalendarSubscriptionRepository)(nil)
