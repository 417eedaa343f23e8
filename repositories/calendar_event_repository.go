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
	"gorm.io/gorm/clause"
)

// visibleScope is the SQL predicate behind every event listing: the caller
// sees their own rows, public rows, and rows they hold an accepted
// subscription on.
const visibleScope = `calendar_events.user_id = ?
	OR calendar_events.visibility = 'public'
	OR EXISTS (
		SELECT 1 FROM calendar_subscriptions cs
		WHERE cs.calendar_event_id = calendar_events.id
		  AND cs.user_id = ?
		  AND cs.status = 'accepted'
	)`

// windowScope matches rows that can produce an occurrence inside
// [start, end): the stored interval overlaps the window, or the row is
// recurring, started before the window closes and its recurrence has not
// ended before the window opens. Recurring rows are expanded by the caller.
const windowScope = `(
	(calendar_events.start_time >= ? AND calendar_events.start_time < ?)
	OR (calendar_events.end_time > ? AND calendar_events.end_time <= ?)
	OR (calendar_events.start_time < ? AND calendar_events.end_time >= ?)
	OR (calendar_events.is_recurring = true
		AND calendar_events.start_time < ?
		AND (calendar_events.recurrence_end IS NULL OR calendar_events.recurrence_end >= ?))
)`

// ICalendarEventRepository is the storage surface for calendar events.
type ICalendarEventRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	FindByID(ctx context.Context, id uint) (*models.CalendarEvent, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.CalendarEvent, error)
	FindVisibleBetween(ctx context.Context, userID uint, start, end time.Time, params queryparams.ListParams) ([]models.CalendarEvent, error)
	FindOwnedBetween(ctx context.Context, userID uint, start, end time.Time) ([]models.CalendarEvent, error)
	FindAllBetween(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)
	FindUpcoming(ctx context.Context, userID uint, from time.Time, limit int) ([]models.CalendarEvent, error)
	FindStartingBetween(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error)
	FindChainFrom(ctx context.Context, chainID string, from *time.Time) ([]models.CalendarEvent, error)
	Update(ctx context.Context, event *models.CalendarEvent) error
	UpdateChainFrom(ctx context.Context, chainID string, from *time.Time, data map[string]interface{}) (int64, error)
	Delete(ctx context.Context, event *models.CalendarEvent, deletedByUserID uint) error
	DeleteChainFrom(ctx context.Context, chainID string, from *time.Time, deletedByUserID uint) (int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

type CalendarEventRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.CalendarEvent]
}

func NewCalendarEventRepository() ICalendarEventRepository {
	db := configs.GetDB()
	return newCalendarEventRepository(db)
}

func NewCalendarEventRepositoryTx(tx *gorm.DB) ICalendarEventRepository {
	return newCalendarEventRepository(tx)
}

func newCalendarEventRepository(db *gorm.DB) *CalendarEventRepository {
	base := NewBaseRepository[models.CalendarEvent](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "start_time", "end_time", "title", "type", "status"})
	return &CalendarEventRepository{db: db, base: base}
}

func (r *CalendarEventRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CalendarEventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	if event == nil || event.UserID == 0 {
		return errors.New("cannot create event without an owner")
	}
	return r.getDB(ctx).Create(event).Error
}

func (r *CalendarEventRepository) FindByID(ctx context.Context, id uint) (*models.CalendarEvent, error) {
	return r.findByID(ctx, id, false)
}

// FindByIDForUpdate locks the event row for the rest of the transaction.
func (r *CalendarEventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.CalendarEvent, error) {
	return r.findByID(ctx, id, true)
}

func (r *CalendarEventRepository) findByID(ctx context.Context, id uint, forUpdate bool) (*models.CalendarEvent, error) {
	if id == 0 {
		return nil, errors.New("invalid event ID")
	}
	query := r.getDB(ctx).
		Preload("Subscriptions").
		Preload("Subscriptions.User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("User")
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "calendar_events"}})
	}
	var event models.CalendarEvent
	err := query.First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CalendarEventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindVisibleBetween returns every event the user may see whose occurrences
// can fall inside [start, end). Optional type and status filters narrow the
// result.
func (r *CalendarEventRepository) FindVisibleBetween(ctx context.Context, userID uint, start, end time.Time, params queryparams.ListParams) ([]models.CalendarEvent, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	query := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where(visibleScope, userID, userID).
		Where(windowScope, start, end, start, end, start, end, end, start)
	if params.Type != "" {
		query = query.Where("calendar_events.type = ?", params.Type)
	}
	if params.Status != "" {
		query = query.Where("calendar_events.status = ?", params.Status)
	}

	var events []models.CalendarEvent
	err := query.
		Preload("Subscriptions").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("calendar_events.start_time ASC").
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("CalendarEventRepository.FindVisibleBetween: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return events, nil
}

// FindOwnedBetween returns the user's own events in the window, the input of
// the personal statistics queries.
func (r *CalendarEventRepository) FindOwnedBetween(ctx context.Context, userID uint, start, end time.Time) ([]models.CalendarEvent, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	var events []models.CalendarEvent
	err := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where("calendar_events.user_id = ?", userID).
		Where(windowScope, start, end, start, end, start, end, end, start).
		Preload("Subscriptions").
		Order("calendar_events.start_time ASC").
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("CalendarEventRepository.FindOwnedBetween: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return events, nil
}

// FindAllBetween returns every event in the window regardless of owner, for
// the admin statistics.
func (r *CalendarEventRepository) FindAllBetween(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where(windowScope, start, end, start, end, start, end, end, start).
		Preload("Subscriptions").
		Order("calendar_events.start_time ASC").
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("CalendarEventRepository.FindAllBetween: DB error", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// FindUpcoming returns the next visible events starting at or after from.
func (r *CalendarEventRepository) FindUpcoming(ctx context.Context, userID uint, from time.Time, limit int) ([]models.CalendarEvent, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if limit <= 0 {
		limit = 10
	}
	var events []models.CalendarEvent
	err := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where(visibleScope, userID, userID).
		Where("calendar_events.start_time >= ?", from).
		Where("calendar_events.status <> ?", models.StatusCancelled).
		Preload("Subscriptions").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("calendar_events.start_time ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("CalendarEventRepository.FindUpcoming: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return events, nil
}

// FindStartingBetween returns scheduled events whose start time lies in
// [start, end), used by the reminder scheduler.
func (r *CalendarEventRepository) FindStartingBetween(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where("calendar_events.start_time >= ? AND calendar_events.start_time < ?", start, end).
		Where("calendar_events.status = ?", models.StatusScheduled).
		Preload("User").
		Order("calendar_events.start_time ASC").
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("CalendarEventRepository.FindStartingBetween: DB error", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// FindChainFrom returns the rows of a recurrence chain, optionally only those
// starting at or after from.
func (r *CalendarEventRepository) FindChainFrom(ctx context.Context, chainID string, from *time.Time) ([]models.CalendarEvent, error) {
	if chainID == "" {
		return nil, errors.New("invalid recurrence chain ID")
	}
	query := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where("recurrence_chain_id = ?", chainID)
	if from != nil {
		query = query.Where("start_time >= ?", *from)
	}
	var events []models.CalendarEvent
	err := query.Order("start_time ASC").Find(&events).Error
	if err != nil {
		configslog.Log.Error("CalendarEventRepository.FindChainFrom: DB error", zap.String("chainID", chainID), zap.Error(err))
		return nil, err
	}
	return events, nil
}

func (r *CalendarEventRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	if event == nil || event.ID == 0 {
		return errors.New("cannot update unsaved event")
	}
	return r.getDB(ctx).Save(event).Error
}

// UpdateChainFrom applies the column updates to every chain row, or to the
// rows starting at or after from. Returns the number of rows touched.
func (r *CalendarEventRepository) UpdateChainFrom(ctx context.Context, chainID string, from *time.Time, data map[string]interface{}) (int64, error) {
	if chainID == "" {
		return 0, errors.New("invalid recurrence chain ID")
	}
	query := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where("recurrence_chain_id = ?", chainID)
	if from != nil {
		query = query.Where("start_time >= ?", *from)
	}
	result := query.Updates(data)
	if result.Error != nil {
		configslog.Log.Error("CalendarEventRepository.UpdateChainFrom: DB error", zap.String("chainID", chainID), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete soft-deletes the event and stamps deleted_by.
func (r *CalendarEventRepository) Delete(ctx context.Context, event *models.CalendarEvent, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("cannot delete unsaved event")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		result := tx.Model(event).
			Where("id = ? AND deleted_at IS NULL", event.ID).
			Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
		if result.Error != nil {
			configslog.Log.Error("CalendarEventRepository.Delete: DB error", zap.Uint("id", event.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteChainFrom soft-deletes every chain row, or the rows starting at or
// after from. Returns the number of rows touched.
func (r *CalendarEventRepository) DeleteChainFrom(ctx context.Context, chainID string, from *time.Time, deletedByUserID uint) (int64, error) {
	if chainID == "" {
		return 0, errors.New("invalid recurrence chain ID")
	}
	now := time.Now().UTC()
	query := r.getDB(ctx).Model(&models.CalendarEvent{}).
		Where("recurrence_chain_id = ? AND deleted_at IS NULL", chainID)
	if from != nil {
		query = query.Where("start_time >= ?", *from)
	}
	result := query.Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
	if result.Error != nil {
		configslog.Log.Error("CalendarEventRepository.DeleteChainFrom: DB error", zap.String("chainID", chainID), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *CalendarEventRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.CalendarEvent{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ ICalendarEventRepository = (*CalendarEventRepository)(nil)
