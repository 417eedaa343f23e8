package repositories

import (
	"context"
	"errors"

	"faithhub.app/configs"
	"faithhub.app/configs/configslog"
	"faithhub.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICalendarEventImageRepository is the storage surface for event image
// metadata. Rows are hard-deleted together with their files.
type ICalendarEventImageRepository interface {
	Create(ctx context.Context, image *models.CalendarEventImage) error
	FindByEventAndID(ctx context.Context, eventID, imageID uint) (*models.CalendarEventImage, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.CalendarEventImage, error)
	SetPrimary(ctx context.Context, eventID, imageID uint) error
	Delete(ctx context.Context, eventID, imageID uint) error
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type CalendarEventImageRepository struct {
	db *gorm.DB
}

func NewCalendarEventImageRepository() ICalendarEventImageRepository {
	return &CalendarEventImageRepository{db: configs.GetDB()}
}

func NewCalendarEventImageRepositoryTx(tx *gorm.DB) ICalendarEventImageRepository {
	return &CalendarEventImageRepository{db: tx}
}

func (r *CalendarEventImageRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CalendarEventImageRepository) Create(ctx context.Context, image *models.CalendarEventImage) error {
	if image == nil || image.CalendarEventID == 0 {
		return errors.New("cannot create image without an event")
	}
	return r.getDB(ctx).Create(image).Error
}

func (r *CalendarEventImageRepository) FindByEventAndID(ctx context.Context, eventID, imageID uint) (*models.CalendarEventImage, error) {
	if eventID == 0 || imageID == 0 {
		return nil, errors.New("invalid event or image ID")
	}
	var image models.CalendarEventImage
	err := r.getDB(ctx).
		Where("calendar_event_id = ? AND id = ?", eventID, imageID).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CalendarEventImageRepository.FindByEventAndID: DB error",
			zap.Uint("eventID", eventID), zap.Uint("imageID", imageID), zap.Error(err))
		return nil, err
	}
	return &image, nil
}

func (r *CalendarEventImageRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.CalendarEventImage, error) {
	if eventID == 0 {
		return nil, errors.New("invalid event ID")
	}
	var images []models.CalendarEventImage
	err := r.getDB(ctx).
		Where("calendar_event_id = ?", eventID).
		Order("display_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		configslog.Log.Error("CalendarEventImageRepository.ListByEvent: DB error",
			zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return images, nil
}

// SetPrimary flags one image as primary and clears the flag on the event's
// other images in the same transaction.
func (r *CalendarEventImageRepository) SetPrimary(ctx context.Context, eventID, imageID uint) error {
	if eventID == 0 || imageID == 0 {
		return errors.New("invalid event or image ID")
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CalendarEventImage{}).
			Where("calendar_event_id = ? AND is_primary = true", eventID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.CalendarEventImage{}).
			Where("calendar_event_id = ? AND id = ?", eventID, imageID).
			Update("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *CalendarEventImageRepository) Delete(ctx context.Context, eventID, imageID uint) error {
	if eventID == 0 || imageID == 0 {
		return errors.New("invalid event or image ID")
	}
	result := r.getDB(ctx).
		Where("calendar_event_id = ? AND id = ?", eventID, imageID).
		Delete(&models.CalendarEventImage{})
	if result.Error != nil {
		configslog.Log.Error("CalendarEventImageRepository.Delete: DB error",
			zap.Uint("eventID", eventID), zap.Uint("imageID", imageID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CalendarEventImageRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	if eventID == 0 {
		return 0, errors.New("invalid event ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.CalendarEventImage{}).
		Where("calendar_event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

var _ ICalendarEventImageRepository = (*CalendarEventImageRepository)(nil)
