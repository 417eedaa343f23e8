package repositories

import (
	"context"
	"errors"
	"strings"

	"faithhub.app/configs/configslog"
	"faithhub.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IBaseRepository is the generic CRUD surface shared by the concrete
// repositories for their plain operations.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error)
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
}

// BaseRepository implements IBaseRepository over a gorm.DB handle.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]bool{"id": true, "created_at": true}}
}

// SetAllowedSortColumns whitelists the columns list queries may sort by.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = true
	}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot create nil entity")
	}
	return r.getDB(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, errors.New("invalid ID")
	}
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BaseRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) GetAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error) {
	var entities []T
	var totalCount int64
	var model T

	query := r.getDB(ctx).Model(&model)
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("BaseRepository.GetAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return entities, 0, nil
	}

	query = query.Order(r.orderClause(params)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset())
	if err := query.Find(&entities).Error; err != nil {
		configslog.Log.Error("BaseRepository.GetAllPaginated: find error", zap.Error(err))
		return nil, totalCount, err
	}
	return entities, totalCount, nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot update nil entity")
	}
	return r.getDB(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var count int64
	err := r.getDB(ctx).Model(&model).Count(&count).Error
	return count, err
}

func (r *BaseRepository[T]) orderClause(params queryparams.ListParams) string {
	column := "created_at"
	if r.allowedSortColumns[params.SortBy] {
		column = params.SortBy
	} else if params.SortBy != "" {
		configslog.SLog.Warnf("ignoring disallowed sort column %q", params.SortBy)
	}
	order := strings.ToLower(params.OrderBy)
	if order != "asc" && order != "desc" {
		order = queryparams.DefaultOrderBy
	}
	return column + " " + order
}
