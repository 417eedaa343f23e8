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

// IUserRepository is the lookup surface over the mirrored user accounts.
type IUserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmails(ctx context.Context, emails []string) ([]models.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository() IUserRepository {
	return &UserRepository{db: configs.GetDB()}
}

func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}
	var user models.User
	err := r.getDB(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindByEmails returns the users matching any of the given emails. Missing
// addresses are simply absent from the result.
func (r *UserRepository) FindByEmails(ctx context.Context, emails []string) ([]models.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var users []models.User
	err := r.getDB(ctx).Where("email IN ?", emails).Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindByEmails: DB error", zap.Int("count", len(emails)), zap.Error(err))
		return nil, err
	}
	return users, nil
}

var _ IUserRepository = (*UserRepository)(nil)
