package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ctxUserIDKey carries the acting user through repository transactions so the
// audit hooks can stamp created_by / updated_by.
const ctxUserIDKey contextKey = "currentUserID"

// BaseModel is embedded by every soft-deletable entity.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.CreatedBy = &id
	}
	return nil
}

func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.UpdatedBy = &id
	}
	return nil
}

// ContextWithUserID returns a context carrying the acting user's id.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, userID)
}

// UserIDFromContext extracts the acting user's id, if any.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(ctxUserIDKey).(uint)
	return id, ok
}
