package repository

import (
	"context"
	"errors"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"

	"gorm.io/gorm"
)

// PendingUserRepository stores registration requests awaiting admin
// action. Rows only ever leave this table through Delete — either after
// promotion to a User or on rejection.
type PendingUserRepository interface {
	Create(ctx context.Context, pending *model.PendingUser) error
	GetByID(ctx context.Context, id string) (*model.PendingUser, error)
	GetByEmail(ctx context.Context, email string) (*model.PendingUser, error)
	List(ctx context.Context) ([]model.PendingUser, error)
	Delete(ctx context.Context, id string) error
}

type pendingUserRepository struct {
	db *gorm.DB
}

func NewPendingUserRepository(db *gorm.DB) PendingUserRepository {
	return &pendingUserRepository{db: db}
}

func (r *pendingUserRepository) Create(ctx context.Context, pending *model.PendingUser) error {
	return GetDB(ctx, r.db).Create(pending).Error
}

func (r *pendingUserRepository) GetByID(ctx context.Context, id string) (*model.PendingUser, error) {
	var pending model.PendingUser
	if err := GetDB(ctx, r.db).First(&pending, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pending user")
		}
		return nil, err
	}
	return &pending, nil
}

func (r *pendingUserRepository) GetByEmail(ctx context.Context, email string) (*model.PendingUser, error) {
	var pending model.PendingUser
	if err := GetDB(ctx, r.db).First(&pending, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("pending user")
		}
		return nil, err
	}
	return &pending, nil
}

func (r *pendingUserRepository) List(ctx context.Context) ([]model.PendingUser, error) {
	var pending []model.PendingUser
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *pendingUserRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PendingUser{}).Error
}
