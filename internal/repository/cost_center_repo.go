package repository

import (
	"context"
	"errors"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"

	"gorm.io/gorm"
)

// CostCenterRepository defines the interface for data access of CostCenter entities
type CostCenterRepository interface {
	Create(ctx context.Context, costCenter *model.CostCenter) error
	GetByID(ctx context.Context, id string) (*model.CostCenter, error)
	GetByCode(ctx context.Context, code string) (*model.CostCenter, error)
	List(ctx context.Context, activeOnly bool) ([]model.CostCenter, error)
	Update(ctx context.Context, costCenter *model.CostCenter) error
}

type costCenterRepository struct {
	db *gorm.DB
}

func NewCostCenterRepository(db *gorm.DB) CostCenterRepository {
	return &costCenterRepository{db: db}
}

func (r *costCenterRepository) Create(ctx context.Context, costCenter *model.CostCenter) error {
	return GetDB(ctx, r.db).Create(costCenter).Error
}

func (r *costCenterRepository) GetByID(ctx context.Context, id string) (*model.CostCenter, error) {
	var costCenter model.CostCenter
	if err := GetDB(ctx, r.db).First(&costCenter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cost center")
		}
		return nil, err
	}
	return &costCenter, nil
}

func (r *costCenterRepository) GetByCode(ctx context.Context, code string) (*model.CostCenter, error) {
	var costCenter model.CostCenter
	if err := GetDB(ctx, r.db).First(&costCenter, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cost center")
		}
		return nil, err
	}
	return &costCenter, nil
}

func (r *costCenterRepository) List(ctx context.Context, activeOnly bool) ([]model.CostCenter, error) {
	var costCenters []model.CostCenter
	query := GetDB(ctx, r.db).Order("code ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&costCenters).Error; err != nil {
		return nil, err
	}
	return costCenters, nil
}

func (r *costCenterRepository) Update(ctx context.Context, costCenter *model.CostCenter) error {
	return GetDB(ctx, r.db).Save(costCenter).Error
}
