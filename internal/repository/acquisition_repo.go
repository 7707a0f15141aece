package repository

import (
	"context"
	"errors"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcquisitionFilter narrows List results. RequesterID is set by the
// service when the actor only sees their own records.
type AcquisitionFilter struct {
	Type        *model.AcquisitionType
	Status      *model.AcquisitionStatus
	CategoryID  *uuid.UUID
	RequesterID *uuid.UUID
	Page        int
	Limit       int
}

// AcquisitionRepository is the entity store for acquisitions and their
// owned children. SaveWithHistory and CreateWithHistory persist the
// acquisition row and its StatusHistory row in one transaction — no
// partial state is ever visible.
type AcquisitionRepository interface {
	GetByID(ctx context.Context, id string) (*model.Acquisition, error)
	CreateWithHistory(ctx context.Context, acq *model.Acquisition, history *model.StatusHistory) error
	SaveWithHistory(ctx context.Context, acq *model.Acquisition, history *model.StatusHistory) error
	List(ctx context.Context, filter AcquisitionFilter) ([]model.Acquisition, int64, error)
	AddDocument(ctx context.Context, doc *model.Document) error
	ListAll(ctx context.Context) ([]model.Acquisition, error)
}

type acquisitionRepository struct {
	db *gorm.DB
}

func NewAcquisitionRepository(db *gorm.DB) AcquisitionRepository {
	return &acquisitionRepository{db: db}
}

func (r *acquisitionRepository) GetByID(ctx context.Context, id string) (*model.Acquisition, error) {
	var acq model.Acquisition
	err := GetDB(ctx, r.db).
		Preload("Requester").
		Preload("Approver").
		Preload("Category").
		Preload("CostCenter").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("status_histories.created_at ASC")
		}).
		Preload("StatusHistory.User").
		Preload("Documents").
		First(&acq, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("acquisition")
		}
		return nil, err
	}
	return &acq, nil
}

func (r *acquisitionRepository) CreateWithHistory(ctx context.Context, acq *model.Acquisition, history *model.StatusHistory) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acq).Error; err != nil {
			return err
		}
		history.AcquisitionID = acq.ID
		return tx.Create(history).Error
	})
}

func (r *acquisitionRepository) SaveWithHistory(ctx context.Context, acq *model.Acquisition, history *model.StatusHistory) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		// Save only the acquisition row; association writes would touch
		// the append-only history collection.
		if err := tx.Omit("StatusHistory", "Documents", "Requester", "Approver", "Category", "CostCenter").
			Save(acq).Error; err != nil {
			return err
		}
		history.AcquisitionID = acq.ID
		return tx.Create(history).Error
	})
}

func (r *acquisitionRepository) List(ctx context.Context, filter AcquisitionFilter) ([]model.Acquisition, int64, error) {
	db := GetDB(ctx, r.db)

	query := db.Model(&model.Acquisition{})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.RequesterID != nil {
		query = query.Where("requester_id = ?", *filter.RequesterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	var acquisitions []model.Acquisition
	if err := query.
		Preload("Requester").
		Preload("Category").
		Preload("CostCenter").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&acquisitions).Error; err != nil {
		return nil, 0, err
	}

	return acquisitions, total, nil
}

func (r *acquisitionRepository) AddDocument(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

// ListAll returns every acquisition with relations, used by the report
// exporter.
func (r *acquisitionRepository) ListAll(ctx context.Context) ([]model.Acquisition, error) {
	var acquisitions []model.Acquisition
	if err := GetDB(ctx, r.db).
		Preload("Requester").
		Preload("Category").
		Preload("CostCenter").
		Order("created_at DESC").
		Find(&acquisitions).Error; err != nil {
		return nil, err
	}
	return acquisitions, nil
}
