package service

import (
	"context"
	"fmt"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/repository"
)

// --- DTOs ---

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

type CreateCostCenterRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// --- Interface ---

// CatalogService manages the admin-maintained classification tables:
// categories and cost centers. Once referenced by an acquisition only
// the active flag changes.
type CatalogService interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]model.Category, error)
	SetCategoryActive(ctx context.Context, id string, active bool) (*model.Category, error)
	CreateCostCenter(ctx context.Context, req CreateCostCenterRequest) (*model.CostCenter, error)
	ListCostCenters(ctx context.Context, activeOnly bool) ([]model.CostCenter, error)
	SetCostCenterActive(ctx context.Context, id string, active bool) (*model.CostCenter, error)
}

type catalogService struct {
	categories  repository.CategoryRepository
	costCenters repository.CostCenterRepository
}

func NewCatalogService(categories repository.CategoryRepository, costCenters repository.CostCenterRepository) CatalogService {
	return &catalogService{categories: categories, costCenters: costCenters}
}

// --- Implementation ---

func (s *catalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	categoryType, ok := model.ParseAcquisitionType(req.Type)
	if !ok {
		return nil, apperr.NewValidation("type", "deve ser servico ou insumo")
	}

	category := &model.Category{
		Name:        req.Name,
		Type:        categoryType,
		Description: req.Description,
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	return s.categories.List(ctx, activeOnly)
}

func (s *catalogService) SetCategoryActive(ctx context.Context, id string, active bool) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Active = active
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *catalogService) CreateCostCenter(ctx context.Context, req CreateCostCenterRequest) (*model.CostCenter, error) {
	// Codes are unique; report a friendly error before hitting the
	// database constraint.
	if _, err := s.costCenters.GetByCode(ctx, req.Code); err == nil {
		return nil, apperr.NewValidation("code", "código já cadastrado")
	}

	costCenter := &model.CostCenter{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.costCenters.Create(ctx, costCenter); err != nil {
		return nil, fmt.Errorf("failed to create cost center: %w", err)
	}
	return costCenter, nil
}

func (s *catalogService) ListCostCenters(ctx context.Context, activeOnly bool) ([]model.CostCenter, error) {
	return s.costCenters.List(ctx, activeOnly)
}

func (s *catalogService) SetCostCenterActive(ctx context.Context, id string, active bool) (*model.CostCenter, error) {
	costCenter, err := s.costCenters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	costCenter.Active = active
	if err := s.costCenters.Update(ctx, costCenter); err != nil {
		return nil, fmt.Errorf("failed to update cost center: %w", err)
	}
	return costCenter, nil
}
