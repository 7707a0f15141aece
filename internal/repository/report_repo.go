package repository

import (
	"context"
	"time"

	"aquisicoes-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyRow is one acquisition slice used for monthly aggregation.
// FinalValue stays a NullDecimal so the aggregator can exclude nulls
// from sums while still counting the row.
type MonthlyRow struct {
	CreatedAt  time.Time
	Type       model.AcquisitionType
	FinalValue decimal.NullDecimal
}

// CostCenterRow is one acquisition slice used for cost-center grouping.
type CostCenterRow struct {
	Name       string
	Code       string
	FinalValue decimal.NullDecimal
}

// ReportRepository reads aggregation inputs for the reporting service.
// Counts group in SQL; money fields come back as raw rows because the
// sums are computed with decimals, not database floats.
type ReportRepository interface {
	CountTotal(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, t model.AcquisitionType) (int64, error)
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	CountWithStatus(ctx context.Context, status model.AcquisitionStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]model.Acquisition, error)
	MonthlyRows(ctx context.Context, year int) ([]MonthlyRow, error)
	CostCenterRows(ctx context.Context) ([]CostCenterRow, error)
	FinalValues(ctx context.Context, t *model.AcquisitionType) ([]decimal.NullDecimal, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountTotal(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Acquisition{}).Count(&total).Error
	return total, err
}

func (r *reportRepository) CountByType(ctx context.Context, t model.AcquisitionType) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Acquisition{}).Where("type = ?", t).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	var counts []model.StatusCount
	err := GetDB(ctx, r.db).Model(&model.Acquisition{}).
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *reportRepository) CountWithStatus(ctx context.Context, status model.AcquisitionStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Acquisition{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *reportRepository) Recent(ctx context.Context, limit int) ([]model.Acquisition, error) {
	var acquisitions []model.Acquisition
	err := GetDB(ctx, r.db).
		Preload("Category").
		Preload("Requester").
		Order("created_at DESC").
		Limit(limit).
		Find(&acquisitions).Error
	return acquisitions, err
}

func (r *reportRepository) MonthlyRows(ctx context.Context, year int) ([]MonthlyRow, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var rows []MonthlyRow
	err := GetDB(ctx, r.db).Model(&model.Acquisition{}).
		Select("created_at, type, final_value").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CostCenterRows(ctx context.Context) ([]CostCenterRow, error) {
	var rows []CostCenterRow
	err := GetDB(ctx, r.db).Table("acquisitions").
		Select("cost_centers.name as name, cost_centers.code as code, acquisitions.final_value as final_value").
		Joins("JOIN cost_centers ON cost_centers.id = acquisitions.cost_center_id").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) FinalValues(ctx context.Context, t *model.AcquisitionType) ([]decimal.NullDecimal, error) {
	query := GetDB(ctx, r.db).Model(&model.Acquisition{})
	if t != nil {
		query = query.Where("type = ?", *t)
	}
	var values []decimal.NullDecimal
	err := query.Pluck("final_value", &values).Error
	return values, err
}
