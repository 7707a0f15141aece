package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"aquisicoes-backend/internal/export"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService aggregates acquisition data for the dashboard and the
// reports screen. It only reads; null final values are excluded from
// sums but still counted.
type ReportService interface {
	Dashboard(ctx context.Context) (*model.DashboardResponse, error)
	Summary(ctx context.Context) (*model.ReportSummary, error)
	TotalFinalValue(ctx context.Context, t *model.AcquisitionType) (decimal.Decimal, error)
	ExportExcel(ctx context.Context) (*bytes.Buffer, error)
}

type reportService struct {
	reports      repository.ReportRepository
	acquisitions repository.AcquisitionRepository
}

func NewReportService(reports repository.ReportRepository, acquisitions repository.AcquisitionRepository) ReportService {
	return &reportService{reports: reports, acquisitions: acquisitions}
}

// ExportExcel renders the full report workbook.
func (s *reportService) ExportExcel(ctx context.Context) (*bytes.Buffer, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	acquisitions, err := s.acquisitions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load acquisitions for export: %w", err)
	}
	return export.ExcelReport(summary, acquisitions)
}

func (s *reportService) Dashboard(ctx context.Context) (*model.DashboardResponse, error) {
	total, err := s.reports.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count acquisitions: %w", err)
	}
	servicos, err := s.reports.CountByType(ctx, model.TypeServico)
	if err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	insumos, err := s.reports.CountByType(ctx, model.TypeInsumo)
	if err != nil {
		return nil, fmt.Errorf("failed to count supplies: %w", err)
	}
	pending, err := s.reports.CountWithStatus(ctx, model.StatusEmAnalise)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}
	statusData, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group by status: %w", err)
	}
	monthly, err := s.monthlyTotals(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.reports.Recent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent acquisitions: %w", err)
	}

	return &model.DashboardResponse{
		TotalAcquisitions: total,
		ServicosCount:     servicos,
		InsumosCount:      insumos,
		PendingApprovals:  pending,
		StatusData:        statusData,
		MonthlyData:       monthly,
		Recent:            recent,
	}, nil
}

func (s *reportService) Summary(ctx context.Context) (*model.ReportSummary, error) {
	totalValue, err := s.TotalFinalValue(ctx, nil)
	if err != nil {
		return nil, err
	}
	servicoType := model.TypeServico
	servicosValue, err := s.TotalFinalValue(ctx, &servicoType)
	if err != nil {
		return nil, err
	}
	insumoType := model.TypeInsumo
	insumosValue, err := s.TotalFinalValue(ctx, &insumoType)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthlyTotals(ctx)
	if err != nil {
		return nil, err
	}
	costCenters, err := s.costCenterTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &model.ReportSummary{
		GeneratedAt:    time.Now(),
		TotalValue:     totalValue,
		ServicosValue:  servicosValue,
		InsumosValue:   insumosValue,
		MonthlyData:    monthly,
		CostCenterData: costCenters,
	}, nil
}

// TotalFinalValue sums final_value over all acquisitions, optionally
// restricted to one type. Sums run in decimal on the application side
// so money never passes through database floats.
func (s *reportService) TotalFinalValue(ctx context.Context, t *model.AcquisitionType) (decimal.Decimal, error) {
	values, err := s.reports.FinalValues(ctx, t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load final values: %w", err)
	}

	total := decimal.Zero
	for _, v := range values {
		if v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	return total, nil
}

func (s *reportService) monthlyTotals(ctx context.Context) ([]model.MonthlyTotal, error) {
	rows, err := s.reports.MonthlyRows(ctx, time.Now().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly rows: %w", err)
	}

	type key struct {
		month int
		t     model.AcquisitionType
	}
	grouped := map[key]*model.MonthlyTotal{}
	for _, row := range rows {
		k := key{month: int(row.CreatedAt.Month()), t: row.Type}
		entry, ok := grouped[k]
		if !ok {
			entry = &model.MonthlyTotal{Month: k.month, Type: k.t, Total: decimal.Zero}
			grouped[k] = entry
		}
		entry.Count++
		if row.FinalValue.Valid {
			entry.Total = entry.Total.Add(row.FinalValue.Decimal)
		}
	}

	totals := make([]model.MonthlyTotal, 0, len(grouped))
	for _, entry := range grouped {
		totals = append(totals, *entry)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Month != totals[j].Month {
			return totals[i].Month < totals[j].Month
		}
		return totals[i].Type < totals[j].Type
	})
	return totals, nil
}

func (s *reportService) costCenterTotals(ctx context.Context) ([]model.CostCenterTotal, error) {
	rows, err := s.reports.CostCenterRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cost center rows: %w", err)
	}

	grouped := map[string]*model.CostCenterTotal{}
	for _, row := range rows {
		entry, ok := grouped[row.Code]
		if !ok {
			entry = &model.CostCenterTotal{Name: row.Name, Code: row.Code, Total: decimal.Zero}
			grouped[row.Code] = entry
		}
		entry.Count++
		if row.FinalValue.Valid {
			entry.Total = entry.Total.Add(row.FinalValue.Decimal)
		}
	}

	totals := make([]model.CostCenterTotal, 0, len(grouped))
	for _, entry := range grouped {
		totals = append(totals, *entry)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Code < totals[j].Code })
	return totals, nil
}
