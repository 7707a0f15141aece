package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCount is one row of the by-status distribution.
type StatusCount struct {
	Status AcquisitionStatus `json:"status"`
	Count  int64             `json:"count"`
}

// MonthlyTotal aggregates final values per (month, type) within the
// current year. Acquisitions without a final value count toward Count
// but contribute nothing to Total.
type MonthlyTotal struct {
	Month int             `json:"month"`
	Type  AcquisitionType `json:"type"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// CostCenterTotal aggregates final values per cost center.
type CostCenterTotal struct {
	Name  string          `json:"name"`
	Code  string          `json:"code"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// DashboardResponse backs the landing dashboard.
type DashboardResponse struct {
	TotalAcquisitions int64          `json:"total_acquisitions"`
	ServicosCount     int64          `json:"servicos_count"`
	InsumosCount      int64          `json:"insumos_count"`
	PendingApprovals  int64          `json:"pending_approvals"`
	StatusData        []StatusCount  `json:"status_data"`
	MonthlyData       []MonthlyTotal `json:"monthly_data"`
	Recent            []Acquisition  `json:"recent_acquisitions"`
}

// ReportSummary backs the reports screen and the Excel export header.
type ReportSummary struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	TotalValue     decimal.Decimal   `json:"total_value"`
	ServicosValue  decimal.Decimal   `json:"servicos_value"`
	InsumosValue   decimal.Decimal   `json:"insumos_value"`
	MonthlyData    []MonthlyTotal    `json:"monthly_data"`
	CostCenterData []CostCenterTotal `json:"cost_center_data"`
}
