package service

import (
	"context"
	"testing"

	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reportFixture struct {
	db        *gorm.DB
	svc       ReportService
	requester *model.User
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := setupTestDB(t)
	requester := seedUser(t, db, "solicitante@test.local", model.RoleSolicitante)
	svc := NewReportService(
		repository.NewReportRepository(db),
		repository.NewAcquisitionRepository(db),
	)
	return &reportFixture{db: db, svc: svc, requester: requester}
}

func nullDecimal(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func (f *reportFixture) seedAcquisition(t *testing.T, title string, acqType model.AcquisitionType, status model.AcquisitionStatus, finalValue decimal.NullDecimal, costCenter *model.CostCenter) {
	t.Helper()
	category := &model.Category{Name: "Categoria " + title, Type: acqType, Active: true}
	require.NoError(t, f.db.Create(category).Error)

	acq := &model.Acquisition{
		Title:         title,
		Description:   "descrição",
		Type:          acqType,
		Status:        status,
		Justification: "justificativa",
		FinalValue:    finalValue,
		RequesterID:   f.requester.ID,
		CategoryID:    category.ID,
		CostCenterID:  costCenter.ID,
	}
	require.NoError(t, f.db.Create(acq).Error)
}

func (f *reportFixture) seedCostCenter(t *testing.T, code, name string) *model.CostCenter {
	t.Helper()
	cc := &model.CostCenter{Code: code, Name: name, Active: true}
	require.NoError(t, f.db.Create(cc).Error)
	return cc
}

func TestTotalFinalValueSkipsNulls(t *testing.T) {
	f := newReportFixture(t)
	cc := f.seedCostCenter(t, "ADM", "Administração")

	f.seedAcquisition(t, "a", model.TypeServico, model.StatusFechado, nullDecimal("100.50"), cc)
	f.seedAcquisition(t, "b", model.TypeServico, model.StatusAprovado, decimal.NullDecimal{}, cc)
	f.seedAcquisition(t, "c", model.TypeInsumo, model.StatusFechado, nullDecimal("249.50"), cc)

	total, err := f.svc.TotalFinalValue(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("350.00")), "got %s", total)
}

func TestSummaryPartitionsByType(t *testing.T) {
	f := newReportFixture(t)
	ccAdm := f.seedCostCenter(t, "ADM", "Administração")
	ccLab := f.seedCostCenter(t, "LAB", "Laboratórios")

	f.seedAcquisition(t, "pintura", model.TypeServico, model.StatusFechado, nullDecimal("300.00"), ccAdm)
	f.seedAcquisition(t, "limpeza", model.TypeServico, model.StatusFechado, nullDecimal("200.00"), ccLab)
	f.seedAcquisition(t, "notebooks", model.TypeInsumo, model.StatusFechado, nullDecimal("500.00"), ccLab)
	f.seedAcquisition(t, "sem valor", model.TypeInsumo, model.StatusEmAnalise, decimal.NullDecimal{}, ccAdm)

	summary, err := f.svc.Summary(context.Background())
	require.NoError(t, err)

	// Per-type sums must partition the grand total.
	assert.True(t, summary.ServicosValue.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, summary.InsumosValue.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, summary.TotalValue.Equal(summary.ServicosValue.Add(summary.InsumosValue)))

	require.Len(t, summary.CostCenterData, 2)
	assert.Equal(t, "ADM", summary.CostCenterData[0].Code)
	assert.True(t, summary.CostCenterData[0].Total.Equal(decimal.RequireFromString("300.00")))
	assert.EqualValues(t, 2, summary.CostCenterData[0].Count)
	assert.Equal(t, "LAB", summary.CostCenterData[1].Code)
	assert.True(t, summary.CostCenterData[1].Total.Equal(decimal.RequireFromString("700.00")))
}

func TestDashboardCounts(t *testing.T) {
	f := newReportFixture(t)
	cc := f.seedCostCenter(t, "INFO", "Tecnologia da Informação")

	f.seedAcquisition(t, "a", model.TypeServico, model.StatusEmAnalise, decimal.NullDecimal{}, cc)
	f.seedAcquisition(t, "b", model.TypeInsumo, model.StatusEmAnalise, decimal.NullDecimal{}, cc)
	f.seedAcquisition(t, "c", model.TypeInsumo, model.StatusAprovado, nullDecimal("10.00"), cc)

	dashboard, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, dashboard.TotalAcquisitions)
	assert.EqualValues(t, 1, dashboard.ServicosCount)
	assert.EqualValues(t, 2, dashboard.InsumosCount)
	assert.EqualValues(t, 2, dashboard.PendingApprovals)

	byStatus := map[model.AcquisitionStatus]int64{}
	for _, row := range dashboard.StatusData {
		byStatus[row.Status] = row.Count
	}
	assert.EqualValues(t, 2, byStatus[model.StatusEmAnalise])
	assert.EqualValues(t, 1, byStatus[model.StatusAprovado])

	assert.Len(t, dashboard.Recent, 3)
	require.NotEmpty(t, dashboard.MonthlyData)
	var monthlyCount int64
	for _, m := range dashboard.MonthlyData {
		monthlyCount += m.Count
	}
	assert.EqualValues(t, 3, monthlyCount)
}

func TestExportExcelProducesWorkbook(t *testing.T) {
	f := newReportFixture(t)
	cc := f.seedCostCenter(t, "ADM", "Administração")
	f.seedAcquisition(t, "cadeiras", model.TypeInsumo, model.StatusFechado, nullDecimal("1200.00"), cc)

	buf, err := f.svc.ExportExcel(context.Background())
	require.NoError(t, err)
	require.NotNil(t, buf)
	// XLSX files are zip archives, check the magic bytes.
	content := buf.Bytes()
	require.Greater(t, len(content), 4)
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}
