// Package export renders acquisition reports as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"aquisicoes-backend/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Resumo Executivo"
	detailSheet  = "Aquisições"
)

// ExcelReport writes a two-sheet workbook: an executive summary and
// the full acquisition listing.
func ExcelReport(summary *model.ReportSummary, acquisitions []model.Acquisition) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("failed to create detail sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1E4A6B"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	// Summary sheet.
	f.SetCellValue(summarySheet, "A1", "Relatório de Aquisições")
	f.SetCellValue(summarySheet, "A2", "Gerado em: "+summary.GeneratedAt.Format("02/01/2006 15:04"))

	summaryRows := [][]interface{}{
		{"Indicador", "Valor (R$)"},
		{"Total de Solicitações", summary.TotalValue.StringFixed(2)},
		{"Serviços", summary.ServicosValue.StringFixed(2)},
		{"Insumos", summary.InsumosValue.StringFixed(2)},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+4)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	f.SetCellStyle(summarySheet, "A4", "B4", headerStyle)

	ccStart := len(summaryRows) + 5
	ccHeader := []interface{}{"Centro de Custo", "Solicitações", "Valor (R$)"}
	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", ccStart), &ccHeader); err != nil {
		return nil, fmt.Errorf("failed to write cost center header: %w", err)
	}
	f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", ccStart), fmt.Sprintf("C%d", ccStart), headerStyle)
	for i, cc := range summary.CostCenterData {
		row := []interface{}{cc.Name, cc.Count, cc.Total.StringFixed(2)}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", ccStart+i+1), &row); err != nil {
			return nil, fmt.Errorf("failed to write cost center row: %w", err)
		}
	}

	// Detail sheet.
	detailHeader := []interface{}{
		"Título", "Tipo", "Categoria", "Centro de Custo", "Solicitante",
		"Status", "Valor Estimado", "Valor Final", "Criado em",
	}
	if err := f.SetSheetRow(detailSheet, "A1", &detailHeader); err != nil {
		return nil, fmt.Errorf("failed to write detail header: %w", err)
	}
	f.SetCellStyle(detailSheet, "A1", "I1", headerStyle)

	for i, acq := range acquisitions {
		row := []interface{}{
			acq.Title,
			string(acq.Type),
			categoryName(&acq),
			costCenterName(&acq),
			requesterName(&acq),
			string(acq.Status),
			nullDecimalString(acq.EstimatedValue.Valid, acq.EstimatedValue.Decimal.StringFixed(2)),
			nullDecimalString(acq.FinalValue.Valid, acq.FinalValue.Decimal.StringFixed(2)),
			acq.CreatedAt.Format(time.DateOnly),
		}
		if err := f.SetSheetRow(detailSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, fmt.Errorf("failed to write detail row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func categoryName(acq *model.Acquisition) string {
	if acq.Category != nil {
		return acq.Category.Name
	}
	return ""
}

func costCenterName(acq *model.Acquisition) string {
	if acq.CostCenter != nil {
		return acq.CostCenter.Name
	}
	return ""
}

func requesterName(acq *model.Acquisition) string {
	if acq.Requester != nil {
		return acq.Requester.FullName()
	}
	return ""
}

func nullDecimalString(valid bool, s string) string {
	if !valid {
		return ""
	}
	return s
}
