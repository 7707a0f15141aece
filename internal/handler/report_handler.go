package handler

import (
	"net/http"
	"time"

	"aquisicoes-backend/internal/middleware"
	"aquisicoes-backend/internal/service"
	"aquisicoes-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler sets up the routing dependencies for reporting endpoints
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", middleware.RequireAuth(), h.Dashboard)

	reports := router.Group("/reports", middleware.RequireAuth())
	{
		reports.GET("", h.Summary)
		reports.GET("/export-excel", h.ExportExcel)
	}
}

// Dashboard handles GET /dashboard
// @Summary      Dashboard statistics
// @Description  Counts by type and status, pending approvals, monthly totals and recent acquisitions
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.DashboardResponse}
// @Router       /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// Summary handles GET /reports
// @Summary      Report summary
// @Description  Final value totals by type, month and cost center
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.ReportSummary}
// @Router       /reports [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// ExportExcel handles GET /reports/export-excel
// @Summary      Export report as Excel
// @Description  Streams an xlsx workbook with the executive summary and full listing
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /reports/export-excel [get]
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	buf, err := h.reportService.ExportExcel(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	filename := "relatorio_aquisicoes_" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
