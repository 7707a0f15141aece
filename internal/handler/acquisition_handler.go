package handler

import (
	"net/http"

	"aquisicoes-backend/internal/middleware"
	"aquisicoes-backend/internal/service"
	"aquisicoes-backend/pkg/pagination"
	"aquisicoes-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AcquisitionHandler struct {
	acquisitionService service.AcquisitionService
}

// NewAcquisitionHandler sets up the routing dependencies for Acquisition endpoints
func NewAcquisitionHandler(acquisitionService service.AcquisitionService) *AcquisitionHandler {
	return &AcquisitionHandler{acquisitionService: acquisitionService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AcquisitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	acquisitions := router.Group("/acquisitions", middleware.RequireAuth())
	{
		acquisitions.POST("", h.Create)
		acquisitions.GET("", h.List)
		acquisitions.GET("/:id", h.Get)
		acquisitions.POST("/:id/status", h.UpdateStatus)
		acquisitions.POST("/:id/documents", h.AttachDocument)
	}
}

// Create handles POST /acquisitions
// @Summary      Create acquisition
// @Description  Creates a procurement request in the initial em_analise status
// @Tags         acquisitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAcquisitionRequest  true  "Acquisition payload"
// @Success      201      {object}  response.Response{data=model.Acquisition}
// @Failure      400      {object}  response.Response
// @Router       /acquisitions [post]
func (h *AcquisitionHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req service.CreateAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	acq, err := h.acquisitionService.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, acq))
}

// List handles GET /acquisitions
// @Summary      List acquisitions
// @Description  Lists acquisitions with filters; requesters only see their own records
// @Tags         acquisitions
// @Produce      json
// @Security     BearerAuth
// @Param        type         query     string  false  "Filter by type (servico|insumo)"
// @Param        status       query     string  false  "Filter by status"
// @Param        category_id  query     string  false  "Filter by category"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /acquisitions [get]
func (h *AcquisitionHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	query := service.ListAcquisitionsQuery{
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		CategoryID: c.Query("category_id"),
		Page:       params.Page,
		Limit:      params.Limit,
	}

	acquisitions, total, err := h.acquisitionService.List(c.Request.Context(), actor, query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, acquisitions, total, params.Page, params.Limit))
}

// Get handles GET /acquisitions/:id
// @Summary      Get acquisition
// @Description  Returns one acquisition with its status history and documents
// @Tags         acquisitions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Acquisition ID"
// @Success      200  {object}  response.Response{data=model.Acquisition}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /acquisitions/{id} [get]
func (h *AcquisitionHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	acq, err := h.acquisitionService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, acq))
}

// UpdateStatus handles POST /acquisitions/:id/status
// @Summary      Apply status transition
// @Description  Moves an acquisition to a new status and appends a status history record
// @Tags         acquisitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Acquisition ID"
// @Param        payload  body      service.TransitionRequest  true  "Transition payload"
// @Success      200      {object}  response.Response{data=model.Acquisition}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /acquisitions/{id}/status [post]
func (h *AcquisitionHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	acq, err := h.acquisitionService.ApplyTransition(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, acq))
}

// AttachDocument handles POST /acquisitions/:id/documents
// @Summary      Attach document
// @Description  Records an uploaded file's metadata against an acquisition
// @Tags         acquisitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Acquisition ID"
// @Param        payload  body      service.AttachDocumentRequest  true  "Document metadata"
// @Success      201      {object}  response.Response{data=model.Document}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /acquisitions/{id}/documents [post]
func (h *AcquisitionHandler) AttachDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req service.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if req.FileSize < 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid file size"))
		return
	}

	doc, err := h.acquisitionService.AttachDocument(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}
