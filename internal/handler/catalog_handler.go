package handler

import (
	"net/http"

	"aquisicoes-backend/internal/middleware"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/service"
	"aquisicoes-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler sets up the routing dependencies for Category and CostCenter endpoints
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", middleware.RequireAuth(), h.ListCategories)
		categories.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateCategory)
		categories.PATCH("/:id/active", middleware.RequireRole(model.RoleAdmin), h.SetCategoryActive)
	}

	costCenters := router.Group("/cost-centers")
	{
		costCenters.GET("", middleware.RequireAuth(), h.ListCostCenters)
		costCenters.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateCostCenter)
		costCenters.PATCH("/:id/active", middleware.RequireRole(model.RoleAdmin), h.SetCostCenterActive)
	}
}

// ListCategories handles GET /categories
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        active_only  query     bool  false  "Only active categories"
// @Success      200          {object}  response.Response
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	categories, err := h.catalogService.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCategory handles POST /categories
// @Summary      Create category
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCategoryRequest  true  "Category payload"
// @Success      201      {object}  response.Response{data=model.Category}
// @Failure      400      {object}  response.Response
// @Router       /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// SetCategoryActive handles PATCH /categories/:id/active
// @Summary      Activate or deactivate a category
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Category ID"
// @Param        payload  body      object{active=bool}  true  "Active flag"
// @Success      200      {object}  response.Response{data=model.Category}
// @Failure      404      {object}  response.Response
// @Router       /categories/{id}/active [patch]
func (h *CatalogHandler) SetCategoryActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.catalogService.SetCategoryActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// ListCostCenters handles GET /cost-centers
// @Summary      List cost centers
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        active_only  query     bool  false  "Only active cost centers"
// @Success      200          {object}  response.Response
// @Router       /cost-centers [get]
func (h *CatalogHandler) ListCostCenters(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	costCenters, err := h.catalogService.ListCostCenters(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, costCenters))
}

// CreateCostCenter handles POST /cost-centers
// @Summary      Create cost center
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCostCenterRequest  true  "Cost center payload"
// @Success      201      {object}  response.Response{data=model.CostCenter}
// @Failure      400      {object}  response.Response
// @Router       /cost-centers [post]
func (h *CatalogHandler) CreateCostCenter(c *gin.Context) {
	var req service.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	costCenter, err := h.catalogService.CreateCostCenter(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, costCenter))
}

// SetCostCenterActive handles PATCH /cost-centers/:id/active
// @Summary      Activate or deactivate a cost center
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Cost center ID"
// @Param        payload  body      object{active=bool}  true  "Active flag"
// @Success      200      {object}  response.Response{data=model.CostCenter}
// @Failure      404      {object}  response.Response
// @Router       /cost-centers/{id}/active [patch]
func (h *CatalogHandler) SetCostCenterActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	costCenter, err := h.catalogService.SetCostCenterActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, costCenter))
}
