package handler

import (
	"errors"
	"net/http"

	"aquisicoes-backend/internal/apperr"
	"aquisicoes-backend/internal/middleware"
	"aquisicoes-backend/internal/model"
	"aquisicoes-backend/internal/service"
	"aquisicoes-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// writeError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a persistence or programming
// failure and surfaces as a generic 500.
func writeError(c *gin.Context, err error) {
	var validationErr *apperr.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, validationErr.Error()))
	case errors.Is(err, apperr.ErrInvalidStatusValue):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, apperr.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal error"))
	}
}

// currentActor rebuilds the acting user from the claims stored by the
// auth middleware.
func currentActor(c *gin.Context) (service.Actor, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid user identity"))
		return service.Actor{}, false
	}
	role, ok := model.ParseUserRole(c.GetString(middleware.ContextUserRole))
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid user role"))
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Role: role}, true
}
