package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fiqretemirxd/mycardiacrehab/internal/middleware"
	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
)

// ErrorResponse is the JSON body returned for every failed request
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// currentUserID reads the authenticated user id set by the auth middleware
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// respondValidationError sends a 400 with the binding failure detail
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Invalid request body",
		Details: stringPtr(err.Error()),
	})
}

// respondServiceError maps service and repository errors to HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	var ve service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: ve.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "You do not have access to this resource",
		})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    "ACCOUNT_DISABLED",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrInvalidRegisterCode):
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    "CONFLICT",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Something went wrong",
			Details: stringPtr(err.Error()),
		})
	}
}
