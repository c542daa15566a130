package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
)

// ProgressHandler implements progress summary endpoints
type ProgressHandler struct {
	service *service.ProgressService
	logger  *zap.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(service *service.ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger,
	}
}

// Weekly returns the caller's trailing seven day summary
func (h *ProgressHandler) Weekly(c *gin.Context) {
	summary, err := h.service.WeeklySummary(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to compute weekly summary", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
