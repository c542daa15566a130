package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// ExerciseHandler implements exercise log endpoints
type ExerciseHandler struct {
	service *service.ExerciseService
	logger  *zap.Logger
}

// NewExerciseHandler creates a new ExerciseHandler
func NewExerciseHandler(service *service.ExerciseService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
		logger:  logger,
	}
}

type exerciseRequest struct {
	ExerciseType    string     `json:"exercise_type" binding:"required"`
	DurationMinutes int        `json:"duration_minutes" binding:"min=0"`
	Intensity       string     `json:"intensity" binding:"required"`
	Notes           *string    `json:"notes"`
	OccurredAt      *time.Time `json:"occurred_at"`
}

func (r exerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		ExerciseType:    r.ExerciseType,
		DurationMinutes: r.DurationMinutes,
		Intensity:       model.Intensity(r.Intensity),
		Notes:           r.Notes,
		OccurredAt:      r.OccurredAt,
	}
}

// Log records a new exercise session
func (h *ExerciseHandler) Log(c *gin.Context) {
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	log, err := h.service.Log(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// History lists the caller's exercise sessions
func (h *ExerciseHandler) History(c *gin.Context) {
	logs, err := h.service.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to list exercise logs", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Update modifies one of the caller's exercise sessions
func (h *ExerciseHandler) Update(c *gin.Context) {
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.toInput()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes one of the caller's exercise sessions
func (h *ExerciseHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
