package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// AppointmentHandler implements appointment booking endpoints
type AppointmentHandler struct {
	service *service.AppointmentService
	logger  *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(service *service.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		logger:  logger,
	}
}

type bookRequest struct {
	ProviderID  string    `json:"provider_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Mode        string    `json:"mode" binding:"required"`
	Notes       *string   `json:"notes"`
}

// Book schedules a new appointment for the caller
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	appt, err := h.service.Book(c.Request.Context(), currentUserID(c), service.AppointmentInput{
		ProviderID:  req.ProviderID,
		ScheduledAt: req.ScheduledAt,
		Mode:        model.AppointmentMode(req.Mode),
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// List retrieves the caller's appointments by category.
// The category query parameter defaults to upcoming.
func (h *AppointmentHandler) List(c *gin.Context) {
	category := repository.AppointmentCategory(c.DefaultQuery("category", string(repository.AppointmentUpcoming)))

	appts, err := h.service.List(c.Request.Context(), currentUserID(c), category)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Cancel marks one of the caller's appointments as cancelled
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type rescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// Reschedule moves one of the caller's appointments to a new time
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.Reschedule(c.Request.Context(), currentUserID(c), c.Param("id"), req.ScheduledAt); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ProviderSchedule lists every appointment booked with the calling provider
func (h *AppointmentHandler) ProviderSchedule(c *gin.Context) {
	appts, err := h.service.ProviderSchedule(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to list provider schedule", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Complete marks an appointment with the calling provider as completed
func (h *AppointmentHandler) Complete(c *gin.Context) {
	if err := h.service.Complete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
