package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// MedicationHandler implements medication reminder endpoints
type MedicationHandler struct {
	service *service.MedicationService
	logger  *zap.Logger
}

// NewMedicationHandler creates a new MedicationHandler
func NewMedicationHandler(service *service.MedicationService, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{
		service: service,
		logger:  logger,
	}
}

type medicationRequest struct {
	PatientID      string     `json:"patient_id" binding:"required"`
	MedicationName string     `json:"medication_name" binding:"required"`
	Dosage         string     `json:"dosage" binding:"required"`
	Frequency      string     `json:"frequency"`
	TimeOfDay      string     `json:"time_of_day"`
	OccurredAt     *time.Time `json:"occurred_at"`
}

// Prescribe schedules a new medication dose for a patient.
// Registered on the provider route group.
func (h *MedicationHandler) Prescribe(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	reminder, err := h.service.Prescribe(c.Request.Context(), req.PatientID, service.MedicationInput{
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		TimeOfDay:      req.TimeOfDay,
		OccurredAt:     req.OccurredAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// History lists the caller's medication doses
func (h *MedicationHandler) History(c *gin.Context) {
	reminders, err := h.service.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to list medication reminders", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

type doseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus marks one of the caller's doses as taken or missed
func (h *MedicationHandler) SetStatus(c *gin.Context) {
	var req doseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), currentUserID(c), c.Param("id"), model.DoseStatus(req.Status)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
