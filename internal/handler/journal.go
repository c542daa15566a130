package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// JournalHandler implements journal entry endpoints
type JournalHandler struct {
	service *service.JournalService
	logger  *zap.Logger
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(service *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		service: service,
		logger:  logger,
	}
}

type journalRequest struct {
	Mood       string     `json:"mood" binding:"required"`
	Symptoms   *string    `json:"symptoms"`
	DietNotes  *string    `json:"diet_notes"`
	Notes      string     `json:"notes"`
	OccurredAt *time.Time `json:"occurred_at"`
}

func (r journalRequest) toInput() service.JournalInput {
	return service.JournalInput{
		Mood:       model.Mood(r.Mood),
		Symptoms:   r.Symptoms,
		DietNotes:  r.DietNotes,
		Notes:      r.Notes,
		OccurredAt: r.OccurredAt,
	}
}

// Record adds a new journal entry for the caller
func (h *JournalHandler) Record(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	entry, err := h.service.Record(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// History lists the caller's journal entries
func (h *JournalHandler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to list journal entries", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Update modifies one of the caller's journal entries
func (h *JournalHandler) Update(c *gin.Context) {
	var req journalRequest
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

// Delete removes one of the caller's journal entries
func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
