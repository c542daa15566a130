package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
)

// ReportHandler implements provider-facing report endpoints
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

type generateReportRequest struct {
	PatientID  string `json:"patient_id" binding:"required"`
	PeriodDays int    `json:"period_days"`
}

// Generate composes and persists a report for a patient
func (h *ReportHandler) Generate(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	report, err := h.service.Generate(c.Request.Context(), req.PatientID, req.PeriodDays)
	if err != nil {
		h.logger.Error("failed to generate report",
			zap.Error(err),
			zap.String("patient_id", req.PatientID),
		)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// History lists the stored reports for a patient
func (h *ReportHandler) History(c *gin.Context) {
	patientID := c.Query("patient_id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "patient_id query parameter is required",
		})
		return
	}

	reports, err := h.service.History(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Get retrieves one stored report
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPDF renders one stored report as a downloadable PDF
func (h *ReportHandler) GetPDF(c *gin.Context) {
	pdfBytes, err := h.service.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to render report PDF",
			zap.Error(err),
			zap.String("report_id", c.Param("id")),
		)
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=patient-report.pdf")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
