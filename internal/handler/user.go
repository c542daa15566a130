package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
)

// UserHandler implements profile, provider roster, and admin endpoints
type UserHandler struct {
	service *service.UserService
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// Profile returns the caller's own account
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type profileUpdateRequest struct {
	FullName               *string `json:"full_name"`
	MedicalHistory         *string `json:"medical_history"`
	Allergies              *string `json:"allergies"`
	EmergencyContactName   *string `json:"emergency_contact_name"`
	EmergencyContactNumber *string `json:"emergency_contact_number"`
	Specialization         *string `json:"specialization"`
}

// UpdateProfile applies a partial update to the caller's account
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), currentUserID(c), service.ProfileUpdate{
		FullName:               req.FullName,
		MedicalHistory:         req.MedicalHistory,
		Allergies:              req.Allergies,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
		Specialization:         req.Specialization,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Patients lists active patients for the provider roster
func (h *UserHandler) Patients(c *gin.Context) {
	patients, err := h.service.ActivePatients(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list patients", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// Patient returns one patient's account for provider review
func (h *UserHandler) Patient(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ArchivePatient removes a patient from the active roster
func (h *UserHandler) ArchivePatient(c *gin.Context) {
	if err := h.service.SetActive(c.Request.Context(), c.Param("id"), false); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Users lists every account for admin review
func (h *UserHandler) Users(c *gin.Context) {
	users, err := h.service.AllUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type toggleActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ToggleActive enables or disables an account
func (h *UserHandler) ToggleActive(c *gin.Context) {
	var req toggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.SetActive(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteUser permanently removes an account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
