package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/service"
)

// ChatHandler implements assistant conversation endpoints
type ChatHandler struct {
	service *service.ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

type chatRequest struct {
	Text string `json:"text" binding:"required"`
}

// Ask sends a question to the assistant and returns its reply
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	reply, err := h.service.Ask(c.Request.Context(), currentUserID(c), req.Text)
	if err != nil {
		h.logger.Error("chat request failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// History returns the caller's full conversation transcript
func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.service.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("failed to load chat history", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
