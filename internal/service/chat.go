package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// OutOfScopeReply is the exact refusal the assistant is instructed to give
// for questions outside cardiac rehabilitation guidance.
const OutOfScopeReply = "That is out of my scope. Please consult a healthcare professional."

// fallbackReply is stored when the AI backend fails after retries
const fallbackReply = "I am having trouble answering right now. Please try again in a moment."

const systemPrompt = `You are a cardiac rehabilitation assistant for recovering heart patients.
You may answer questions about: safe exercise during cardiac recovery, heart-healthy diet,
medication routines in general terms, rest and sleep, stress management, and when to contact
a care team.

You must NOT diagnose conditions, interpret test results, adjust prescriptions, or answer
questions unrelated to cardiac rehabilitation. For any such question, reply with exactly:
"` + OutOfScopeReply + `"

Keep answers short, supportive, and practical. Remind the patient to contact their care team
about anything urgent.`

// historyWindow bounds how many stored messages feed the completion context
const historyWindow = 20

// completionClient is the AI backend the chat service depends on
type completionClient interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
}

// chatStore is the transcript persistence the chat service depends on
type chatStore interface {
	Insert(ctx context.Context, msg *model.ChatMessage) error
	FindByPatientID(ctx context.Context, patientID string) ([]model.ChatMessage, error)
	FindRecent(ctx context.Context, patientID string, limit int64) ([]model.ChatMessage, error)
}

// ChatService runs the patient-facing assistant conversation
type ChatService struct {
	store  chatStore
	ai     completionClient
	logger *zap.Logger
}

// NewChatService creates a new ChatService
func NewChatService(store chatStore, ai completionClient, logger *zap.Logger) *ChatService {
	return &ChatService{store: store, ai: ai, logger: logger}
}

// Ask stores the patient's question, requests an assistant reply with the
// recent transcript as context, and stores the reply. A reply carrying the
// refusal text, or a failed completion, is flagged as out of scope.
func (s *ChatService) Ask(ctx context.Context, patientID, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationErrorf("message text is required")
	}

	userMsg := &model.ChatMessage{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		Role:       model.ChatRoleUser,
		Text:       text,
		InScope:    true,
		OccurredAt: time.Now(),
	}
	if err := s.store.Insert(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := s.store.FindRecent(ctx, patientID, historyWindow)
	if err != nil {
		s.logger.Warn("failed to load chat history, continuing without context",
			zap.Error(err),
			zap.String("patient_id", patientID),
		)
		history = []model.ChatMessage{*userMsg}
	}

	messages := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(systemPrompt)}
	for _, msg := range history {
		if msg.Role == model.ChatRoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Text))
		} else {
			messages = append(messages, openai.UserMessage(msg.Text))
		}
	}

	replyText, err := s.ai.Complete(ctx, messages)
	inScope := true
	if err != nil {
		s.logger.Error("assistant completion failed",
			zap.Error(err),
			zap.String("patient_id", patientID),
		)
		replyText = fallbackReply
		inScope = false
	} else if strings.Contains(replyText, OutOfScopeReply) {
		inScope = false
	}

	reply := &model.ChatMessage{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		Role:       model.ChatRoleAssistant,
		Text:       replyText,
		InScope:    inScope,
		OccurredAt: time.Now(),
	}
	if err := s.store.Insert(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	s.logger.Info("assistant replied",
		zap.String("patient_id", patientID),
		zap.Bool("in_scope", inScope),
	)

	return reply, nil
}

// History returns a patient's full transcript, oldest first
func (s *ChatService) History(ctx context.Context, patientID string) ([]model.ChatMessage, error) {
	return s.store.FindByPatientID(ctx, patientID)
}
