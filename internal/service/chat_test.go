package service

import (
	"context"
	"testing"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// MockChatStore is a mock implementation of chatStore
type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) Insert(ctx context.Context, msg *model.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatStore) FindByPatientID(ctx context.Context, patientID string) ([]model.ChatMessage, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockChatStore) FindRecent(ctx context.Context, patientID string, limit int64) ([]model.ChatMessage, error) {
	args := m.Called(ctx, patientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

// MockCompletionClient is a mock implementation of completionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func TestChatService_Ask_InScopeReply(t *testing.T) {
	store := new(MockChatStore)
	aiClient := new(MockCompletionClient)
	service := NewChatService(store, aiClient, zap.NewNop())

	ctx := context.Background()
	store.On("Insert", ctx, mock.AnythingOfType("*model.ChatMessage")).Return(nil)
	store.On("FindRecent", ctx, "patient-1", int64(historyWindow)).
		Return([]model.ChatMessage{{Role: model.ChatRoleUser, Text: "Can I take a short walk?"}}, nil)
	aiClient.On("Complete", ctx, mock.Anything).
		Return("A short walk is a great way to start. Keep the pace gentle.", nil)

	reply, err := service.Ask(ctx, "patient-1", "Can I take a short walk?")

	assert.NoError(t, err)
	assert.Equal(t, model.ChatRoleAssistant, reply.Role)
	assert.True(t, reply.InScope)
	assert.Contains(t, reply.Text, "short walk")

	// both the question and the reply are persisted
	store.AssertNumberOfCalls(t, "Insert", 2)
}

func TestChatService_Ask_OutOfScopeReplyFlagged(t *testing.T) {
	store := new(MockChatStore)
	aiClient := new(MockCompletionClient)
	service := NewChatService(store, aiClient, zap.NewNop())

	ctx := context.Background()
	store.On("Insert", ctx, mock.AnythingOfType("*model.ChatMessage")).Return(nil)
	store.On("FindRecent", ctx, "patient-1", int64(historyWindow)).
		Return([]model.ChatMessage{}, nil)
	aiClient.On("Complete", ctx, mock.Anything).Return(OutOfScopeReply, nil)

	reply, err := service.Ask(ctx, "patient-1", "What stocks should I buy?")

	assert.NoError(t, err)
	assert.False(t, reply.InScope)
	assert.Equal(t, OutOfScopeReply, reply.Text)
}

func TestChatService_Ask_CompletionFailureStoresFallback(t *testing.T) {
	store := new(MockChatStore)
	aiClient := new(MockCompletionClient)
	service := NewChatService(store, aiClient, zap.NewNop())

	ctx := context.Background()
	store.On("Insert", ctx, mock.AnythingOfType("*model.ChatMessage")).Return(nil)
	store.On("FindRecent", ctx, "patient-1", int64(historyWindow)).Return([]model.ChatMessage{}, nil)
	aiClient.On("Complete", ctx, mock.Anything).Return("", assert.AnError)

	reply, err := service.Ask(ctx, "patient-1", "How much rest do I need?")

	assert.NoError(t, err)
	assert.False(t, reply.InScope)
	assert.Equal(t, fallbackReply, reply.Text)
	store.AssertNumberOfCalls(t, "Insert", 2)
}

func TestChatService_Ask_RejectsEmptyText(t *testing.T) {
	service := NewChatService(new(MockChatStore), new(MockCompletionClient), zap.NewNop())

	reply, err := service.Ask(context.Background(), "patient-1", "   ")

	assert.Error(t, err)
	assert.Nil(t, reply)

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestChatService_History(t *testing.T) {
	store := new(MockChatStore)
	service := NewChatService(store, new(MockCompletionClient), zap.NewNop())

	ctx := context.Background()
	transcript := []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: "hi", OccurredAt: time.Now().Add(-time.Minute)},
		{Role: model.ChatRoleAssistant, Text: "hello", OccurredAt: time.Now()},
	}
	store.On("FindByPatientID", ctx, "patient-1").Return(transcript, nil)

	messages, err := service.History(ctx, "patient-1")

	assert.NoError(t, err)
	assert.Len(t, messages, 2)
}
