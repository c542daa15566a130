package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

func strPtr(s string) *string {
	return &s
}

func TestComposeReport_EmptyInputs(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	report := ComposeReport("patient-1", "Jane Doe", now, 30, nil, nil, nil, nil)

	assert.Equal(t, "patient-1", report.PatientID)
	assert.Equal(t, "Jane Doe", report.PatientName)
	assert.Equal(t, now, report.GeneratedOn)
	assert.Equal(t, now.AddDate(0, 0, -29), report.PeriodStart)
	assert.Equal(t, now, report.PeriodEnd)
	assert.NotEmpty(t, report.ID)

	assert.Equal(t, 0, report.ExerciseSessions)
	assert.Equal(t, 0, report.TotalExerciseMinutes)
	assert.Equal(t, 0, report.ExerciseCompliancePercent)
	assert.Equal(t, 100, report.MedicationAdherencePercent)
	assert.Equal(t, model.MoodTrendNoData, report.MoodTrend)
	assert.Equal(t, "None Reported", report.MostCommonSymptom)
	assert.Equal(t, 0, report.ChatQuestions)
	assert.Equal(t, 0, report.OutOfScopeQuestions)
}

func TestComposeReport_PeriodIsInclusive(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	report := ComposeReport("patient-1", "Jane Doe", now, 7, nil, nil, nil, nil)

	// a seven day report ending June 30 starts June 24, both ends counted
	assert.Equal(t, time.Date(2025, 6, 24, 12, 0, 0, 0, time.UTC), report.PeriodStart)
	assert.Equal(t, now, report.PeriodEnd)
}

func TestComposeReport_ComplianceScalesWithPeriod(t *testing.T) {
	now := time.Now()
	exercise := []model.ExerciseLog{{DurationMinutes: 300}}

	tests := []struct {
		name       string
		periodDays int
		expected   int
	}{
		// 300 minutes against a 150/week target
		{"one week at double target caps", 7, 100},
		{"two weeks exactly on target", 14, 100},
		{"four weeks at half target", 28, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComposeReport("p", "n", now, tt.periodDays, exercise, nil, nil, nil)
			assert.Equal(t, tt.expected, report.ExerciseCompliancePercent)
		})
	}
}

func TestComposeReport_ComplianceRounds(t *testing.T) {
	now := time.Now()
	// 100 of 150 target minutes over one week: 66.67 rounds to 67
	report := ComposeReport("p", "n", now, 7, []model.ExerciseLog{{DurationMinutes: 100}}, nil, nil, nil)
	assert.Equal(t, 67, report.ExerciseCompliancePercent)
}

func TestComposeReport_DoseCounts(t *testing.T) {
	now := time.Now()
	doses := []model.MedicationReminder{
		{Status: model.DoseTaken},
		{Status: model.DoseTaken},
		{Status: model.DoseMissed},
		{Status: model.DosePending},
	}

	report := ComposeReport("p", "n", now, 7, nil, doses, nil, nil)

	assert.Equal(t, 4, report.TotalDoses)
	assert.Equal(t, 2, report.TakenDoses)
	assert.Equal(t, 50, report.MedicationAdherencePercent)
}

func TestComposeReport_MostCommonSymptom(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		journal  []model.JournalEntry
		expected string
	}{
		{
			name:     "no entries",
			journal:  nil,
			expected: "None Reported",
		},
		{
			name: "entries without symptoms",
			journal: []model.JournalEntry{
				{Mood: model.MoodHappy},
				{Mood: model.MoodSad, Symptoms: strPtr("   ")},
			},
			expected: "None Reported",
		},
		{
			name: "case insensitive counting",
			journal: []model.JournalEntry{
				{Symptoms: strPtr("Fatigue, dizziness")},
				{Symptoms: strPtr("fatigue; chest pain")},
				{Symptoms: strPtr("FATIGUE")},
			},
			expected: "Fatigue",
		},
		{
			name: "tie breaks by first appearance",
			journal: []model.JournalEntry{
				{Symptoms: strPtr("fatigue, dizziness")},
				{Symptoms: strPtr("dizziness, fatigue")},
			},
			expected: "Fatigue",
		},
		{
			name: "empty fragments are dropped",
			journal: []model.JournalEntry{
				{Symptoms: strPtr("nausea,, ;")},
			},
			expected: "Nausea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComposeReport("p", "n", now, 7, nil, nil, tt.journal, nil)
			assert.Equal(t, tt.expected, report.MostCommonSymptom)
		})
	}
}

func TestComposeReport_ChatCounts(t *testing.T) {
	now := time.Now()
	chats := []model.ChatMessage{
		{Role: model.ChatRoleUser, InScope: true},
		{Role: model.ChatRoleAssistant, InScope: true},
		{Role: model.ChatRoleUser, InScope: true},
		{Role: model.ChatRoleAssistant, InScope: false},
	}

	report := ComposeReport("p", "n", now, 7, nil, nil, nil, chats)

	assert.Equal(t, 2, report.ChatQuestions)
	assert.Equal(t, 1, report.OutOfScopeQuestions)
}

// MockUserReader is a mock implementation of patientReader
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockChatReader is a mock implementation of chatReader
type MockChatReader struct {
	mock.Mock
}

func (m *MockChatReader) FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.ChatMessage, error) {
	args := m.Called(ctx, patientID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

// MockReportStore is a mock implementation of reportStore
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) Save(ctx context.Context, report *model.PatientReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportStore) FindByID(ctx context.Context, id string) (*model.PatientReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PatientReport), args.Error(1)
}

func (m *MockReportStore) FindByPatientID(ctx context.Context, patientID string) ([]model.PatientReport, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PatientReport), args.Error(1)
}

// MockRenderer is a mock implementation of reportRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Generate(report *model.PatientReport) ([]byte, error) {
	args := m.Called(report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newReportServiceForTest(users *MockUserReader, exercise *MockExerciseReader, doses *MockDoseReader, journal *MockJournalReader, chats *MockChatReader, store *MockReportStore, renderer *MockRenderer) *ReportService {
	return NewReportService(users, exercise, doses, journal, chats, store, renderer, time.UTC, zap.NewNop())
}

func TestReportService_Generate_Success(t *testing.T) {
	users := new(MockUserReader)
	exercise := new(MockExerciseReader)
	doses := new(MockDoseReader)
	journal := new(MockJournalReader)
	chats := new(MockChatReader)
	store := new(MockReportStore)
	renderer := new(MockRenderer)
	service := newReportServiceForTest(users, exercise, doses, journal, chats, store, renderer)

	ctx := context.Background()
	patientID := "patient-1"

	users.On("FindByID", ctx, patientID).Return(&model.User{ID: patientID, FullName: "Jane Doe"}, nil)
	exercise.On("FindByPatientIDSince", ctx, patientID, mock.AnythingOfType("time.Time")).
		Return([]model.ExerciseLog{{DurationMinutes: 150}}, nil)
	doses.On("FindByPatientIDSince", ctx, patientID, mock.AnythingOfType("time.Time")).
		Return([]model.MedicationReminder{{Status: model.DoseTaken}}, nil)
	journal.On("FindByPatientIDSince", ctx, patientID, mock.AnythingOfType("time.Time")).
		Return([]model.JournalEntry{{Mood: model.MoodHappy, Symptoms: strPtr("fatigue")}}, nil)
	chats.On("FindByPatientIDSince", ctx, patientID, mock.AnythingOfType("time.Time")).
		Return([]model.ChatMessage{{Role: model.ChatRoleUser, InScope: true}}, nil)
	store.On("Save", ctx, mock.AnythingOfType("*model.PatientReport")).Return(nil)

	report, err := service.Generate(ctx, patientID, 7)

	assert.NoError(t, err)
	assert.NotNil(t, report)
	assert.Equal(t, "Jane Doe", report.PatientName)
	assert.Equal(t, 150, report.TotalExerciseMinutes)
	assert.Equal(t, 100, report.ExerciseCompliancePercent)
	assert.Equal(t, 100, report.MedicationAdherencePercent)
	assert.Equal(t, "Fatigue", report.MostCommonSymptom)
	assert.Equal(t, 1, report.ChatQuestions)

	store.AssertExpectations(t)
}

func TestReportService_Generate_DefaultsPeriod(t *testing.T) {
	users := new(MockUserReader)
	exercise := new(MockExerciseReader)
	doses := new(MockDoseReader)
	journal := new(MockJournalReader)
	chats := new(MockChatReader)
	store := new(MockReportStore)
	renderer := new(MockRenderer)
	service := newReportServiceForTest(users, exercise, doses, journal, chats, store, renderer)

	ctx := context.Background()
	users.On("FindByID", ctx, "p").Return(&model.User{ID: "p", FullName: "Jane"}, nil)
	exercise.On("FindByPatientIDSince", ctx, "p", mock.AnythingOfType("time.Time")).Return([]model.ExerciseLog{}, nil)
	doses.On("FindByPatientIDSince", ctx, "p", mock.AnythingOfType("time.Time")).Return([]model.MedicationReminder{}, nil)
	journal.On("FindByPatientIDSince", ctx, "p", mock.AnythingOfType("time.Time")).Return([]model.JournalEntry{}, nil)
	chats.On("FindByPatientIDSince", ctx, "p", mock.AnythingOfType("time.Time")).Return([]model.ChatMessage{}, nil)
	store.On("Save", ctx, mock.AnythingOfType("*model.PatientReport")).Return(nil)

	report, err := service.Generate(ctx, "p", 0)

	assert.NoError(t, err)
	// a non-positive period falls back to thirty days
	assert.Equal(t, report.PeriodEnd.AddDate(0, 0, -29), report.PeriodStart)
}

func TestReportService_Generate_PatientLookupFails(t *testing.T) {
	users := new(MockUserReader)
	service := newReportServiceForTest(users, new(MockExerciseReader), new(MockDoseReader), new(MockJournalReader), new(MockChatReader), new(MockReportStore), new(MockRenderer))

	ctx := context.Background()
	users.On("FindByID", ctx, "missing").Return(nil, assert.AnError)

	report, err := service.Generate(ctx, "missing", 7)

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestReportService_RenderPDF(t *testing.T) {
	store := new(MockReportStore)
	renderer := new(MockRenderer)
	service := newReportServiceForTest(new(MockUserReader), new(MockExerciseReader), new(MockDoseReader), new(MockJournalReader), new(MockChatReader), store, renderer)

	ctx := context.Background()
	stored := &model.PatientReport{ID: "report-1", PatientName: "Jane"}
	store.On("FindByID", ctx, "report-1").Return(stored, nil)
	renderer.On("Generate", stored).Return([]byte("%PDF"), nil)

	pdfBytes, err := service.RenderPDF(ctx, "report-1")

	assert.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdfBytes)
	renderer.AssertExpectations(t)
}
