package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// weeklyTargetMinutes is the guideline amount of moderate exercise per week
const weeklyTargetMinutes = 150.0

// noSymptomReported is the symptom placeholder when no journal entry names one
const noSymptomReported = "None Reported"

// ComposeReport builds a provider-facing report from a patient's records
// over the periodDays window ending at now. Exercise compliance scales
// the weekly guideline target linearly with the period length and caps
// at one hundred percent. The most common symptom splits free text on
// commas and semicolons, compares case-insensitively, and breaks ties
// by first appearance.
func ComposeReport(patientID, patientName string, now time.Time, periodDays int, exercise []model.ExerciseLog, doses []model.MedicationReminder, journal []model.JournalEntry, chats []model.ChatMessage) model.PatientReport {
	totalMinutes := 0
	for _, session := range exercise {
		totalMinutes += session.DurationMinutes
	}

	target := weeklyTargetMinutes * float64(periodDays) / 7.0
	compliance := 0
	if target > 0 {
		compliance = int(math.Round(float64(totalMinutes) / target * 100))
		if compliance > 100 {
			compliance = 100
		}
	}

	adherence := 100
	taken := 0
	if len(doses) > 0 {
		for _, dose := range doses {
			if dose.Status == model.DoseTaken {
				taken++
			}
		}
		adherence = int(math.Round(float64(taken) / float64(len(doses)) * 100))
	}

	moodTrend := model.MoodTrendNoData
	if len(journal) > 0 {
		positive := 0
		for _, entry := range journal {
			if entry.Mood.Positive() {
				positive++
			}
		}
		if float64(positive)/float64(len(journal)) > 0.6 {
			moodTrend = model.MoodTrendGood
		} else {
			moodTrend = model.MoodTrendNeedsAttention
		}
	}

	questions := 0
	outOfScope := 0
	for _, msg := range chats {
		if msg.Role == model.ChatRoleUser {
			questions++
		}
		if !msg.InScope {
			outOfScope++
		}
	}

	return model.PatientReport{
		ID:                         uuid.New().String(),
		PatientID:                  patientID,
		PatientName:                patientName,
		GeneratedOn:                now,
		PeriodStart:                now.AddDate(0, 0, -(periodDays - 1)),
		PeriodEnd:                  now,
		ExerciseSessions:           len(exercise),
		TotalExerciseMinutes:       totalMinutes,
		ExerciseCompliancePercent:  compliance,
		TotalDoses:                 len(doses),
		TakenDoses:                 taken,
		MedicationAdherencePercent: adherence,
		JournalEntries:             len(journal),
		MoodTrend:                  moodTrend,
		MostCommonSymptom:          mostCommonSymptom(journal),
		ChatQuestions:              questions,
		OutOfScopeQuestions:        outOfScope,
	}
}

// mostCommonSymptom finds the symptom named most often across journal
// entries. Entries list symptoms as free text separated by commas or
// semicolons; matching ignores case and surrounding whitespace.
func mostCommonSymptom(journal []model.JournalEntry) string {
	counts := make(map[string]int)
	var order []string

	for _, entry := range journal {
		if entry.Symptoms == nil {
			continue
		}
		for _, part := range strings.FieldsFunc(*entry.Symptoms, func(r rune) bool {
			return r == ',' || r == ';'
		}) {
			symptom := strings.ToLower(strings.TrimSpace(part))
			if symptom == "" {
				continue
			}
			if _, seen := counts[symptom]; !seen {
				order = append(order, symptom)
			}
			counts[symptom]++
		}
	}

	if len(order) == 0 {
		return noSymptomReported
	}

	best := order[0]
	for _, symptom := range order[1:] {
		if counts[symptom] > counts[best] {
			best = symptom
		}
	}
	return capitalize(best)
}

// capitalize upper-cases the first letter of a symptom for display
func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// chatReader loads chat messages for report composition
type chatReader interface {
	FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.ChatMessage, error)
}

// patientReader resolves patient accounts for report composition
type patientReader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// reportStore persists and retrieves generated reports
type reportStore interface {
	Save(ctx context.Context, report *model.PatientReport) error
	FindByID(ctx context.Context, id string) (*model.PatientReport, error)
	FindByPatientID(ctx context.Context, patientID string) ([]model.PatientReport, error)
}

// reportRenderer turns a composed report into a downloadable document
type reportRenderer interface {
	Generate(report *model.PatientReport) ([]byte, error)
}

// ReportService generates, persists, and renders patient reports
type ReportService struct {
	users    patientReader
	exercise exerciseReader
	doses    doseReader
	journal  journalReader
	chats    chatReader
	reports  reportStore
	renderer reportRenderer
	loc      *time.Location
	logger   *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(users patientReader, exercise exerciseReader, doses doseReader, journal journalReader, chats chatReader, reports reportStore, renderer reportRenderer, loc *time.Location, logger *zap.Logger) *ReportService {
	return &ReportService{
		users:    users,
		exercise: exercise,
		doses:    doses,
		journal:  journal,
		chats:    chats,
		reports:  reports,
		renderer: renderer,
		loc:      loc,
		logger:   logger,
	}
}

// Generate composes and persists a report over the trailing periodDays
func (s *ReportService) Generate(ctx context.Context, patientID string, periodDays int) (*model.PatientReport, error) {
	if periodDays <= 0 {
		periodDays = 30
	}

	patient, err := s.users.FindByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	now := time.Now().In(s.loc)
	since := now.AddDate(0, 0, -(periodDays - 1))

	exercise, err := s.exercise.FindByPatientIDSince(ctx, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise logs: %w", err)
	}

	doses, err := s.doses.FindByPatientIDSince(ctx, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load medication doses: %w", err)
	}

	journal, err := s.journal.FindByPatientIDSince(ctx, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	chats, err := s.chats.FindByPatientIDSince(ctx, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat messages: %w", err)
	}

	report := ComposeReport(patientID, patient.FullName, now, periodDays, exercise, doses, journal, chats)
	if err := s.reports.Save(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	s.logger.Info("patient report generated",
		zap.String("report_id", report.ID),
		zap.String("patient_id", patientID),
		zap.Int("period_days", periodDays),
		zap.Int("exercise_compliance_percent", report.ExerciseCompliancePercent),
		zap.Int("medication_adherence_percent", report.MedicationAdherencePercent),
	)

	return &report, nil
}

// Get retrieves a previously generated report
func (s *ReportService) Get(ctx context.Context, id string) (*model.PatientReport, error) {
	return s.reports.FindByID(ctx, id)
}

// History lists a patient's past reports, newest first
func (s *ReportService) History(ctx context.Context, patientID string) ([]model.PatientReport, error) {
	return s.reports.FindByPatientID(ctx, patientID)
}

// RenderPDF retrieves a report and renders it as a PDF document
func (s *ReportService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.Generate(report)
}
