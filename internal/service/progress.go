package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// dayCodes label the seven slots of a weekly breakdown, Monday first
var dayCodes = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// mondayIndex maps a weekday to its slot in a Monday-first week
func mondayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// ComputeWeeklySummary aggregates one week of patient activity into a
// summary. Exercise minutes bucket into seven day slots by the session's
// weekday in loc. Adherence is the share of doses marked taken, rounded
// half up; a week with no scheduled doses reports full adherence. The
// mood trend is favorable only when strictly more than sixty percent of
// journal entries carry a positive mood.
func ComputeWeeklySummary(exercise []model.ExerciseLog, doses []model.MedicationReminder, journal []model.JournalEntry, windowLabel string, loc *time.Location) model.WeeklySummary {
	perDay := make([]model.DayMinutes, 7)
	for i := range perDay {
		perDay[i] = model.DayMinutes{Day: dayCodes[i]}
	}

	total := 0
	for _, session := range exercise {
		idx := mondayIndex(session.OccurredAt.In(loc).Weekday())
		perDay[idx].Minutes += session.DurationMinutes
		total += session.DurationMinutes
	}

	adherence := 100
	if len(doses) > 0 {
		taken := 0
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

	return model.WeeklySummary{
		WindowLabel:          windowLabel,
		TotalExerciseMinutes: total,
		AdherenceRatePercent: adherence,
		MoodTrend:            moodTrend,
		PerDayMinutes:        perDay,
	}
}

// exerciseReader loads exercise logs for aggregation
type exerciseReader interface {
	FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.ExerciseLog, error)
}

// doseReader loads medication doses for aggregation
type doseReader interface {
	FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.MedicationReminder, error)
}

// journalReader loads journal entries for aggregation
type journalReader interface {
	FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.JournalEntry, error)
}

// ProgressService produces weekly activity summaries
type ProgressService struct {
	exercise exerciseReader
	doses    doseReader
	journal  journalReader
	loc      *time.Location
	logger   *zap.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(exercise exerciseReader, doses doseReader, journal journalReader, loc *time.Location, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		exercise: exercise,
		doses:    doses,
		journal:  journal,
		loc:      loc,
		logger:   logger,
	}
}

// WeeklySummary aggregates the trailing seven days of a patient's activity
func (s *ProgressService) WeeklySummary(ctx context.Context, patientID string) (*model.WeeklySummary, error) {
	now := time.Now().In(s.loc)
	since := now.AddDate(0, 0, -7)

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

	label := fmt.Sprintf("%s - %s", since.Format("Jan 2"), now.Format("Jan 2"))
	summary := ComputeWeeklySummary(exercise, doses, journal, label, s.loc)

	s.logger.Info("weekly summary computed",
		zap.String("patient_id", patientID),
		zap.Int("total_exercise_minutes", summary.TotalExerciseMinutes),
		zap.Int("adherence_rate_percent", summary.AdherenceRatePercent),
		zap.String("mood_trend", summary.MoodTrend),
	)

	return &summary, nil
}
