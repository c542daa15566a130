package model

import "time"

// Role identifies what kind of account a user holds
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the closed set
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system
type User struct {
	ID                     string    `json:"id" bson:"_id"`
	FullName               string    `json:"full_name" bson:"fullName"`
	Email                  string    `json:"email" bson:"email"`
	PasswordHash           string    `json:"-" bson:"passwordHash"`
	Role                   Role      `json:"role" bson:"role"`
	Specialization         *string   `json:"specialization,omitempty" bson:"specialization,omitempty"`
	MedicalHistory         *string   `json:"medical_history,omitempty" bson:"medicalHistory,omitempty"`
	Allergies              *string   `json:"allergies,omitempty" bson:"allergies,omitempty"`
	EmergencyContactName   *string   `json:"emergency_contact_name,omitempty" bson:"emergencyContactName,omitempty"`
	EmergencyContactNumber *string   `json:"emergency_contact_number,omitempty" bson:"emergencyContactNumber,omitempty"`
	Active                 bool      `json:"active" bson:"active"`
	CreatedAt              time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt              time.Time `json:"updated_at" bson:"updatedAt"`
}

// Intensity is the reported effort level of an exercise session
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// ExerciseLog represents one logged exercise session
type ExerciseLog struct {
	ID              string    `json:"id" bson:"_id"`
	PatientID       string    `json:"patient_id" bson:"patientId"`
	ExerciseType    string    `json:"exercise_type" bson:"exerciseType"`
	DurationMinutes int       `json:"duration_minutes" bson:"durationMinutes"`
	Intensity       Intensity `json:"intensity" bson:"intensity"`
	Notes           *string   `json:"notes,omitempty" bson:"notes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at" bson:"occurredAt"`
}

// DoseStatus tracks whether a scheduled medication dose was taken
type DoseStatus string

const (
	DosePending DoseStatus = "Pending"
	DoseTaken   DoseStatus = "Taken"
	DoseMissed  DoseStatus = "Missed"
)

func (s DoseStatus) Valid() bool {
	switch s {
	case DosePending, DoseTaken, DoseMissed:
		return true
	}
	return false
}

// MedicationReminder represents one scheduled dose of a prescribed medication
type MedicationReminder struct {
	ID             string     `json:"id" bson:"_id"`
	PatientID      string     `json:"patient_id" bson:"patientId"`
	MedicationName string     `json:"medication_name" bson:"medicationName"`
	Dosage         string     `json:"dosage" bson:"dosage"`
	Frequency      string     `json:"frequency" bson:"frequency"`
	TimeOfDay      string     `json:"time_of_day" bson:"timeOfDay"`
	Status         DoseStatus `json:"status" bson:"status"`
	OccurredAt     time.Time  `json:"occurred_at" bson:"occurredAt"`
}

// Mood is the patient's self-reported mood for a journal entry
type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodNeutral  Mood = "Neutral"
	MoodTired    Mood = "Tired"
	MoodAnxious  Mood = "Anxious"
	MoodStressed Mood = "Stressed"
	MoodSad      Mood = "Sad"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodNeutral, MoodTired, MoodAnxious, MoodStressed, MoodSad:
		return true
	}
	return false
}

// Positive reports whether the mood counts toward a favorable trend
func (m Mood) Positive() bool {
	return m == MoodHappy || m == MoodNeutral
}

// JournalEntry represents a mood and symptom journal entry.
// Symptoms is free text, delimited by commas or semicolons.
type JournalEntry struct {
	ID         string    `json:"id" bson:"_id"`
	PatientID  string    `json:"patient_id" bson:"patientId"`
	Mood       Mood      `json:"mood" bson:"mood"`
	Symptoms   *string   `json:"symptoms,omitempty" bson:"symptoms,omitempty"`
	DietNotes  *string   `json:"diet_notes,omitempty" bson:"dietNotes,omitempty"`
	Notes      string    `json:"notes" bson:"notes"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurredAt"`
}

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// AppointmentMode distinguishes virtual from in-person visits
type AppointmentMode string

const (
	ModeVirtual  AppointmentMode = "virtual"
	ModeInPerson AppointmentMode = "in-person"
)

func (m AppointmentMode) Valid() bool {
	return m == ModeVirtual || m == ModeInPerson
}

// Appointment represents a visit between a patient and a provider
type Appointment struct {
	ID           string            `json:"id" bson:"_id"`
	PatientID    string            `json:"patient_id" bson:"patientId"`
	ProviderID   string            `json:"provider_id" bson:"providerId"`
	ProviderName string            `json:"provider_name" bson:"providerName"`
	ScheduledAt  time.Time         `json:"scheduled_at" bson:"scheduledAt"`
	Mode         AppointmentMode   `json:"mode" bson:"mode"`
	Status       AppointmentStatus `json:"status" bson:"status"`
	Notes        *string           `json:"notes,omitempty" bson:"notes,omitempty"`
}

// ChatRole identifies who authored a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage represents one message in a patient's chatbot conversation.
// InScope is false when the assistant declined the query as outside its
// permitted advisory domain.
type ChatMessage struct {
	ID         string    `json:"id" bson:"_id"`
	PatientID  string    `json:"patient_id" bson:"patientId"`
	Role       ChatRole  `json:"role" bson:"role"`
	Text       string    `json:"text" bson:"text"`
	InScope    bool      `json:"in_scope" bson:"inScope"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurredAt"`
}

// DayMinutes is one slot of a per-day exercise breakdown
type DayMinutes struct {
	Day     string `json:"day" bson:"day"`
	Minutes int    `json:"minutes" bson:"minutes"`
}

// WeeklySummary is the aggregated view of a patient's week.
// PerDayMinutes always holds exactly seven entries, Monday through Sunday.
type WeeklySummary struct {
	WindowLabel          string       `json:"window_label" bson:"windowLabel"`
	TotalExerciseMinutes int          `json:"total_exercise_minutes" bson:"totalExerciseMinutes"`
	AdherenceRatePercent int          `json:"adherence_rate_percent" bson:"adherenceRatePercent"`
	MoodTrend            string       `json:"mood_trend" bson:"moodTrend"`
	PerDayMinutes        []DayMinutes `json:"per_day_minutes" bson:"perDayMinutes"`
}

// Mood trend classifications produced by the weekly aggregator
const (
	MoodTrendGood           = "Good"
	MoodTrendNeedsAttention = "Needs Attention"
	MoodTrendNoData         = "No data"
)

// PatientReport is a provider-facing summary of a patient over a date range.
// Percentage fields are integers in [0,100]; period bounds are inclusive.
type PatientReport struct {
	ID                         string    `json:"id" bson:"_id"`
	PatientID                  string    `json:"patient_id" bson:"patientId"`
	PatientName                string    `json:"patient_name" bson:"patientName"`
	GeneratedOn                time.Time `json:"generated_on" bson:"generatedOn"`
	PeriodStart                time.Time `json:"period_start" bson:"periodStart"`
	PeriodEnd                  time.Time `json:"period_end" bson:"periodEnd"`
	ExerciseSessions           int       `json:"exercise_sessions" bson:"exerciseSessions"`
	TotalExerciseMinutes       int       `json:"total_exercise_minutes" bson:"totalExerciseMinutes"`
	ExerciseCompliancePercent  int       `json:"exercise_compliance_percent" bson:"exerciseCompliancePercent"`
	TotalDoses                 int       `json:"total_doses" bson:"totalDoses"`
	TakenDoses                 int       `json:"taken_doses" bson:"takenDoses"`
	MedicationAdherencePercent int       `json:"medication_adherence_percent" bson:"medicationAdherencePercent"`
	JournalEntries             int       `json:"journal_entries" bson:"journalEntries"`
	MoodTrend                  string    `json:"mood_trend" bson:"moodTrend"`
	MostCommonSymptom          string    `json:"most_common_symptom" bson:"mostCommonSymptom"`
	ChatQuestions              int       `json:"chat_questions" bson:"chatQuestions"`
	OutOfScopeQuestions        int       `json:"out_of_scope_questions" bson:"outOfScopeQuestions"`
}
