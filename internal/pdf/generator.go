package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// PDFGenerator renders patient reports as printable documents
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// Generate creates a PDF from a composed patient report
func (g *PDFGenerator) Generate(report *model.PatientReport) ([]byte, error) {
	g.logger.Info("generating PDF report",
		zap.String("report_id", report.ID),
		zap.String("patient_name", report.PatientName),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, report)
	g.addExerciseSection(pdf, report)
	g.addMedicationSection(pdf, report)
	g.addWellbeingSection(pdf, report)
	g.addChatSection(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, report *model.PatientReport) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Cardiac Rehabilitation Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Patient: %s", report.PatientName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s to %s",
		report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", report.GeneratedOn.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addExerciseSection adds exercise activity and compliance
func (g *PDFGenerator) addExerciseSection(pdf *gofpdf.Fpdf, report *model.PatientReport) {
	g.addSectionHeader(pdf, "Exercise Activity")

	if report.ExerciseSessions == 0 {
		pdf.CellFormat(0, 8, "No exercise sessions recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.CellFormat(0, 6, fmt.Sprintf("Sessions completed: %d", report.ExerciseSessions), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total active minutes: %d", report.TotalExerciseMinutes), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Guideline compliance: %d%%", report.ExerciseCompliancePercent), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addMedicationSection adds medication adherence
func (g *PDFGenerator) addMedicationSection(pdf *gofpdf.Fpdf, report *model.PatientReport) {
	g.addSectionHeader(pdf, "Medication Adherence")

	pdf.CellFormat(0, 6, fmt.Sprintf("Doses scheduled: %d", report.TotalDoses), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Doses taken: %d", report.TakenDoses), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Adherence: %d%%", report.MedicationAdherencePercent), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addWellbeingSection adds mood and symptoms
func (g *PDFGenerator) addWellbeingSection(pdf *gofpdf.Fpdf, report *model.PatientReport) {
	g.addSectionHeader(pdf, "Wellbeing")

	pdf.CellFormat(0, 6, fmt.Sprintf("Journal entries: %d", report.JournalEntries), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Mood trend: %s", report.MoodTrend), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Most common symptom: %s", report.MostCommonSymptom), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addChatSection adds assistant usage
func (g *PDFGenerator) addChatSection(pdf *gofpdf.Fpdf, report *model.PatientReport) {
	g.addSectionHeader(pdf, "Assistant Usage")

	if report.ChatQuestions == 0 {
		pdf.CellFormat(0, 8, "No assistant questions asked during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.CellFormat(0, 6, fmt.Sprintf("Questions asked: %d", report.ChatQuestions), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Out of scope questions: %d", report.OutOfScopeQuestions), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}
