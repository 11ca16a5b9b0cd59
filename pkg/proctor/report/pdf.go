package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/pkg/proctor/scoring"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer renders the downloadable integrity report.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for a session and its events.
func (r *PDFRenderer) Render(session *entity.ExamSession, events []*entity.DetectionEvent) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Interview Integrity Report %s", session.SessionId), false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Interview Integrity Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Session %s", session.SessionId), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Candidate block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Candidate", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	r.keyValue(pdf, "Name", session.CandidateName)
	r.keyValue(pdf, "Email", session.CandidateEmail)
	r.keyValue(pdf, "Started", session.StartedAt.Format(time.RFC1123))
	if session.EndedAt != nil {
		r.keyValue(pdf, "Ended", session.EndedAt.Format(time.RFC1123))
		r.keyValue(pdf, "Duration", fmt.Sprintf("%d minutes", session.DurationMinutes))
	} else {
		r.keyValue(pdf, "Ended", "in progress")
	}
	pdf.Ln(4)

	// Score block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Integrity Score", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 24)
	r.setScoreColor(pdf, session.IntegrityScore)
	pdf.CellFormat(0, 14, fmt.Sprintf("%d / 100", session.IntegrityScore), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	// Counter table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Violations", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 7, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Count", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Weight", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Deduction", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, category := range constant.Categories {
		count := session.Counters.ByCategory(category)
		weight := scoring.Weights[category]
		pdf.CellFormat(80, 7, categoryLabel(category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", weight), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", count*weight), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// Event log grouped by category, insertion order preserved
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Detection Log", "", 1, "L", false, 0, "")
	if len(events) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 7, "No detection events recorded.", "", 1, "L", false, 0, "")
	} else {
		r.renderEventLog(pdf, events)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderEventLog(pdf *fpdf.Fpdf, events []*entity.DetectionEvent) {
	grouped := make(map[string][]*entity.DetectionEvent)
	var order []string
	for _, e := range events {
		if _, seen := grouped[e.EventType]; !seen {
			order = append(order, e.EventType)
		}
		grouped[e.EventType] = append(grouped[e.EventType], e)
	}

	for _, category := range order {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s (%d)", categoryLabel(category), len(grouped[category])), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, e := range grouped[category] {
			line := fmt.Sprintf("%s  %s", e.DetectedAt.Format("15:04:05"), e.Description)
			if e.ConfidenceScore != nil {
				line += fmt.Sprintf(" (confidence %.2f)", *e.ConfidenceScore)
			}
			if e.DurationSeconds > 0 {
				line += fmt.Sprintf(" [%ds]", e.DurationSeconds)
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(2)
	}
}

func (r *PDFRenderer) keyValue(pdf *fpdf.Fpdf, key, value string) {
	pdf.CellFormat(35, 6, key+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (r *PDFRenderer) setScoreColor(pdf *fpdf.Fpdf, score int) {
	switch {
	case score >= 80:
		pdf.SetTextColor(46, 125, 50) // green
	case score >= 50:
		pdf.SetTextColor(230, 145, 20) // amber
	default:
		pdf.SetTextColor(198, 40, 40) // red
	}
}

func categoryLabel(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
