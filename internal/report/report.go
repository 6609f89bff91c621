package report

import (
	"bytes"
	"fmt"
	"time"

	"critique-backend/internal/analyses"
)

// ContentType of the generated document.
const ContentType = "application/pdf"

// Build renders rec as a PDF document.
func Build(rec analyses.Record, generatedAt time.Time) ([]byte, error) {
	canvas := newPDFCanvas(Title)
	Layout(canvas, rec, generatedAt)
	var buf bytes.Buffer
	if err := canvas.output(&buf); err != nil {
		return nil, fmt.Errorf("render report %s: %w", rec.ID, err)
	}
	return buf.Bytes(), nil
}

// FileName is the download name for rec's report.
func FileName(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	if short == "" {
		short = "report"
	}
	return fmt.Sprintf("UI_Analysis_%s.pdf", short)
}
