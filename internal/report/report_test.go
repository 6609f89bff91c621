package report

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/require"

	"critique-backend/internal/analyses"
)

func TestBuildProducesReadablePDF(t *testing.T) {
	data, err := Build(analyses.Record{
		ID: "1234567890",
		Result: &analyses.Result{
			OverallRating: "8/10 - Clean layout",
			ColorCritique: "Good contrast.",
			OtherFeedback: "Align the buttons.",
		},
	}, generatedAt)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF-"))

	text, err := plainText(data)
	require.NoError(t, err)
	require.Contains(t, text, Title)
	require.Contains(t, text, NoPalette)
	require.Contains(t, text, "Align the buttons.")
}

func TestBuildLongFeedbackSpansPages(t *testing.T) {
	data, err := Build(analyses.Record{
		ID:     "long",
		Result: &analyses.Result{OtherFeedback: strings.Repeat("The spacing between cards is uneven. ", 400)},
	}, generatedAt)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "UI_Analysis_12345678.pdf", FileName("1234567890"))
	require.Equal(t, "UI_Analysis_abc.pdf", FileName("abc"))
	require.Equal(t, "UI_Analysis_report.pdf", FileName(""))
}

// plainText extracts the text layer of a PDF document.
func plainText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
