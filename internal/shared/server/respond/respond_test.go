package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"critique-backend/internal/shared/telemetry"
)

func run(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(KeyRequestID, "req-1")
		c.Set(KeyAnalysisID, "a-1")
		h(c)
	})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))
	return resp
}

func TestItemsSendsEmptyListForNil(t *testing.T) {
	resp := run(t, func(c *gin.Context) { Items[string](c, nil) })
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != `{"items":[]}` {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}
}

func TestAttachmentQuotesFileName(t *testing.T) {
	resp := run(t, func(c *gin.Context) {
		Attachment(c, "application/pdf", "UI_\"Analysis\".pdf\r\n", []byte("%PDF"))
	})
	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="UI_Analysis.pdf"` {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	if resp.Header().Get("Content-Type") != "application/pdf" || resp.Body.String() != "%PDF" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestErrorEnvelopeAndLogLevel(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusNotFound, "warn"},
		{http.StatusBadGateway, "error"},
	}
	for _, tt := range tests {
		var logs bytes.Buffer
		restore := telemetry.SetOutput(&logs)
		resp := run(t, func(c *gin.Context) {
			Error(c, tt.status, "some_code", "something happened", nil)
		})
		restore()

		if resp.Code != tt.status {
			t.Fatalf("expected %d, got %d", tt.status, resp.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error.Code != "some_code" || body.Error.Message != "something happened" || body.Error.RequestID != "req-1" {
			t.Fatalf("unexpected envelope %+v", body)
		}

		var entry map[string]any
		if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", logs.String(), err)
		}
		if entry["level"] != tt.level || entry["request_id"] != "req-1" || entry["analysis_id"] != "a-1" {
			t.Fatalf("unexpected log entry %v", entry)
		}
	}
}
