package analyses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "u1")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerSubmitReturnsNestedResults(t *testing.T) {
	svc, _ := newTestService(&stubInference{resp: InferenceResponse{
		Status:        "success",
		AnalysisID:    "a-1",
		OverallRating: "9/10 - Great",
		ColorPalette:  []string{"#abcdef"},
	}})
	r := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"imageKey":"f/uploads/1_a.png"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	results, ok := body["results"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested results, got %s", resp.Body.String())
	}
	if results["overall_rating"] != "9/10 - Great" {
		t.Fatalf("unexpected results %+v", results)
	}
	if _, flat := body["color_palette"]; flat {
		t.Fatalf("flat fields must not appear at top level")
	}
}

func TestHandlerSubmitInferenceErrorIs502(t *testing.T) {
	svc, _ := newTestService(&stubInference{err: &InferenceError{Status: 500, Message: "model offline"}})
	r := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"imageKey":"k"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "model offline") {
		t.Fatalf("expected upstream message, got %s", resp.Body.String())
	}
}

func TestHandlerSubmitForeignIDIs409(t *testing.T) {
	svc, repo := newTestService(&stubInference{resp: InferenceResponse{Status: "success", AnalysisID: "a-1", OverallRating: "5/10"}})
	_ = repo.Upsert(context.Background(), Record{ID: "a-1", UserID: "u2", CreatedAt: time.Now()})
	r := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"imageKey":"k"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"code":"conflict"`) {
		t.Fatalf("expected conflict envelope, got %s", resp.Body.String())
	}
}

func TestHandlerGetListDelete(t *testing.T) {
	svc, repo := newTestService(&stubInference{})
	_ = repo.Upsert(context.Background(), Record{ID: "a-1", UserID: "u1", CreatedAt: time.Now()})
	r := newTestRouter(t, svc)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/a-1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("get expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))
	if !strings.Contains(resp.Body.String(), `"id":"a-1"`) {
		t.Fatalf("expected record in list, got %s", resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/analyses/a-1", nil))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/analyses/a-1", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", resp.Code)
	}
}
