package critique

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"critique-backend/internal/llm"
)

func newCritiqueRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandlerMissingParameters(t *testing.T) {
	r := newCritiqueRouter(NewService(&stubSource{}, &stubLLM{}))
	for _, body := range []string{`{}`, `{"image_url":"x"}`, `{"image_url":" ","user_id":"u1"}`} {
		resp := post(r, body)
		require.Equal(t, http.StatusBadRequest, resp.Code, body)
		require.JSONEq(t, `{"error":"Missing required parameters"}`, resp.Body.String())
	}
}

func TestHandlerMalformedBody(t *testing.T) {
	r := newCritiqueRouter(NewService(&stubSource{}, &stubLLM{}))
	for _, body := range []string{`not json`, `{"image_url":`, ``} {
		resp := post(r, body)
		require.Equal(t, http.StatusBadRequest, resp.Code, body)
		require.JSONEq(t, `{"error":"Invalid request body"}`, resp.Body.String())
	}
}

func TestHandlerSuccess(t *testing.T) {
	svc := NewService(&stubSource{data: pngBytes(t)}, &stubLLM{reply: reply})
	svc.NewID = func() string { return "a-9" }
	resp := post(newCritiqueRouter(svc), `{"image_url":"http://files/a.png","user_id":"u1"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "success", body["status"])
	require.Equal(t, "a-9", body["analysis_id"])
	require.Equal(t, "7/10 - Solid", body["overall_rating"])
	require.Contains(t, body, "ui_score")
	require.Contains(t, body, "elements")
}

func TestHandlerModelFailureIs500(t *testing.T) {
	resp := post(newCritiqueRouter(NewService(&stubSource{data: pngBytes(t)}, llm.PlaceholderClient{})), `{"image_url":"k","user_id":"u1"}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.JSONEq(t, `{"status":"error","message":"LLM provider not configured"}`, resp.Body.String())
}

func TestHandlerDownloadFailureIs400(t *testing.T) {
	resp := post(newCritiqueRouter(NewService(&stubSource{err: errAssert("gone")}, &stubLLM{})), `{"image_url":"k","user_id":"u1"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.JSONEq(t, `{"error":"Download failed: gone"}`, resp.Body.String())
}

type errAssert string

func (e errAssert) Error() string { return string(e) }
