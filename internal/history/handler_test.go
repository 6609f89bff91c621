package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"critique-backend/internal/analyses"
)

type stubLister struct {
	records []analyses.Record
	err     error
	userID  string
}

func (s *stubLister) List(_ context.Context, userID string) ([]analyses.Record, error) {
	s.userID = userID
	return s.records, s.err
}

func newHistoryRouter(l Lister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "u1")
		c.Next()
	})
	NewHandler(l, 5).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerReturnsRequestedPage(t *testing.T) {
	lister := &stubLister{records: makeRecords(12)}
	r := newHistoryRouter(lister)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history?page=3&layout=cards", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "u1", lister.userID)

	var v View
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v))
	require.Equal(t, 3, v.Page)
	require.Equal(t, LayoutCards, v.Layout)
	require.Len(t, v.Items, 2)
	require.Equal(t, "r10", v.Items[0].ID)
}

func TestHandlerClampsPastLastPage(t *testing.T) {
	r := newHistoryRouter(&stubLister{records: makeRecords(4)})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history?page=9&pageSize=2&layout=bogus", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var v View
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v))
	require.Equal(t, 2, v.Page)
	require.Equal(t, 2, v.PageSize)
	require.Equal(t, LayoutTable, v.Layout)
}

func TestHandlerListFailure(t *testing.T) {
	r := newHistoryRouter(&stubLister{err: errors.New("db down")})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	require.Equal(t, http.StatusInternalServerError, resp.Code)
}
