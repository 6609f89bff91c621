package critique

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"critique-backend/internal/shared/storage/object/local"
)

func TestFetcherHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("img"))
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	data, err := f.Fetch(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	require.Equal(t, []byte("img"), data)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.ErrorContains(t, err, "status 404")
}

func TestFetcherObjectStoreKey(t *testing.T) {
	store := local.New(t.TempDir(), "http://localhost")
	_, err := store.Put(context.Background(), "u/uploads/1_a.png", "image/png", strings.NewReader("pngdata"))
	require.NoError(t, err)

	f := NewFetcher(store)
	data, err := f.Fetch(context.Background(), "u/uploads/1_a.png")
	require.NoError(t, err)
	require.Equal(t, []byte("pngdata"), data)

	_, err = NewFetcher(nil).Fetch(context.Background(), "u/uploads/1_a.png")
	require.Error(t, err)
}

func TestFetcherSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 20)))
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	f.MaxBytes = 10
	_, err := f.Fetch(context.Background(), srv.URL)
	require.ErrorContains(t, err, "exceeds")
}
