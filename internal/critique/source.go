package critique

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"critique-backend/internal/shared/storage/object"
)

// DefaultMaxImageBytes bounds downloaded images.
const DefaultMaxImageBytes = 10 << 20

// ImageSource loads the bytes behind an image reference.
type ImageSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Fetcher resolves http(s) URLs over HTTP and anything else as an object store key.
type Fetcher struct {
	HTTP     *http.Client
	Store    object.ObjectStore
	MaxBytes int64
}

// NewFetcher constructs a Fetcher. store may be nil when only URLs are expected.
func NewFetcher(store object.ObjectStore) *Fetcher {
	return &Fetcher{
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Store:    store,
		MaxBytes: DefaultMaxImageBytes,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.fetchURL(ctx, ref)
	}
	if f.Store == nil {
		return nil, fmt.Errorf("no object store configured for key %q", ref)
	}
	body, err := f.Store.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return f.readLimited(body)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image url returned status %d", resp.StatusCode)
	}
	return f.readLimited(resp.Body)
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxImageBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	return data, nil
}
