package object

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("object not found")

// Entry describes one stored object returned by List.
type Entry struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	SizeBytes    int64     `json:"sizeBytes"`
	LastModified time.Time `json:"lastModified"`
}

// ObjectStore defines the contract for saving, listing and retrieving binary objects
// inside a single bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Entry, error)
	URL(ctx context.Context, key string) (string, error)
}
