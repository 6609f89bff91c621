package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"critique-backend/internal/shared/storage/object"
	"critique-backend/internal/shared/telemetry"
	"critique-backend/internal/shared/util"
)

// ErrForbidden is returned when a key lies outside the caller's folder.
var ErrForbidden = errors.New("object does not belong to user")

const uploadsDir = "uploads"

// Service is the object store gateway for user screenshots.
type Service struct {
	Store object.ObjectStore
	Now   func() time.Time
}

func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Upload validates and stores an image under <user folder>/uploads/<unix ms>_<name>.
func (s *Service) Upload(ctx context.Context, userID, fileName string, sizeBytes int64, r io.Reader) (Upload, error) {
	if err := Validate(fileName, sizeBytes); err != nil {
		return Upload{}, err
	}
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: invalid file name", ErrValidation)
	}

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return Upload{}, fmt.Errorf("read upload: %w", readErr)
	}
	contentType, err := contentTypeFor(fileName, http.DetectContentType(sniff[:n]))
	if err != nil {
		return Upload{}, err
	}

	now := s.now().UTC()
	key := path.Join(util.UserFolder(userID), uploadsDir, fmt.Sprintf("%d_%s", now.UnixMilli(), sanitized))
	body := io.LimitReader(io.MultiReader(bytes.NewReader(sniff[:n]), r), MaxUploadBytes+1)

	written, err := s.Store.Put(ctx, key, contentType, body)
	if err != nil {
		telemetry.Error("uploads.put.failed", map[string]any{"user_id": userID, "key": key, "err": err})
		return Upload{}, fmt.Errorf("store upload: %w", err)
	}
	url, err := s.Store.URL(ctx, key)
	if err != nil {
		return Upload{}, fmt.Errorf("public url: %w", err)
	}

	telemetry.Info("uploads.stored", map[string]any{"user_id": userID, "key": key, "size_bytes": written})
	return Upload{
		Key:         key,
		Name:        path.Base(key),
		URL:         url,
		SizeBytes:   written,
		ContentType: contentType,
		CreatedAt:   now,
	}, nil
}

// List returns the caller's uploads, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Upload, error) {
	prefix := path.Join(util.UserFolder(userID), uploadsDir) + "/"
	entries, err := s.Store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	out := make([]Upload, 0, len(entries))
	for _, e := range entries {
		url, err := s.Store.URL(ctx, e.Key)
		if err != nil {
			return nil, fmt.Errorf("public url: %w", err)
		}
		out = append(out, Upload{
			Key:       e.Key,
			Name:      e.Name,
			URL:       url,
			SizeBytes: e.SizeBytes,
			CreatedAt: e.LastModified,
		})
	}
	return out, nil
}

// PublicURL returns the URL an object is readable at.
func (s *Service) PublicURL(ctx context.Context, key string) (string, error) {
	return s.Store.URL(ctx, key)
}

// OwnedURL is PublicURL restricted to keys inside userID's folder.
func (s *Service) OwnedURL(ctx context.Context, userID, key string) (string, error) {
	if !OwnsKey(userID, key) {
		return "", ErrForbidden
	}
	return s.PublicURL(ctx, key)
}

// OwnsKey reports whether key lives in userID's folder.
func OwnsKey(userID, key string) bool {
	clean := path.Clean("/" + key)
	return strings.HasPrefix(clean, "/"+util.UserFolder(userID)+"/")
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
