package uploads

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest accepted image.
const MaxUploadBytes = 5 << 20

var ErrValidation = errors.New("validation error")

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// Validate rejects missing, oversized and non-image files before any store call.
func Validate(fileName string, sizeBytes int64) error {
	name := strings.TrimSpace(fileName)
	if name == "" {
		return fmt.Errorf("%w: please select an image to upload", ErrValidation)
	}
	if sizeBytes <= 0 {
		return fmt.Errorf("%w: the selected file is empty", ErrValidation)
	}
	if sizeBytes > MaxUploadBytes {
		return fmt.Errorf("%w: file is larger than 5 MB", ErrValidation)
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return fmt.Errorf("%w: only PNG, JPEG and WebP images are allowed", ErrValidation)
	}
	return nil
}

// contentTypeFor picks the content type from the sniffed bytes, falling back to the extension.
func contentTypeFor(fileName, sniffed string) (string, error) {
	expected := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
	switch sniffed {
	case "image/png", "image/jpeg", "image/webp":
		return sniffed, nil
	case "application/octet-stream":
		return expected, nil
	default:
		return "", fmt.Errorf("%w: file content is not a supported image", ErrValidation)
	}
}
