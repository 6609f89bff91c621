package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that are empty or try to escape a folder.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators, control characters and whitespace runs,
// and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	prevUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			if !prevUnderscore {
				b.WriteByte('_')
			}
			prevUnderscore = true
			continue
		case unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
		prevUnderscore = r == '_'
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
