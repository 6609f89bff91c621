package util

import (
	"crypto/sha256"
	"encoding/hex"
)

const userFolderLen = 32

// HashUserKey returns a filesystem-safe identifier for a user ID.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// UserFolder is the object-store folder that holds one user's objects.
func UserFolder(userID string) string {
	return HashUserKey(userID)[:userFolderLen]
}
