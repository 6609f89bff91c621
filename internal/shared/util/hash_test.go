package util

import "testing"

func TestHashUserKey(t *testing.T) {
	id := "0b6f3a51-8c1e-4a8e-9f59-2f1b7a4d8c10"
	got := HashUserKey(id)
	if got != HashUserKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestUserFolderIsPrefixOfHash(t *testing.T) {
	id := "user-1"
	folder := UserFolder(id)
	if len(folder) != userFolderLen {
		t.Fatalf("expected %d chars, got %d", userFolderLen, len(folder))
	}
	if HashUserKey(id)[:userFolderLen] != folder {
		t.Fatalf("folder %s is not a prefix of the user hash", folder)
	}
	if UserFolder("user-2") == folder {
		t.Fatalf("expected distinct folders per user")
	}
}
