package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDigest(t *testing.T) {
	a := Digest([]byte("content"))
	b := Digest([]byte("content"))
	c := Digest([]byte("different"))

	if a != b {
		t.Errorf("Digest() not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Error("Digest() collided for different content")
	}
	if len(a) != 64 {
		t.Errorf("Digest() length = %d, want 64 hex chars", len(a))
	}
}

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got := FileDigest(context.Background(), path)
	if got != Digest([]byte("content")) {
		t.Errorf("FileDigest() = %q, want digest of file bytes", got)
	}
}

func TestFileDigest_UnreadableFileReturnsEmpty(t *testing.T) {
	got := FileDigest(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	if got != "" {
		t.Errorf("FileDigest() on missing file = %q, want empty sentinel", got)
	}
}
