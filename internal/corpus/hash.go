package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"ragsync/internal/contextutil"
)

// Digest computes the content digest over raw bytes. It is used for change
// detection and chunk-identity derivation, not as a security primitive.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// FileDigest hashes the file's raw bytes. Hashing the bytes rather than the
// decoded text keeps an encoding-neutral identity: a re-save that does not
// change bytes does not invalidate chunks.
//
// On read failure it returns "" so the caller can still process the file,
// trading change-detection precision for forward progress.
func FileDigest(ctx context.Context, path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger := contextutil.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "failed to hash file", "path", path, "error", err)
		return ""
	}
	return Digest(raw)
}
