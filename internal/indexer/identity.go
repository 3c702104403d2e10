package indexer

import (
	"fmt"

	"github.com/google/uuid"
)

// chunkNamespace is the fixed name-based UUID namespace for chunk IDs.
// Changing it invalidates every previously emitted chunk identity.
var chunkNamespace = uuid.MustParse("8f2f9e6a-41c7-5b7e-9d5a-3a1d2c4b6e80")

// ChunkID derives the deterministic identity of one chunk emission from
// (scope, relative path, chunk index, file digest). The fields are joined
// with NUL separators so a path containing any printable separator cannot
// collide with a different path/index pairing. The result is a name-based
// UUID, which Qdrant accepts as a point ID.
//
// A changed file gets a new digest and therefore a disjoint ID set; its old
// IDs simply stop being emitted and must be deleted explicitly in
// incremental mode. Unchanged content re-upserts onto the same IDs, which
// keeps re-runs idempotent.
func ChunkID(scope, relPath string, index int, digest string) string {
	name := fmt.Sprintf("%s\x00%s\x00%d\x00%s", scope, relPath, index, digest)
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}
