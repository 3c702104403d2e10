package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks ragsync/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// Stats summarizes a collection for run reports and the stats endpoint.
type Stats struct {
	PointsCount int    `json:"points_count"`
	VectorSize  int    `json:"vector_size"`
	Status      string `json:"status"`
}

// VectorStore is the sync backend contract: upsert, delete, stats. Deletes
// by ID are idempotent; deleting an absent ID is not an error. DeletePath
// removes every point for one source file regardless of its content digest,
// which is what keeps removals possible after the file's chunk IDs have
// rotated with a new digest.
type VectorStore interface {
	Upsert(ctx context.Context, collection string, points []Point) error
	Delete(ctx context.Context, collection string, ids []string) error
	DeletePath(ctx context.Context, collection, scope, relPath string) error
	CollectionExists(ctx context.Context, collection string) (bool, error)
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
	CollectionStats(ctx context.Context, collection string) (*Stats, error)
	Clear(ctx context.Context, collection string) error
}
