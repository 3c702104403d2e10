package indexer

// ChunkRecord is one chunk ready for synchronization: its deterministic ID,
// the text payload to embed, and the metadata attached to the stored point.
type ChunkRecord struct {
	ID   string
	Text string
	Meta map[string]any
}
