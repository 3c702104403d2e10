package indexer

import "strings"

const (
	// DefaultChunkSize targets roughly one embedding context worth of text.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is carried between consecutive chunks so context
	// survives the boundary for retrieval.
	DefaultChunkOverlap = 200
)

// Chunker splits text into overlapping, sentence-boundary-aware segments of
// bounded size. Chunking is pure: the same input always yields the same
// sequence.
type Chunker struct {
	maxSize int
	overlap int
}

// NewChunker creates a Chunker. Non-positive size or negative overlap fall
// back to the defaults; overlap is clamped below size.
func NewChunker(maxSize, overlap int) *Chunker {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= maxSize {
		overlap = maxSize / 2
	}
	return &Chunker{maxSize: maxSize, overlap: overlap}
}

// Chunk splits text into an ordered sequence of chunk texts. Text at most
// maxSize long is returned as a single trimmed chunk. Longer text is scanned
// in windows of maxSize; each window end snaps back to the last period found
// strictly past the window's midpoint, keeping the backward scan cheap while
// favoring sentence boundaries over a hard cut. The next window starts
// overlap runes before the previous end, except after the final window.
//
// Sizes are measured in runes so multi-byte text does not split mid-rune.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(text)

	if len(runes) <= c.maxSize {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + c.maxSize
		if end > len(runes) {
			end = len(runes)
		}

		// Snap to a sentence boundary only when it falls past the midpoint;
		// earlier periods would produce runt chunks and a costly scan.
		if end < len(runes) {
			mid := start + c.maxSize/2
			for i := end - 1; i > mid; i-- {
				if runes[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		// The window must advance even when overlap reaches back past the
		// snapped boundary, otherwise chunking never terminates.
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
