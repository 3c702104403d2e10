package indexer

import (
	"strings"
	"testing"
)

func TestChunker_SmallInputSingleChunk(t *testing.T) {
	chunker := NewChunker(1000, 200)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "short text",
			text: "hello world",
			want: []string{"hello world"},
		},
		{
			name: "exactly max size",
			text: strings.Repeat("a", 1000),
			want: []string{strings.Repeat("a", 1000)},
		},
		{
			name: "trims surrounding whitespace",
			text: "  padded text \n",
			want: []string{"padded text"},
		},
		{
			name: "whitespace only",
			text: "   \n\t ",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunker.Chunk(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Chunk() returned %d chunks, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Chunk()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunker_PeriodFreeTextAdvanceRule(t *testing.T) {
	// 2500 chars without periods: windows cut at the raw max size and the
	// next window reaches back by the overlap, except after the last one.
	chunker := NewChunker(1000, 200)
	text := strings.Repeat("a", 2500)

	chunks := chunker.Chunk(text)

	wantLens := []int{1000, 1000, 900}
	if len(chunks) != len(wantLens) {
		t.Fatalf("Chunk() returned %d chunks, want %d", len(chunks), len(wantLens))
	}
	for i, want := range wantLens {
		if len(chunks[i]) != want {
			t.Errorf("Chunk()[%d] length = %d, want %d", i, len(chunks[i]), want)
		}
	}
}

func TestChunker_Idempotent(t *testing.T) {
	chunker := NewChunker(100, 20)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)

	first := chunker.Chunk(text)
	second := chunker.Chunk(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ across runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs across runs", i)
		}
	}
}

func TestChunker_SentenceBoundarySnap(t *testing.T) {
	chunker := NewChunker(100, 20)

	// Period at position 79: past the midpoint (50), so the first window
	// should end just after it.
	text := strings.Repeat("a", 79) + "." + strings.Repeat("b", 100)
	chunks := chunker.Chunk(text)

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("Chunk()[0] = %q, want it to end at the sentence boundary", chunks[0])
	}
	if len(chunks[0]) != 80 {
		t.Errorf("Chunk()[0] length = %d, want 80", len(chunks[0]))
	}
}

func TestChunker_BoundaryBeforeMidpointIgnored(t *testing.T) {
	chunker := NewChunker(100, 20)

	// The only period sits before the midpoint; a snap there would produce
	// runt chunks, so the raw cutoff wins.
	text := strings.Repeat("a", 20) + "." + strings.Repeat("b", 200)
	chunks := chunker.Chunk(text)

	if len(chunks) == 0 {
		t.Fatal("Chunk() returned no chunks")
	}
	if len(chunks[0]) != 100 {
		t.Errorf("Chunk()[0] length = %d, want raw cutoff 100", len(chunks[0]))
	}
}

func TestChunker_OverlapBound(t *testing.T) {
	// Distinct runes make the measured suffix/prefix match equal the true
	// overlap; repetitive text would overestimate it.
	chunker := NewChunker(100, 20)
	text := distinctRunes(500)

	chunks := chunker.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want at least 2", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		shared := sharedOverlap(chunks[i-1], chunks[i])
		if shared > 20 {
			t.Errorf("overlap between chunks %d and %d = %d runes, want <= 20", i-1, i, shared)
		}
	}
}

func TestChunker_Termination(t *testing.T) {
	// Adversarial inputs must never stall the window advance.
	tests := []struct {
		name    string
		maxSize int
		overlap int
		text    string
	}{
		{
			name:    "period free 10x max size",
			maxSize: 1000,
			overlap: 200,
			text:    strings.Repeat("x", 10000),
		},
		{
			name:    "all periods",
			maxSize: 100,
			overlap: 20,
			text:    strings.Repeat(".", 1000),
		},
		{
			name:    "overlap reaching past snapped boundary",
			maxSize: 100,
			overlap: 49,
			text:    strings.Repeat(strings.Repeat("a", 51)+".", 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunker := NewChunker(tt.maxSize, tt.overlap)

			done := make(chan []string, 1)
			go func() {
				done <- chunker.Chunk(tt.text)
			}()

			chunks := <-done
			if len(chunks) == 0 {
				t.Fatal("Chunk() returned no chunks")
			}
			// Bounded steps: never more chunks than characters.
			if len(chunks) > len(tt.text) {
				t.Errorf("Chunk() returned %d chunks for %d chars", len(chunks), len(tt.text))
			}
		})
	}
}

func TestChunker_Coverage(t *testing.T) {
	// Every rune outside overlap regions must appear, in order, in the chunk
	// sequence: with distinct runes the original text is reconstructible by
	// merging consecutive chunks on their shared overlap.
	chunker := NewChunker(100, 20)
	text := distinctRunes(500)

	chunks := chunker.Chunk(text)
	if len(chunks) == 0 {
		t.Fatal("Chunk() returned no chunks")
	}

	reconstructed := []rune(chunks[0])
	for i := 1; i < len(chunks); i++ {
		next := []rune(chunks[i])
		shared := sharedOverlap(string(reconstructed), chunks[i])
		reconstructed = append(reconstructed, next[shared:]...)
	}

	if string(reconstructed) != text {
		t.Errorf("reconstructed text has %d runes, want %d", len(reconstructed), len([]rune(text)))
	}
}

// distinctRunes builds a text of n distinct non-period runes so suffix/prefix
// matches can only occur at the true overlap.
func distinctRunes(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = rune(0x4E00 + i)
	}
	return string(runes)
}

// sharedOverlap returns the length in runes of the longest suffix of a that
// is also a prefix of b.
func sharedOverlap(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	max := len(ra)
	if len(rb) < max {
		max = len(rb)
	}
	for n := max; n > 0; n-- {
		if string(ra[len(ra)-n:]) == string(rb[:n]) {
			return n
		}
	}
	return 0
}
