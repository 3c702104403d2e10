package corpus

import (
	"context"
	"testing"
)

func TestFilter_ShouldProcess(t *testing.T) {
	filter := NewFilter(MaxFileSize)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		size int64
		want bool
	}{
		{"plain text file", "docs/readme.md", 100, true},
		{"go source", "src/main.go", 2048, true},
		{"node_modules at root", "node_modules/pkg/index.js", 100, false},
		{"node_modules nested", "projects/app/node_modules/pkg/index.js", 100, false},
		{"git internals", "repo/.git/objects/ab/cdef", 100, false},
		{"pycache", "app/__pycache__/mod.cpython-311.pyc", 100, false},
		{"venv", "app/.venv/lib/site.py", 100, false},
		{"build output", "app/build/out.txt", 100, false},
		{"dist output", "app/dist/bundle.js", 100, false},
		{"png image", "assets/logo.png", 100, false},
		{"uppercase extension", "assets/PHOTO.JPG", 100, false},
		{"pdf", "docs/spec.pdf", 100, false},
		{"archive", "backup/data.tar", 100, false},
		{"shared object", "lib/native.so", 100, false},
		{"folder name as file prefix ok", "node_modules_notes.txt", 100, true},
		{"exactly at size cap", "big.txt", MaxFileSize, true},
		{"one byte over cap", "big.txt", MaxFileSize + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.ShouldProcess(ctx, tt.path, tt.size); got != tt.want {
				t.Errorf("ShouldProcess(%q, %d) = %v, want %v", tt.path, tt.size, got, tt.want)
			}
		})
	}
}

func TestNewFilter_NonPositiveSizeFallsBack(t *testing.T) {
	filter := NewFilter(0)
	ctx := context.Background()

	if !filter.ShouldProcess(ctx, "file.txt", MaxFileSize) {
		t.Error("default-size filter rejected a file at the default cap")
	}
	if filter.ShouldProcess(ctx, "file.txt", MaxFileSize+1) {
		t.Error("default-size filter accepted a file over the default cap")
	}
}
