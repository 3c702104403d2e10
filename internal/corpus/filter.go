package corpus

import (
	"context"
	"path/filepath"
	"strings"

	"ragsync/internal/contextutil"
)

// MaxFileSize is the default ceiling for file size; anything larger is a
// policy skip, not an error.
const MaxFileSize = 10 * 1024 * 1024

// skipFolders are directory names excluded wherever they appear in a path.
var skipFolders = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"env":          {},
	"wiki_data":    {},
	".github":      {},
	"target":       {},
	"build":        {},
	"dist":         {},
}

// skipExtensions are binary, media, archive, and compiled-artifact types
// that never produce useful text chunks.
var skipExtensions = map[string]struct{}{
	".idx": {}, ".pack": {}, ".pyc": {}, ".rev": {}, ".sample": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {}, ".webp": {},
	".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".rar": {}, ".7z": {},
	".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".mp3": {}, ".wav": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {},
}

// Filter decides whether a filesystem entry is eligible for processing.
// It is a pure predicate over metadata already available from a directory
// listing; the only side effect is a warning log for oversized files.
type Filter struct {
	maxSize int64
}

// NewFilter creates a Filter with the given size ceiling. A non-positive
// maxSize falls back to MaxFileSize.
func NewFilter(maxSize int64) *Filter {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	return &Filter{maxSize: maxSize}
}

// ShouldProcess reports whether the file at path with the given size should
// enter the pipeline.
func (f *Filter) ShouldProcess(ctx context.Context, path string, size int64) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if _, skip := skipFolders[part]; skip {
			return false
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, skip := skipExtensions[ext]; skip {
		return false
	}

	if size > f.maxSize {
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "skipping large file",
			"path", path, "size_mb", float64(size)/1024/1024)
		return false
	}

	return true
}
