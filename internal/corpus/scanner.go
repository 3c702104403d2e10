package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ragsync/internal/contextutil"
)

// Scanner walks a data directory and yields the eligible files under it.
type Scanner struct {
	root   string
	filter *Filter
}

// NewScanner creates a Scanner rooted at root, filtering with filter.
func NewScanner(root string, filter *Filter) *Scanner {
	return &Scanner{root: root, filter: filter}
}

// Root returns the scanner's processing root.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the root recursively and returns every file that passes the
// filter. Only a missing root (or cancellation) is an error; a per-entry
// access failure is scoped to that entry, so it is logged, collected into
// the returned error list, and the walk continues past it.
func (s *Scanner) Scan(ctx context.Context) ([]SourceFile, []error, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, nil, fmt.Errorf("data directory not found: %s: %w", s.root, err)
	}

	logger := contextutil.LoggerFromContext(ctx)

	var (
		files     []SourceFile
		entryErrs []error
	)

	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.WarnContext(ctx, "skipping inaccessible path", "path", path, "error", err)
			entryErrs = append(entryErrs, fmt.Errorf("failed to access path %s: %w", path, err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			// Prune denylisted directories instead of descending into them.
			if _, skip := skipFolders[info.Name()]; skip && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		if !s.filter.ShouldProcess(ctx, relPath, info.Size()) {
			return nil
		}

		files = append(files, SourceFile{
			AbsPath:    path,
			RelPath:    relPath,
			Ext:        normalizedExt(relPath),
			Size:       info.Size(),
			SourceType: DetermineSourceType(relPath),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return files, entryErrs, nil
}

// Resolve builds a SourceFile for a single path known to the caller (e.g. a
// manifest entry). It returns false when the file no longer exists or fails
// the filter.
func (s *Scanner) Resolve(ctx context.Context, relPath string) (SourceFile, bool, error) {
	relPath = filepath.ToSlash(relPath)
	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return SourceFile{}, false, nil
		}
		return SourceFile{}, false, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}
	if info.IsDir() {
		return SourceFile{}, false, nil
	}

	if !s.filter.ShouldProcess(ctx, relPath, info.Size()) {
		return SourceFile{}, false, nil
	}

	return SourceFile{
		AbsPath:    absPath,
		RelPath:    relPath,
		Ext:        normalizedExt(relPath),
		Size:       info.Size(),
		SourceType: DetermineSourceType(relPath),
	}, true, nil
}

func normalizedExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
