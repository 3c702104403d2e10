package indexer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	// RemovedPrefix marks a manifest entry as a deletion.
	RemovedPrefix = "REMOVED:"
	// FullSyncSentinel short-circuits an incremental run into a full rebuild.
	FullSyncSentinel = "FULL_SYNC"
)

// ChangeEntry is one line of an incremental manifest: either a path to
// (re)process or a path to remove from the index.
type ChangeEntry struct {
	Path    string
	Removed bool
}

// Manifest is the parsed change list driving an incremental run.
type Manifest struct {
	FullSync bool
	Entries  []ChangeEntry
}

// ParseManifest reads a change manifest file. A missing or unreadable
// manifest is a fatal run error; incremental mode cannot proceed without it.
func ParseManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	m := &Manifest{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == FullSyncSentinel {
			m.FullSync = true
			continue
		}
		if rest, ok := strings.CutPrefix(line, RemovedPrefix); ok {
			m.Entries = append(m.Entries, ChangeEntry{
				Path:    strings.TrimSpace(rest),
				Removed: true,
			})
			continue
		}
		m.Entries = append(m.Entries, ChangeEntry{Path: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return m, nil
}
