package indexer

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"ragsync/internal/vectorstore"
)

// Mode tags a run with how its target set was determined.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
	ModeTest        Mode = "test"
)

// SyncResult aggregates the outcome of one run. Individual file and batch
// failures land in Errors; Success only turns false on fatal run errors
// (missing data directory, unreadable manifest).
type SyncResult struct {
	Success        bool      `json:"success"`
	Mode           Mode      `json:"mode"`
	RunID          string    `json:"run_id"`
	FilesProcessed int       `json:"files_processed"`
	FilesRemoved   int       `json:"files_removed"`
	FilesSkipped   int       `json:"files_skipped"`
	ChunksUpserted int       `json:"chunks_upserted"`
	ChunksDeleted  int       `json:"chunks_deleted"`
	Errors         []string  `json:"errors,omitempty"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Report is the machine-readable record written after every run, consumed
// by the invoking automation to decide success or failure.
type Report struct {
	Result *SyncResult        `json:"result"`
	Stats  *vectorstore.Stats `json:"stats,omitempty"`
	Meta   map[string]any     `json:"meta,omitempty"`
}

// WriteReport persists the report as indented JSON at path.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// resultAccumulator collects counters and errors from concurrent file and
// batch work. All mutation goes through the mutex; reads happen only after
// the run's goroutines have been joined.
type resultAccumulator struct {
	mu     sync.Mutex
	result SyncResult
}

func newResultAccumulator(mode Mode, runID string) *resultAccumulator {
	return &resultAccumulator{
		result: SyncResult{
			Success: true,
			Mode:    mode,
			RunID:   runID,
		},
	}
}

func (a *resultAccumulator) addProcessed() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.FilesProcessed++
}

// addUpserted counts chunks only after their batch reached the store, so the
// final report reflects partial batch success accurately.
func (a *resultAccumulator) addUpserted(chunks int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.ChunksUpserted += chunks
}

func (a *resultAccumulator) addRemoved() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.FilesRemoved++
}

func (a *resultAccumulator) addSkipped() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.FilesSkipped++
}

func (a *resultAccumulator) addDeleted(chunks int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.ChunksDeleted += chunks
}

func (a *resultAccumulator) addError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.result.Errors = append(a.result.Errors, err.Error())
}

func (a *resultAccumulator) finalize() *SyncResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.result
	r.Timestamp = time.Now().UTC()
	return &r
}
