package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ragsync/internal/contextutil"
	"ragsync/internal/corpus"
	"ragsync/internal/storage"
)

// DefaultWorkers bounds the per-file worker pool. File-level work is
// independent, so the pool size only trades memory for throughput.
const DefaultWorkers = 8

// Pipeline runs the ingestion pipeline: discover, load, hash, chunk,
// identify, and synchronize against the vector store. One Pipeline serves
// any number of runs; it holds no per-run state.
type Pipeline struct {
	scanner *corpus.Scanner
	loader  *corpus.Loader
	chunker *Chunker
	catalog storage.Catalog
	syncer  *Syncer
	scope   string
	workers int
}

// NewPipeline creates a Pipeline. catalog may be nil; the pipeline then
// skips digest bookkeeping and relies on path-filter deletes alone.
func NewPipeline(
	scanner *corpus.Scanner,
	loader *corpus.Loader,
	chunker *Chunker,
	catalog storage.Catalog,
	syncer *Syncer,
	scope string,
	workers int,
) *Pipeline {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pipeline{
		scanner: scanner,
		loader:  loader,
		chunker: chunker,
		catalog: catalog,
		syncer:  syncer,
		scope:   scope,
		workers: workers,
	}
}

// FullSync processes every eligible file under the data root. It asserts
// presence only: stale entries for files that no longer exist survive unless
// the collection was cleared beforehand (see ClearAll).
func (p *Pipeline) FullSync(ctx context.Context) (*SyncResult, error) {
	return p.fullSync(ctx, ModeFull, 0)
}

// TestSync behaves like FullSync but stops after the first limit eligible
// files. Validation runs only, never production sync.
func (p *Pipeline) TestSync(ctx context.Context, limit int) (*SyncResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("test sync limit must be greater than 0")
	}
	return p.fullSync(ctx, ModeTest, limit)
}

func (p *Pipeline) fullSync(ctx context.Context, mode Mode, limit int) (*SyncResult, error) {
	acc := newResultAccumulator(mode, uuid.New().String())
	ctx = p.runContext(ctx, acc)
	logger := contextutil.LoggerFromContext(ctx)

	files, walkErrs, err := p.scanner.Scan(ctx)
	if err != nil {
		return p.fatal(acc, err), err
	}
	// Inaccessible entries are per-file failures, not run failures.
	for _, walkErr := range walkErrs {
		acc.addError(walkErr)
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	logger.InfoContext(ctx, "starting sync", "total_files", len(files))

	records, updates := p.processFiles(ctx, files, acc)
	failed := p.syncer.SyncUpserts(ctx, records, acc)
	p.commitCatalog(ctx, updates, failed)

	result := acc.finalize()
	logger.InfoContext(ctx, "sync completed",
		"files_processed", result.FilesProcessed,
		"files_skipped", result.FilesSkipped,
		"chunks_upserted", result.ChunksUpserted,
		"errors", len(result.Errors))
	return result, nil
}

// IncrementalSync applies a change manifest: removals become deletes keyed
// by the file's path identity, upsert candidates are re-processed with their
// prior chunk set deleted first. A FULL_SYNC sentinel short-circuits into
// full mode.
func (p *Pipeline) IncrementalSync(ctx context.Context, manifestPath string) (*SyncResult, error) {
	manifest, err := ParseManifest(manifestPath)
	if err != nil {
		acc := newResultAccumulator(ModeIncremental, uuid.New().String())
		return p.fatal(acc, err), err
	}

	if manifest.FullSync {
		return p.FullSync(ctx)
	}

	acc := newResultAccumulator(ModeIncremental, uuid.New().String())
	ctx = p.runContext(ctx, acc)
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting incremental sync", "entries", len(manifest.Entries))

	var (
		targets  []corpus.SourceFile
		priorIDs []string
	)

	for _, entry := range manifest.Entries {
		select {
		case <-ctx.Done():
			return acc.finalize(), ctx.Err()
		default:
		}

		if entry.Removed {
			p.removeFile(ctx, entry.Path, acc)
			continue
		}

		file, ok, err := p.scanner.Resolve(ctx, entry.Path)
		if err != nil {
			acc.addError(err)
			continue
		}
		if !ok {
			// The file vanished between manifest generation and this run,
			// or the filter rejects it now. A skip, not a failure.
			logger.DebugContext(ctx, "skipping manifest entry", "path", entry.Path)
			acc.addSkipped()
			continue
		}

		// Unchanged content keeps its chunk IDs; the store already holds
		// them, so the whole delete/upsert round trip can be skipped.
		if p.catalog != nil {
			prior, err := p.catalog.Digest(ctx, p.scope, file.RelPath)
			if err == nil && prior != "" && prior == corpus.FileDigest(ctx, file.AbsPath) {
				logger.DebugContext(ctx, "skipping unchanged file", "rel_path", file.RelPath)
				acc.addSkipped()
				continue
			}
		}

		// A changed file's new digest invalidates every chunk ID derived
		// from its old one; without this delete the old chunks would stay
		// in the index indefinitely.
		ids := p.priorChunkIDs(ctx, file.RelPath)
		if len(ids) > 0 {
			priorIDs = append(priorIDs, ids...)
		} else if err := p.syncer.DeletePath(ctx, p.scope, file.RelPath); err != nil {
			acc.addError(fmt.Errorf("failed to delete prior chunks for %s: %w", file.RelPath, err))
		}

		targets = append(targets, file)
	}

	p.syncer.SyncDeletes(ctx, priorIDs, acc)

	records, updates := p.processFiles(ctx, targets, acc)
	failed := p.syncer.SyncUpserts(ctx, records, acc)
	p.commitCatalog(ctx, updates, failed)

	result := acc.finalize()
	logger.InfoContext(ctx, "incremental sync completed",
		"files_processed", result.FilesProcessed,
		"files_removed", result.FilesRemoved,
		"files_skipped", result.FilesSkipped,
		"chunks_upserted", result.ChunksUpserted,
		"chunks_deleted", result.ChunksDeleted,
		"errors", len(result.Errors))
	return result, nil
}

// removeFile deletes every indexed chunk for a path. Removal entries bypass
// filtering and chunking entirely.
func (p *Pipeline) removeFile(ctx context.Context, relPath string, acc *resultAccumulator) {
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		acc.addSkipped()
		return
	}

	known := 0
	if p.catalog != nil {
		ids, err := p.catalog.DeleteFile(ctx, p.scope, relPath)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx,
				"failed to drop file from catalog", "rel_path", relPath, "error", err)
		}
		known = len(ids)
	}

	// Path-filter delete covers chunks the catalog never saw.
	if err := p.syncer.DeletePath(ctx, p.scope, relPath); err != nil {
		acc.addError(fmt.Errorf("failed to remove %s: %w", relPath, err))
		return
	}

	acc.addRemoved()
	if known > 0 {
		acc.addDeleted(known)
	}
}

// priorChunkIDs returns the chunk IDs recorded for a path, or nil when the
// catalog is absent or has no record.
func (p *Pipeline) priorChunkIDs(ctx context.Context, relPath string) []string {
	if p.catalog == nil {
		return nil
	}
	ids, err := p.catalog.ChunkIDs(ctx, p.scope, relPath)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx,
			"failed to read prior chunk ids", "rel_path", relPath, "error", err)
		return nil
	}
	return ids
}

// catalogUpdate is a file's new catalog record, held back until its chunks
// are acknowledged by the store.
type catalogUpdate struct {
	relPath string
	digest  string
	ids     []string
}

// processFiles runs the per-file stages across a bounded worker pool and
// merges the per-file chunk lists in input order. Each file's output slot is
// disjoint, so only the accumulator needs locking.
func (p *Pipeline) processFiles(ctx context.Context, files []corpus.SourceFile, acc *resultAccumulator) ([]ChunkRecord, []catalogUpdate) {
	if len(files) == 0 {
		return nil, nil
	}

	perFile := make([][]ChunkRecord, len(files))

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i := range files {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return gatherFileOutput(files, perFile)
		default:
		}

		g.Go(func() error {
			records, err := p.processFile(ctx, files[i])
			if err != nil {
				contextutil.LoggerFromContext(ctx).ErrorContext(ctx,
					"failed to process file", "rel_path", files[i].RelPath, "error", err)
				acc.addError(err)
				return nil
			}
			if records == nil {
				acc.addSkipped()
				return nil
			}
			perFile[i] = records
			acc.addProcessed()
			return nil
		})
	}

	_ = g.Wait()
	return gatherFileOutput(files, perFile)
}

// processFile loads, hashes, chunks, and identifies one file. A nil record
// slice with nil error means the file was skipped by policy (empty or
// undecodable content).
func (p *Pipeline) processFile(ctx context.Context, file corpus.SourceFile) ([]ChunkRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text, err := p.loader.Load(ctx, file.AbsPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	// Digest failure degrades chunk identity to path and index only; the
	// file is still processed.
	file.Digest = corpus.FileDigest(ctx, file.AbsPath)

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, nil
	}

	var title string
	if file.Ext == ".md" {
		title = corpus.MarkdownTitle([]byte(text), file.RelPath)
	}

	processedAt := time.Now().UTC().Format(time.RFC3339)
	records := make([]ChunkRecord, len(chunks))

	for i, chunk := range chunks {
		meta := map[string]any{
			"scope":        p.scope,
			"file_path":    file.RelPath,
			"chunk_index":  i,
			"filetype":     file.Ext,
			"source_type":  string(file.SourceType),
			"file_hash":    file.Digest,
			"processed_at": processedAt,
		}
		if title != "" {
			meta["title"] = title
		}
		records[i] = ChunkRecord{
			ID:   ChunkID(p.scope, file.RelPath, i, file.Digest),
			Text: chunk,
			Meta: meta,
		}
	}

	logger.DebugContext(ctx, "processed file", "rel_path", file.RelPath, "chunks", len(chunks))
	return records, nil
}

// commitCatalog records each file's new digest and chunk IDs, but only for
// files whose every chunk was acknowledged by the store. A file with chunks
// in a failed batch keeps its old record, so the next incremental run sees
// it as changed and re-sends it instead of skipping it as unchanged.
func (p *Pipeline) commitCatalog(ctx context.Context, updates []catalogUpdate, failed map[string]struct{}) {
	if p.catalog == nil || len(updates) == 0 {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	for _, update := range updates {
		if anyFailed(update.ids, failed) {
			logger.WarnContext(ctx, "leaving catalog record unchanged after failed upsert",
				"rel_path", update.relPath)
			continue
		}
		if err := p.catalog.ReplaceFile(ctx, p.scope, update.relPath, update.digest, update.ids); err != nil {
			logger.WarnContext(ctx, "failed to update catalog", "rel_path", update.relPath, "error", err)
		}
	}
}

func anyFailed(ids []string, failed map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := failed[id]; ok {
			return true
		}
	}
	return false
}

// ClearAll wipes the collection and the catalog scope. Combined with
// FullSync it guarantees absence of stale entries, which full mode alone
// does not.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	if err := p.syncer.store.Clear(ctx, p.syncer.collection); err != nil {
		return err
	}
	if p.catalog != nil {
		if err := p.catalog.ClearScope(ctx, p.scope); err != nil {
			return err
		}
	}
	return nil
}

// runContext attaches run attributes to the contextual logger.
func (p *Pipeline) runContext(ctx context.Context, acc *resultAccumulator) context.Context {
	logger := contextutil.LoggerFromContext(ctx).With(
		"run_id", acc.result.RunID, "mode", string(acc.result.Mode))
	return contextutil.WithLogger(ctx, logger)
}

// fatal marks the run failed with a top-level error.
func (p *Pipeline) fatal(acc *resultAccumulator, err error) *SyncResult {
	acc.mu.Lock()
	acc.result.Success = false
	acc.result.Error = err.Error()
	acc.mu.Unlock()
	return acc.finalize()
}

// gatherFileOutput flattens per-file chunk lists in input order and pairs
// each non-empty file with its pending catalog update.
func gatherFileOutput(files []corpus.SourceFile, perFile [][]ChunkRecord) ([]ChunkRecord, []catalogUpdate) {
	var records []ChunkRecord
	var updates []catalogUpdate

	for i, fileRecords := range perFile {
		if len(fileRecords) == 0 {
			continue
		}
		records = append(records, fileRecords...)

		ids := make([]string, len(fileRecords))
		for j, record := range fileRecords {
			ids[j] = record.ID
		}
		digest, _ := fileRecords[0].Meta["file_hash"].(string)
		updates = append(updates, catalogUpdate{
			relPath: files[i].RelPath,
			digest:  digest,
			ids:     ids,
		})
	}
	return records, updates
}
