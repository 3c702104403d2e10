package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ragsync/internal/contextutil"
	"ragsync/internal/embedder"
	"ragsync/internal/vectorstore"
)

const (
	// DefaultBatchSize matches what a remote Qdrant instance comfortably
	// accepts per call; embedded or local backends can be configured far
	// higher.
	DefaultBatchSize = 100
	// DefaultBatchFanout bounds how many batch calls are in flight at once.
	DefaultBatchFanout = 4
	// DefaultBatchTimeout caps a single embed+upsert round trip.
	DefaultBatchTimeout = 30 * time.Second
)

// Syncer pushes chunk upserts and deletes to the vector store in bounded
// batches. Batches touch disjoint chunk IDs, so they are commutative: no
// ordering is preserved across them, and one failed batch never aborts the
// rest of the run.
type Syncer struct {
	store      vectorstore.VectorStore
	embedder   embedder.Embedder
	collection string
	batchSize  int
	fanout     int
	timeout    time.Duration
}

// NewSyncer creates a Syncer. Non-positive options fall back to defaults;
// the batch size must come from backend configuration, not a hardcoded
// universal constant.
func NewSyncer(store vectorstore.VectorStore, emb embedder.Embedder, collection string, batchSize, fanout int, timeout time.Duration) *Syncer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if fanout <= 0 {
		fanout = DefaultBatchFanout
	}
	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}
	return &Syncer{
		store:      store,
		embedder:   emb,
		collection: collection,
		batchSize:  batchSize,
		fanout:     fanout,
		timeout:    timeout,
	}
}

// SyncUpserts embeds and upserts records in batches. Each batch is
// independent: a failure is logged with its index range and recorded on the
// accumulator, then the next batch proceeds. When ctx is cancelled,
// in-flight batches finish but no new ones are dispatched.
//
// The returned set holds the IDs of every record the store did not
// acknowledge, whether its batch failed or was never dispatched. Callers
// must not record those chunks as synced.
func (s *Syncer) SyncUpserts(ctx context.Context, records []ChunkRecord, acc *resultAccumulator) map[string]struct{} {
	failed := make(map[string]struct{})
	if len(records) == 0 {
		return failed
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "syncing chunks to vector store",
		"count", len(records), "batch_size", s.batchSize, "fanout", s.fanout)

	var mu sync.Mutex
	markFailed := func(batch []ChunkRecord) {
		mu.Lock()
		for _, record := range batch {
			failed[record.ID] = struct{}{}
		}
		mu.Unlock()
	}

	// A plain group, not WithContext: one failed batch must not cancel its
	// siblings.
	var g errgroup.Group
	g.SetLimit(s.fanout)

	for start := 0; start < len(records); start += s.batchSize {
		select {
		case <-ctx.Done():
			logger.WarnContext(ctx, "run cancelled, stopping batch dispatch",
				"dispatched_through", start, "total", len(records))
			markFailed(records[start:])
			_ = g.Wait()
			return failed
		default:
		}

		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		batchStart, batchEnd := start, end

		g.Go(func() error {
			if err := s.upsertBatch(ctx, batch); err != nil {
				logger.ErrorContext(ctx, "batch upsert failed",
					"range_start", batchStart, "range_end", batchEnd, "error", err)
				acc.addError(fmt.Errorf("upsert batch [%d:%d): %w", batchStart, batchEnd, err))
				markFailed(batch)
				return nil
			}
			acc.addUpserted(len(batch))
			return nil
		})
	}

	_ = g.Wait()
	return failed
}

// upsertBatch embeds one batch and pushes it to the store under the
// configured timeout.
func (s *Syncer) upsertBatch(ctx context.Context, batch []ChunkRecord) error {
	batchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = record.Text
	}

	vectors, err := s.embedder.EmbedTexts(batchCtx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
	}

	points := make([]vectorstore.Point, len(batch))
	for i, record := range batch {
		points[i] = vectorstore.Point{
			ID:   record.ID,
			Vec:  vectors[i],
			Meta: record.Meta,
		}
	}

	return s.store.Upsert(batchCtx, s.collection, points)
}

// SyncDeletes removes the given IDs in batches. Deleting an absent ID is
// not an error; failures are recorded and the run continues.
func (s *Syncer) SyncDeletes(ctx context.Context, ids []string, acc *resultAccumulator) {
	if len(ids) == 0 {
		return
	}

	logger := contextutil.LoggerFromContext(ctx)

	for start := 0; start < len(ids); start += s.batchSize {
		select {
		case <-ctx.Done():
			logger.WarnContext(ctx, "run cancelled, stopping delete dispatch",
				"dispatched_through", start, "total", len(ids))
			return
		default:
		}

		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		batchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.store.Delete(batchCtx, s.collection, batch)
		cancel()
		if err != nil {
			logger.ErrorContext(ctx, "batch delete failed",
				"range_start", start, "range_end", end, "error", err)
			acc.addError(fmt.Errorf("delete batch [%d:%d): %w", start, end, err))
			continue
		}
		acc.addDeleted(len(batch))
	}
}

// DeletePath removes every stored point for one source file, regardless of
// which digest produced it.
func (s *Syncer) DeletePath(ctx context.Context, scope, relPath string) error {
	batchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.DeletePath(batchCtx, s.collection, scope, relPath)
}
