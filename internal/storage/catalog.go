package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_catalog.go -package=mocks ragsync/internal/storage Catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// Catalog records what the last successful run pushed to the vector store:
// the digest of each file and the chunk IDs emitted for it. The digest
// enables skip-unchanged detection; the recorded IDs enable exact deletion
// of a file's prior chunk set even after its digest has changed.
//
// The catalog is an optimization, not a source of truth. A cold or lost
// catalog only degrades deletion to the store's payload-filter path.
type Catalog interface {
	// Digest returns the recorded digest for a file. ErrNotFound when the
	// file has never been cataloged.
	Digest(ctx context.Context, scope, relPath string) (string, error)
	// ChunkIDs returns the chunk IDs recorded for a file, ordered by index.
	ChunkIDs(ctx context.Context, scope, relPath string) ([]string, error)
	// ReplaceFile atomically records a file's new digest and chunk IDs,
	// discarding whatever was recorded before.
	ReplaceFile(ctx context.Context, scope, relPath, digest string, chunkIDs []string) error
	// DeleteFile drops a file and returns the chunk IDs that were recorded
	// for it, so the caller can mirror the deletion in the vector store.
	DeleteFile(ctx context.Context, scope, relPath string) ([]string, error)
	// Counts returns the number of cataloged files and chunks.
	Counts(ctx context.Context) (files int, chunks int, err error)
	// ClearScope removes every row for a scope. Used with forced rebuilds.
	ClearScope(ctx context.Context, scope string) error
}

// CatalogRepo implements Catalog on SQLite.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo creates a CatalogRepo.
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// Digest returns the recorded digest for a file.
func (r *CatalogRepo) Digest(ctx context.Context, scope, relPath string) (string, error) {
	var digest string
	err := r.db.QueryRowContext(ctx,
		"SELECT digest FROM files WHERE scope = ? AND rel_path = ?",
		scope, relPath,
	).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query file digest: %w", err)
	}
	return digest, nil
}

// ChunkIDs returns the chunk IDs recorded for a file, ordered by index.
func (r *CatalogRepo) ChunkIDs(ctx context.Context, scope, relPath string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM chunks WHERE scope = ? AND rel_path = ? ORDER BY chunk_index",
		scope, relPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// ReplaceFile atomically records a file's new digest and chunk IDs.
func (r *CatalogRepo) ReplaceFile(ctx context.Context, scope, relPath, digest string, chunkIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO files (scope, rel_path, digest, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (scope, rel_path) DO UPDATE SET digest = excluded.digest, updated_at = CURRENT_TIMESTAMP`,
		scope, relPath, digest,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert file record: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE scope = ? AND rel_path = ?", scope, relPath,
	); err != nil {
		return fmt.Errorf("failed to delete old chunk records: %w", err)
	}

	for i, id := range chunkIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (id, scope, rel_path, chunk_index) VALUES (?, ?, ?, ?)",
			id, scope, relPath, i,
		); err != nil {
			return fmt.Errorf("failed to insert chunk record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit file replacement: %w", err)
	}
	return nil
}

// DeleteFile drops a file and returns the chunk IDs that were recorded for it.
func (r *CatalogRepo) DeleteFile(ctx context.Context, scope, relPath string) ([]string, error) {
	ids, err := r.ChunkIDs(ctx, scope, relPath)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE scope = ? AND rel_path = ?", scope, relPath,
	); err != nil {
		return nil, fmt.Errorf("failed to delete chunk records: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM files WHERE scope = ? AND rel_path = ?", scope, relPath,
	); err != nil {
		return nil, fmt.Errorf("failed to delete file record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit file deletion: %w", err)
	}
	return ids, nil
}

// Counts returns the number of cataloged files and chunks.
func (r *CatalogRepo) Counts(ctx context.Context) (int, int, error) {
	var files, chunks int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&files); err != nil {
		return 0, 0, fmt.Errorf("failed to count files: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&chunks); err != nil {
		return 0, 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return files, chunks, nil
}

// ClearScope removes every row for a scope.
func (r *CatalogRepo) ClearScope(ctx context.Context, scope string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE scope = ?", scope); err != nil {
		return fmt.Errorf("failed to clear chunk records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM files WHERE scope = ?", scope); err != nil {
		return fmt.Errorf("failed to clear file records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scope clear: %w", err)
	}
	return nil
}
