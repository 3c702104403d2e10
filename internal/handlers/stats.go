package handlers

import (
	"encoding/json"
	"net/http"

	"ragsync/internal/contextutil"
	"ragsync/internal/storage"
	"ragsync/internal/vectorstore"
)

// StatsHandler exposes collection and catalog counters.
type StatsHandler struct {
	vectorStore    vectorstore.VectorStore
	catalog        storage.Catalog
	collectionName string
}

// NewStatsHandler creates a new StatsHandler. catalog may be nil.
func NewStatsHandler(vectorStore vectorstore.VectorStore, catalog storage.Catalog, collectionName string) *StatsHandler {
	return &StatsHandler{
		vectorStore:    vectorStore,
		catalog:        catalog,
		collectionName: collectionName,
	}
}

// StatsResponse represents the stats endpoint response.
type StatsResponse struct {
	Collection    string             `json:"collection"`
	Store         *vectorstore.Stats `json:"store,omitempty"`
	CatalogFiles  int                `json:"catalog_files"`
	CatalogChunks int                `json:"catalog_chunks"`
}

// ServeHTTP handles stats requests.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	resp := StatsResponse{Collection: h.collectionName}

	stats, err := h.vectorStore.CollectionStats(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "failed to read collection stats", "error", err)
	} else {
		resp.Store = stats
	}

	if h.catalog != nil {
		files, chunks, err := h.catalog.Counts(ctx)
		if err != nil {
			logger.WarnContext(ctx, "failed to read catalog counts", "error", err)
		} else {
			resp.CatalogFiles = files
			resp.CatalogChunks = chunks
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
