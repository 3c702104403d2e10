package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ragsync/internal/contextutil"
	"ragsync/internal/indexer"
)

// SyncHandler triggers a sync run in the background. Query parameters:
// mode=full|incremental|test (default full), force=true pre-clears the
// collection before a full run.
type SyncHandler struct {
	pipeline     *indexer.Pipeline
	manifestPath string
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(pipeline *indexer.Pipeline, manifestPath string) *SyncHandler {
	return &SyncHandler{pipeline: pipeline, manifestPath: manifestPath}
}

// SyncResponse represents the response from the sync endpoint.
type SyncResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles sync trigger requests.
func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = string(indexer.ModeFull)
	}
	force := r.URL.Query().Get("force") == "true"

	if mode == string(indexer.ModeIncremental) && h.manifestPath == "" {
		h.writeError(w, http.StatusBadRequest, "no manifest path configured for incremental mode")
		return
	}
	if mode != string(indexer.ModeFull) && mode != string(indexer.ModeIncremental) {
		h.writeError(w, http.StatusBadRequest, "mode must be full or incremental")
		return
	}

	logger.InfoContext(ctx, "sync triggered via API", "mode", mode, "force", force)

	// Background context: the run outlives the HTTP request.
	go func() {
		runCtx := context.Background()
		if force {
			if err := h.pipeline.ClearAll(runCtx); err != nil {
				logger.ErrorContext(runCtx, "failed to clear before sync", "error", err)
				return
			}
		}

		var err error
		if mode == string(indexer.ModeIncremental) {
			_, err = h.pipeline.IncrementalSync(runCtx, h.manifestPath)
		} else {
			_, err = h.pipeline.FullSync(runCtx)
		}
		if err != nil {
			logger.ErrorContext(runCtx, "sync failed", "mode", mode, "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(SyncResponse{
		Message: "Sync started. Check server logs for progress.",
		Status:  "accepted",
	})
}

func (h *SyncHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
