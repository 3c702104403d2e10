package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"ragsync/internal/corpus"
	embmocks "ragsync/internal/embedder/mocks"
	"ragsync/internal/indexer"
	vsmocks "ragsync/internal/vectorstore/mocks"
)

func newTestPipeline(t *testing.T) *indexer.Pipeline {
	t.Helper()
	ctrl := gomock.NewController(t)

	// An empty data directory: the background run scans nothing and never
	// touches the store or the embedder.
	scanner := corpus.NewScanner(t.TempDir(), corpus.NewFilter(corpus.MaxFileSize))
	syncer := indexer.NewSyncer(
		vsmocks.NewMockVectorStore(ctrl),
		embmocks.NewMockEmbedder(ctrl),
		"corpus", 100, 1, time.Second,
	)
	return indexer.NewPipeline(scanner, corpus.NewLoader(), indexer.NewChunker(1000, 200), nil, syncer, "scope", 2)
}

func TestSyncHandler_Accepted(t *testing.T) {
	handler := NewSyncHandler(newTestPipeline(t), "")

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	var resp SyncResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Status != "accepted" {
		t.Errorf("Status = %q, want accepted", resp.Status)
	}

	// Give the background run a moment to finish before mock verification.
	time.Sleep(50 * time.Millisecond)
}

func TestSyncHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		manifestPath string
	}{
		{"unknown mode", "/api/sync?mode=bogus", "changes.txt"},
		{"test mode not exposed", "/api/sync?mode=test", "changes.txt"},
		{"incremental without manifest", "/api/sync?mode=incremental", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSyncHandler(nil, tt.manifestPath)

			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response carries no message")
			}
		})
	}
}
