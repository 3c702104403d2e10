package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_EmbedTexts(t *testing.T) {
	var gotAuth string
	var gotReq embeddingsRequest

	srv := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path = %q, want /v1/embeddings", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		resp := embeddingsResponse{Data: make([]embeddingData, len(gotReq.Input))}
		for i := range resp.Data {
			resp.Data[i] = embeddingData{Embedding: []float64{0.1, 0.2, 0.3}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	client := NewClient(srv.URL, "test-key", "test-model", 3)

	vectors, err := client.EmbedTexts(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("Model = %q, want test-model", gotReq.Model)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	if len(vectors[0]) != 3 {
		t.Errorf("vector size = %d, want 3", len(vectors[0]))
	}
	if vectors[0][1] != float32(0.2) {
		t.Errorf("vectors[0][1] = %v, want 0.2", vectors[0][1])
	}
}

func TestClient_EmbedTexts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
		},
		{
			name: "count mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(embeddingsResponse{
					Data: []embeddingData{{Embedding: []float64{0.1, 0.2, 0.3}}},
				})
			},
		},
		{
			name: "wrong vector size",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(embeddingsResponse{
					Data: []embeddingData{
						{Embedding: []float64{0.1}},
						{Embedding: []float64{0.1}},
					},
				})
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := embeddingsServer(t, tt.handler)
			client := NewClient(srv.URL, "key", "model", 3)

			if _, err := client.EmbedTexts(context.Background(), []string{"a", "b"}); err == nil {
				t.Error("EmbedTexts() returned nil error, want error")
			}
		})
	}
}

func TestClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewClient("http://unused", "key", "model", 3)

	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts(nil) returned nil error, want error")
	}
}
