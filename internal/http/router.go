package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ragsync/internal/handlers"
	"ragsync/internal/indexer"
	"ragsync/internal/storage"
	"ragsync/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Pipeline     *indexer.Pipeline
	VectorStore  vectorstore.VectorStore
	Catalog      storage.Catalog
	Collection   string
	ManifestPath string
}

// NewRouter creates the admin HTTP router: health, stats, and sync trigger.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)
	statsHandler := handlers.NewStatsHandler(deps.VectorStore, deps.Catalog, deps.Collection)
	syncHandler := handlers.NewSyncHandler(deps.Pipeline, deps.ManifestPath)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodPost, "/sync", syncHandler)
	})

	return r
}
