package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"ragsync/internal/config"
	"ragsync/internal/corpus"
	"ragsync/internal/embedder"
	"ragsync/internal/http"
	"ragsync/internal/indexer"
	"ragsync/internal/storage"
	"ragsync/internal/vectorstore"
)

func main() {
	mode := flag.String("mode", "full", "sync mode: full, incremental, or test")
	manifestPath := flag.String("manifest", "", "change manifest file (required for incremental mode)")
	limit := flag.Int("limit", 10, "file limit for test mode")
	force := flag.Bool("force", false, "clear the collection and catalog before a full sync")
	serve := flag.Bool("serve", false, "run the admin HTTP server instead of a one-shot sync")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate catalog database: %v", err)
	}
	catalog := storage.NewCatalogRepo(db)
	slog.Info("Catalog ready", "path", cfg.CatalogPath)

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.EnsureCollection(ctx, cfg.QdrantCollection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.VectorSize)

	emb := embedder.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	pipeline := indexer.NewPipeline(
		corpus.NewScanner(cfg.DataDir, corpus.NewFilter(cfg.MaxFileSize)),
		corpus.NewLoader(),
		indexer.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		catalog,
		indexer.NewSyncer(store, emb, cfg.QdrantCollection, cfg.BatchSize, cfg.BatchFanout, cfg.BatchTimeout),
		cfg.Scope,
		cfg.Workers,
	)

	if *serve {
		router := http.NewRouter(&http.Deps{
			Pipeline:     pipeline,
			VectorStore:  store,
			Catalog:      catalog,
			Collection:   cfg.QdrantCollection,
			ManifestPath: *manifestPath,
		})
		addr := ":" + cfg.APIPort
		slog.Info("Starting admin server", "addr", addr)
		if err := nethttp.ListenAndServe(addr, router); err != nil {
			log.Fatalf("Admin server failed: %v", err)
		}
		return
	}

	if *force {
		if err := pipeline.ClearAll(ctx); err != nil {
			log.Fatalf("Failed to clear before sync: %v", err)
		}
		slog.Info("Cleared collection and catalog", "collection", cfg.QdrantCollection)
	}

	var result *indexer.SyncResult
	var runErr error

	switch *mode {
	case string(indexer.ModeFull):
		result, runErr = pipeline.FullSync(ctx)
	case string(indexer.ModeIncremental):
		if *manifestPath == "" {
			log.Fatalf("incremental mode requires -manifest")
		}
		result, runErr = pipeline.IncrementalSync(ctx, *manifestPath)
	case string(indexer.ModeTest):
		result, runErr = pipeline.TestSync(ctx, *limit)
	default:
		log.Fatalf("unknown mode %q: must be full, incremental, or test", *mode)
	}
	if runErr != nil {
		slog.Error("Sync run failed", "error", runErr)
	}

	report := &indexer.Report{Result: result}
	if stats, err := store.CollectionStats(ctx, cfg.QdrantCollection); err != nil {
		slog.Warn("Failed to read collection stats for report", "error", err)
	} else {
		report.Stats = stats
	}

	if err := indexer.WriteReport(cfg.ReportPath, report); err != nil {
		slog.Error("Failed to write run report", "error", err)
		os.Exit(1)
	}
	slog.Info("Run report written", "path", cfg.ReportPath)

	if result == nil || !result.Success {
		os.Exit(1)
	}
}
