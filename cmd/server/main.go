package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/pixelgrove/ingest/internal/config"
	"github.com/pixelgrove/ingest/internal/database"
	"github.com/pixelgrove/ingest/internal/pipeline"
	"github.com/pixelgrove/ingest/internal/router"
	"github.com/pixelgrove/ingest/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := newObjectStore(cfg)
	if err != nil {
		slog.Error("failed to initialise object storage", "error", err)
		os.Exit(1)
	}

	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.Limits.MaxBytes = cfg.MaxUploadBytes
	pipeCfg.Limits.MaxWidth = cfg.MaxImageWidth
	pipeCfg.Limits.MaxHeight = cfg.MaxImageHeight

	p := pipeline.New(store, db, pipeCfg, logger)

	srv := router.New(p, db, cfg)

	slog.Info("starting server", "addr", cfg.ListenAddr, "storage", cfg.StorageBackend)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newObjectStore(cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.StorageBackend == "filesystem" {
		return storage.NewFileSystem(cfg.StoragePath, cfg.StoragePublicBase), nil
	}
	return storage.NewMinio(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
}
