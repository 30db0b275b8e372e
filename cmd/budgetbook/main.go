package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budgetbook/internal/config"
	"budgetbook/internal/core"
	apphttp "budgetbook/internal/http"
	"budgetbook/internal/kv"
	"budgetbook/internal/ledger"
	"budgetbook/internal/logging"
)

func main() {
	// .env is optional; errors are ignored so production can rely on real env
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	vocab := core.DefaultVocabulary()
	if cfg.CategoriesFile != "" {
		loaded, err := core.LoadVocabulary(cfg.CategoriesFile)
		if err != nil {
			slog.Error("Failed to load categories file", "path", cfg.CategoriesFile, "error", err)
			os.Exit(1)
		}
		vocab = loaded
		slog.Info("Loaded category vocabulary", "path", cfg.CategoriesFile)
	}

	store, err := kv.Open(kv.Options{
		Backend:    cfg.DataBackend,
		DataDir:    cfg.DataDir,
		SQLitePath: cfg.SQLiteDBPath,
	})
	if err != nil {
		slog.Error("Failed to open blob store", "backend", cfg.DataBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	book := ledger.Open(ctx, store)

	srv := apphttp.NewServer(":"+cfg.Port, book, vocab)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting budgetbook server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}
