package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/staffdir/internal/config"
	"github.com/JonMunkholm/staffdir/internal/core"
	"github.com/JonMunkholm/staffdir/internal/ingest"
	"github.com/JonMunkholm/staffdir/internal/logging"
	"github.com/JonMunkholm/staffdir/internal/report"
	"github.com/JonMunkholm/staffdir/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"data_file", cfg.Data.File,
		"export_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// The dataset is read once; a bad file leaves the API up with no rows.
	ctx := context.Background()
	store := ingest.LoadOrEmpty(ctx, ingest.Source{Path: cfg.Data.File, Sheet: cfg.Data.Sheet})

	service, err := core.NewService(store, cfg)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	deco, err := report.DecorationFromConfig(cfg.Report)
	if err != nil {
		slog.Error("invalid report decoration", "error", err)
		os.Exit(1)
	}
	renderer, err := report.NewRenderer(report.DefaultLayout(), deco)
	if err != nil {
		slog.Error("failed to create renderer", "error", err)
		os.Exit(1)
	}
	slog.Info("report ready",
		"rows_per_page", renderer.Layout().RowsPerPage(),
		"shading", deco.Shading,
		"font", deco.Family.Name,
	)

	server := web.NewServer(service, renderer, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.ExportStatus(); status.Active > 0 {
			slog.Info("waiting for exports to complete", "active", status.Active)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		if err := service.WaitForExports(shutdownCtx); err != nil {
			slog.Warn("exports did not complete in time", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
