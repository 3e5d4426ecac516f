package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	corecfg "github.com/aevon-lab/faultline/internal/core/config"
	"github.com/aevon-lab/faultline/internal/core/storage"
	"github.com/aevon-lab/faultline/internal/core/storage/memory"
	"github.com/aevon-lab/faultline/internal/core/storage/postgres"
	"github.com/aevon-lab/faultline/internal/migrations"
	"github.com/aevon-lab/faultline/internal/savedfilter"
	"github.com/aevon-lab/faultline/internal/search"
	"github.com/aevon-lab/faultline/internal/server"
	"github.com/aevon-lab/faultline/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "faultline.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Bootstrap logger until config decides the real one
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration (includes the resolved policy)
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.Logging))
	slog.Info("Loaded config",
		"database_type", cfg.Database.Type,
		"cache_enabled", cfg.Cache.Enabled,
		"policy_path", cfg.Policy.Path,
		"policy_fingerprint", cfg.ResolvedPolicy.Fingerprint,
	)

	// 2. Initialize Storage
	var (
		store  storage.FilterStore
		health server.HealthChecker
	)
	switch cfg.Database.Type {
	case "postgres":
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}

		// 2.1. Run Database Migrations
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			db.Close()
			os.Exit(1)
		}

		adapter, err := postgres.NewAdapterFromDB(db)
		if err != nil {
			slog.Error("Failed to initialize filter store", "error", err)
			db.Close()
			os.Exit(1)
		}
		defer adapter.Close()

		store = adapter
		health = adapter.DB()
	case "memory":
		slog.Warn("Using in-memory filter store; saved filters are lost on restart")
		store = memory.NewFilterStore()
	}

	// 3. Initialize Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(reg)

	// 4. Initialize Search Planner
	cacheSize := 0
	if cfg.Cache.Enabled {
		cacheSize = cfg.Cache.Size
	}
	searchSvc, err := search.NewService(cfg.ResolvedPolicy, cacheSize, metrics)
	if err != nil {
		slog.Error("Failed to initialize search planner", "error", err)
		os.Exit(1)
	}

	// 5. Initialize Saved Filters
	filterSvc := savedfilter.NewService(store, searchSvc)

	// 6. Initialize Server
	srv := server.New(server.Options{
		Addr:         fmtAddr(cfg.Server.Host, cfg.Server.Port),
		Mode:         cfg.Server.Mode,
		MaxBodyBytes: int64(cfg.Server.MaxBodySizeMB) * 1024 * 1024,
		Health:       health,
		Gatherer:     reg,
	}, searchSvc, filterSvc)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func newLogger(w io.Writer, cfg corecfg.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
