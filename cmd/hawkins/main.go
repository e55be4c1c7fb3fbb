// Hawkins Lab Core - Stranger APIs Mission Control
//
// This is the main entry point for the Hawkins Lab API playground: a
// deliberately small REST server whose world state (gate, monsters,
// energy spikes, inventory, experiments, evidence) lives in a single
// persisted document, and which records every request it serves into
// that same document for inspection.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/strangerlabs/hawkins-core/internal/api"
	"github.com/strangerlabs/hawkins-core/internal/infrastructure/config"
	"github.com/strangerlabs/hawkins-core/internal/infrastructure/database"
	"github.com/strangerlabs/hawkins-core/internal/infrastructure/logging"
	"github.com/strangerlabs/hawkins-core/internal/world"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hawkins Lab Core",
		"version", version,
		"commit", commit,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialising world store: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	wld := world.New(store, log)

	// Touch the store once on boot so a missing document is seeded
	// before the first request arrives.
	doc, err := wld.State()
	if err != nil {
		return fmt.Errorf("loading world state: %w", err)
	}
	log.Info("world state loaded",
		"backend", cfg.Store.Backend,
		"gate_open", doc.GateOpen,
		"monsters", len(doc.Monsters),
		"request_logs", len(doc.RequestLogs),
	)

	server, err := api.New(api.Deps{
		Config:     cfg.Server,
		Security:   cfg.Security,
		UpsideDown: cfg.UpsideDown,
		WS:         cfg.WebSocket,
		Logger:     log,
		World:      wld,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Hawkins Lab Core stopped")
	return nil
}

// buildStore selects the world store backend from configuration. The
// returned cleanup function closes backend resources and may be nil.
func buildStore(ctx context.Context, cfg *config.Config, log *logging.Logger) (world.Store, func(), error) {
	switch cfg.Store.Backend {
	case "file":
		log.Info("using file store", "path", cfg.Store.Path)
		return world.NewFileStore(cfg.Store.Path), nil, nil

	case "sqlite":
		db, err := database.Open(database.Config{
			Path:        cfg.Store.Database.Path,
			WALMode:     cfg.Store.Database.WALMode,
			BusyTimeout: cfg.Store.Database.BusyTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			db.Close() //nolint:errcheck // Best effort cleanup on error path
			return nil, nil, fmt.Errorf("database health check: %w", err)
		}

		store, err := world.NewSQLiteStore(db.DB)
		if err != nil {
			db.Close() //nolint:errcheck // Best effort cleanup on error path
			return nil, nil, fmt.Errorf("initialising sqlite store: %w", err)
		}
		log.Info("using sqlite store", "path", db.Path())

		cleanup := func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}
		return store, cleanup, nil

	case "memory":
		log.Info("using in-memory store; state is lost on restart")
		return world.NewMemoryStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// getConfigPath returns the configuration file path.
// Uses HAWKINS_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HAWKINS_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
