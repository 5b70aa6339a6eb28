// Package main implements the entry point for the TaskHQ API server,
// a task tracking backend with JWT authentication and role-based access.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/taskhq/taskhq-api/internal/config"
	"github.com/taskhq/taskhq-api/internal/platform/logger"
)

// main initializes configuration, logging, the database connection and the
// application dependencies, runs pending migrations and starts the HTTP
// server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run carries the startup sequence so main stays a thin exit-code shim.
func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish the database connection
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Run pending migrations before serving traffic
	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Wire up the application dependencies
	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
