package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avaolo/agri-gateway/internal/config"
	"github.com/avaolo/agri-gateway/internal/platform/postgres"
	"github.com/avaolo/agri-gateway/internal/redact"
	"github.com/avaolo/agri-gateway/internal/store"
)

// setupAppDatabase establishes a connection to the farmer directory
// database, configures the connection pool, and runs pending
// migrations. Returns the database connection if successful.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Debug("failed to close unreachable database", "error", redact.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Debug("failed to close database after migration failure", "error", redact.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

// newDatabaseFarmerStore wraps the connected database as a FarmerStore.
func newDatabaseFarmerStore(db *sql.DB) store.FarmerStore {
	return postgres.NewPostgresFarmerStore(db)
}
