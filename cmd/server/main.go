// Package main implements the entry point for the AVA OLO gateway,
// the HTTP front door that normalizes Croatian farmer queries, routes
// them to agricultural backend services, and wraps every answer in a
// uniform envelope.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/avaolo/agri-gateway/internal/config"
	"github.com/avaolo/agri-gateway/internal/platform/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("Gateway configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"services", len(cfg.Routing.Services),
		"routes", len(cfg.Routing.Routes))

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
