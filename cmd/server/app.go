package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/avaolo/agri-gateway/internal/api"
	"github.com/avaolo/agri-gateway/internal/config"
	"github.com/avaolo/agri-gateway/internal/dispatch"
	"github.com/avaolo/agri-gateway/internal/domain"
	"github.com/avaolo/agri-gateway/internal/gateway"
	"github.com/avaolo/agri-gateway/internal/language"
	"github.com/avaolo/agri-gateway/internal/routing"
	"github.com/avaolo/agri-gateway/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the gateway runs without a farmer database.
	db *sql.DB

	farmerStore store.FarmerStore
	controller  *gateway.Controller
}

// newApplication creates a new application instance with all dependencies
// initialized: language tables, routing table, backend dispatcher, the
// pipeline controller, and the farmer directory store.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	normalizer := language.NewNormalizer(buildLexicon(cfg.Language), cfg.Language.DefaultLocale)

	router, err := buildRouter(cfg.Routing)
	if err != nil {
		return nil, fmt.Errorf("failed to build routing table: %w", err)
	}
	logger.Info("Routing table built",
		"prefix_routes", len(cfg.Routing.Routes),
		"intent_defaults", len(cfg.Routing.IntentDefaults),
		"fallback", cfg.Routing.Fallback)

	dispatcher := dispatch.New(logger.With("component", "dispatcher"))

	app.controller = gateway.NewController(normalizer, router, dispatcher,
		logger.With("component", "controller"))

	// Farmer directory: prefer the configured database, fall back to the
	// seeded in-memory directory so the gateway stays useful without one.
	app.farmerStore = store.NewMemoryFarmerStore()
	if cfg.Database.URL != "" {
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Warn("Database unavailable, serving in-memory farmer directory", "error", err)
		} else {
			app.db = db
			app.farmerStore = newDatabaseFarmerStore(db)
		}
	} else {
		logger.Info("No database configured, serving in-memory farmer directory")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// buildLexicon merges the configured language extensions into the
// built-in lexicon.
func buildLexicon(cfg config.LanguageConfig) language.Lexicon {
	lex := language.DefaultLexicon()
	lex.CanonicalTerms = append(lex.CanonicalTerms, cfg.ExtraTerms...)
	for variant, canonical := range cfg.Synonyms {
		lex.Synonyms[variant] = canonical
	}
	return lex
}

// buildRouter converts the routing configuration into an immutable
// Router. Config validation already checked for dangling service
// references, so errors here indicate a bug rather than bad input.
func buildRouter(cfg config.RoutingConfig) (*routing.Router, error) {
	targets := make(map[string]domain.RouteTarget, len(cfg.Services))
	for name, svc := range cfg.Services {
		targets[name] = domain.RouteTarget{
			Service:          name,
			BaseURL:          svc.BaseURL,
			Timeout:          svc.Timeout,
			RetryCount:       svc.Retries,
			ForwardCanonical: svc.ForwardCanonical,
		}
	}

	prefixes := make([]routing.PrefixRoute, 0, len(cfg.Routes))
	for _, r := range cfg.Routes {
		prefixes = append(prefixes, routing.PrefixRoute{Prefix: r.Prefix, Service: r.Service})
	}

	intentDefaults := make(map[domain.Intent]string, len(cfg.IntentDefaults))
	for intent, svc := range cfg.IntentDefaults {
		intentDefaults[domain.Intent(intent)] = svc
	}

	return routing.New(prefixes, intentDefaults, cfg.Fallback, targets)
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

// dbPinger adapts the optional database handle for health reporting.
// Returns nil when no database is connected so the health endpoint
// reports a degraded directory instead of a false positive.
func (app *application) dbPinger() api.Pinger {
	if app.db == nil {
		return nil
	}
	return app.db
}
