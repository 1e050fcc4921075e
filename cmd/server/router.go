package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avaolo/agri-gateway/internal/api"
	apiMiddleware "github.com/avaolo/agri-gateway/internal/api/middleware"
)

// setupRouter creates and configures the gateway router. The gateway's
// own endpoints are registered explicitly; everything else falls through
// to the proxy handler and the full pipeline.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	queryHandler := api.NewQueryHandler(app.controller, app.logger)
	farmerHandler := api.NewFarmerHandler(app.farmerStore, app.logger)
	healthHandler := api.NewHealthHandler(app.dbPinger(), version, app.logger)
	gatewayHandler := api.NewGatewayHandler(app.controller, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/query", queryHandler.ProcessQuery)
		r.Get("/health", healthHandler.Check)
		r.Get("/farmers", farmerHandler.ListFarmers)
		r.Get("/farmers/{id}", farmerHandler.GetFarmer)
	})

	// Everything unclaimed is proxied through the pipeline.
	r.NotFound(gatewayHandler.ServeHTTP)
	r.MethodNotAllowed(gatewayHandler.ServeHTTP)

	return r
}
