package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/avaolo/agri-gateway/internal/api/shared"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthHandler reports gateway liveness and database connectivity.
type HealthHandler struct {
	db      Pinger
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler. db may be nil when the
// gateway runs without a database.
func NewHealthHandler(db Pinger, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, version: version, logger: logger}
}

// Check handles GET /api/v1/health requests. The gateway itself is
// always reported; a missing or unreachable database degrades the
// status instead of failing the check.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}

	if h.db == nil {
		resp.Status = "degraded"
		resp.Database = "disconnected"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("health check database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "disconnected"
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
