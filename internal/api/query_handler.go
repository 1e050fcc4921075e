package api

import (
	"log/slog"
	"net/http"

	"github.com/avaolo/agri-gateway/internal/api/shared"
	"github.com/avaolo/agri-gateway/internal/domain"
)

// QueryRequest is the body of POST /api/v1/query, the structured entry
// point the UI bridge talks to. The query text goes through the same
// pipeline as proxied requests; routing is driven by the detected
// intent.
type QueryRequest struct {
	Query    string                 `json:"query"     validate:"required,min=1"`
	FarmerID *int64                 `json:"farmer_id" validate:"omitempty,gt=0"`
	Context  map[string]interface{} `json:"context"`
}

// QueryHandler handles structured query requests.
type QueryHandler struct {
	controller RequestHandler
	logger     *slog.Logger
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(controller RequestHandler, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{controller: controller, logger: logger}
}

// ProcessQuery handles POST /api/v1/query requests.
func (h *QueryHandler) ProcessQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: query is required")
		return
	}

	inbound := domain.NewInboundRequest(r.Method, r.URL.Path, r.Header, []byte(req.Query), DetectLocale(r))
	env := h.controller.Handle(r.Context(), inbound)

	h.logger.Debug("query processed",
		"trace_id", shared.GetTraceID(r.Context()),
		"status", env.Status,
		"farmer_id", req.FarmerID)

	shared.RespondWithJSON(w, r, EnvelopeHTTPStatus(env), env)
}
