package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avaolo/agri-gateway/internal/api/shared"
	"github.com/avaolo/agri-gateway/internal/domain"
)

// maxInboundBody caps how much request body the gateway buffers.
const maxInboundBody = 1 << 20 // 1 MiB

// RequestHandler runs one inbound request through the gateway pipeline.
type RequestHandler interface {
	Handle(ctx context.Context, inbound domain.InboundRequest) domain.GatewayEnvelope
}

// GatewayHandler is the catch-all proxy handler. Any method and path not
// claimed by the gateway's own endpoints lands here and goes through the
// full pipeline: normalize, route, dispatch, envelope.
type GatewayHandler struct {
	controller RequestHandler
	logger     *slog.Logger
}

// NewGatewayHandler creates the proxy handler.
func NewGatewayHandler(controller RequestHandler, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{controller: controller, logger: logger}
}

// ServeHTTP implements http.Handler. Whatever happens inside the
// pipeline, exactly one envelope goes out.
func (h *GatewayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Read one byte past the cap so truncation is detectable; an
	// oversized body is rejected, never silently forwarded cut short.
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInboundBody+1))
	if err != nil {
		h.logger.Warn("failed to read request body",
			"trace_id", shared.GetTraceID(r.Context()),
			"error", err)
		env := decodingEnvelope("failed to read request body", DetectLocale(r))
		shared.RespondWithJSON(w, r, EnvelopeHTTPStatus(env), env)
		return
	}
	if len(body) > maxInboundBody {
		h.logger.Warn("rejecting oversized request body",
			"trace_id", shared.GetTraceID(r.Context()),
			"limit_bytes", maxInboundBody)
		env := decodingEnvelope("request body exceeds size limit", DetectLocale(r))
		shared.RespondWithJSON(w, r, http.StatusRequestEntityTooLarge, env)
		return
	}

	inbound := domain.NewInboundRequest(r.Method, r.URL.Path, r.Header, body, DetectLocale(r))
	env := h.controller.Handle(r.Context(), inbound)
	shared.RespondWithJSON(w, r, EnvelopeHTTPStatus(env), env)
}

// decodingEnvelope is the error envelope for bodies that never reach
// the pipeline.
func decodingEnvelope(message, locale string) domain.GatewayEnvelope {
	if locale == "" {
		locale = domain.LocaleUnknown
	}
	return domain.GatewayEnvelope{
		Status: domain.EnvelopeError,
		Data:   []byte("null"),
		Error: &domain.EnvelopeErrorDetail{
			Kind:    domain.KindDecodingError,
			Message: message,
		},
		Locale: locale,
	}
}

// DetectLocale extracts the caller's locale hint. An explicit X-Locale
// header wins; otherwise the primary Accept-Language tag is reduced to
// its language part. Returns "" when nothing usable is present, leaving
// the decision to the normalizer's configured default.
func DetectLocale(r *http.Request) string {
	if loc := strings.TrimSpace(r.Header.Get("X-Locale")); loc != "" {
		return strings.ToLower(loc)
	}

	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return ""
	}
	primary := strings.TrimSpace(strings.Split(accept, ",")[0])
	if primary == "" || primary == "*" {
		return ""
	}
	if i := strings.IndexAny(primary, "-_;"); i > 0 {
		primary = primary[:i]
	}
	return strings.ToLower(primary)
}
