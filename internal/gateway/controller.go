package gateway

import (
	"context"
	"log/slog"

	"github.com/avaolo/agri-gateway/internal/domain"
	"github.com/avaolo/agri-gateway/internal/language"
)

// Normalizer rewrites raw text into canonical form.
type Normalizer interface {
	Normalize(text, localeHint string) language.CanonicalText
}

// RouteResolver maps a canonical request to a backend target.
type RouteResolver interface {
	Resolve(canonical domain.CanonicalRequest) (domain.RouteTarget, error)
}

// BackendDispatcher performs the outbound call to a resolved backend.
type BackendDispatcher interface {
	Dispatch(ctx context.Context, target domain.RouteTarget, canonical domain.CanonicalRequest) domain.BackendResponse
}

// Controller orchestrates the per-request pipeline. It holds only
// read-only collaborators, so one Controller serves all concurrent
// requests.
type Controller struct {
	normalizer Normalizer
	router     RouteResolver
	dispatcher BackendDispatcher
	logger     *slog.Logger
}

// NewController wires the pipeline components together.
func NewController(
	normalizer Normalizer,
	router RouteResolver,
	dispatcher BackendDispatcher,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		normalizer: normalizer,
		router:     router,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle runs one inbound request through the pipeline and always returns
// exactly one envelope. Errors from any stage are recovered into error
// envelopes; nothing here terminates the process.
func (c *Controller) Handle(ctx context.Context, inbound domain.InboundRequest) domain.GatewayEnvelope {
	log := c.logger.With("method", inbound.Method, "path", inbound.Path)

	if !inbound.ValidBody() {
		log.Warn("rejecting request with non-UTF-8 body")
		return DecodingErrorEnvelope(inbound.Locale)
	}

	text := c.normalizer.Normalize(string(inbound.Body), inbound.Locale)
	canonical := domain.CanonicalRequest{
		Method:         inbound.Method,
		Path:           inbound.Path,
		Header:         inbound.Header,
		Body:           inbound.Body,
		NormalizedText: text.Text,
		Intent:         text.Intent,
		Locale:         text.Locale,
	}
	log = log.With("intent", canonical.Intent, "locale", canonical.EffectiveLocale())
	log.Debug("request normalized")

	target, err := c.router.Resolve(canonical)
	if err != nil {
		// Routing failure short-circuits the dispatch stage but still
		// reaches the envelope, so the caller gets a visible error.
		log.Info("no route resolved", "error", err)
		return BuildEnvelope(domain.BackendResponse{}, canonical, domain.RouteTarget{}, err)
	}
	log = log.With("service", target.Service)
	log.Debug("request routed")

	resp := c.dispatcher.Dispatch(ctx, target, canonical)
	if resp.Err {
		log.Info("dispatch failed",
			"kind", resp.ErrorKind,
			"backend_status", resp.StatusCode,
			"latency", resp.Latency)
	} else {
		log.Info("dispatch completed",
			"backend_status", resp.StatusCode,
			"latency", resp.Latency)
	}

	return BuildEnvelope(resp, canonical, target, nil)
}
