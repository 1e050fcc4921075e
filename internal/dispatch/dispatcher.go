// Package dispatch performs outbound calls to resolved backend services.
//
// The dispatcher is the only blocking stage of the gateway pipeline. Each
// call gets the target's configured timeout as a per-attempt budget;
// transport-layer faults (connection refused, attempt timeout) are
// retried sequentially up to the target's retry count, while
// backend-returned error statuses are terminal responses and never
// retried. Failures are normal return values carrying an error kind, not
// raised faults.
package dispatch

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// maxBackendBody caps how much of a backend response body the gateway
// will buffer into an envelope.
const maxBackendBody = 4 << 20 // 4 MiB

// Hop-by-hop headers are meaningful only for a single transport link and
// must not be forwarded to backends.
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Proxy-Connection":    {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

// Dispatcher issues outbound HTTP calls to backend services.
type Dispatcher struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Dispatcher. The underlying client carries no global
// timeout; every attempt is bounded by the route target's own budget
// through its request context.
func New(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{},
		logger: logger,
	}
}

// NewWithClient creates a Dispatcher with a caller-supplied HTTP client.
// Intended for tests that need to observe or fake transport behavior.
func NewWithClient(client *http.Client, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{client: client, logger: logger}
}

// Dispatch calls the resolved backend and returns its outcome. The
// request content is identical on every retry attempt; the dispatcher
// never re-normalizes. When the inbound context's own deadline elapses
// the outbound call is abandoned and a Timeout outcome is returned, so
// the caller always receives a response to envelope.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	target domain.RouteTarget,
	canonical domain.CanonicalRequest,
) domain.BackendResponse {
	start := time.Now()

	body := canonical.Body
	if target.ForwardCanonical {
		body = []byte(canonical.NormalizedText)
	}
	url := strings.TrimRight(target.BaseURL, "/") + canonical.Path

	// A request that cannot even be constructed (bad method, unparsable
	// URL) will fail identically on every attempt; fail it once.
	if _, err := http.NewRequest(canonical.Method, url, nil); err != nil {
		d.logger.Error("backend request cannot be constructed",
			"service", target.Service,
			"error", err)
		return domain.BackendResponse{
			StatusCode:  http.StatusServiceUnavailable,
			Latency:     time.Since(start),
			Err:         true,
			ErrorKind:   domain.KindServiceUnavailable,
			ErrorDetail: err.Error(),
		}
	}

	attempts := target.RetryCount + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return d.timeoutResponse(target, start)
		}

		resp, err := d.attempt(ctx, target, canonical, url, body)
		if err != nil {
			if ctx.Err() != nil {
				return d.timeoutResponse(target, start)
			}
			lastErr = err
			d.logger.Warn("backend attempt failed",
				"service", target.Service,
				"attempt", attempt,
				"max_attempts", attempts,
				"error", err)
			continue
		}

		resp.Latency = time.Since(start)
		return resp
	}

	d.logger.Error("backend unavailable after exhausting retries",
		"service", target.Service,
		"attempts", attempts,
		"error", lastErr)

	detail := domain.ErrServiceUnavailable.Error()
	if lastErr != nil {
		detail = lastErr.Error()
	}
	return domain.BackendResponse{
		StatusCode:  http.StatusServiceUnavailable,
		Latency:     time.Since(start),
		Err:         true,
		ErrorKind:   domain.KindServiceUnavailable,
		ErrorDetail: detail,
	}
}

// attempt performs one transport attempt. A non-nil error means a
// transport-layer fault eligible for retry; a backend-returned error
// status comes back as a terminal BackendResponse with Err set.
func (d *Dispatcher) attempt(
	ctx context.Context,
	target domain.RouteTarget,
	canonical domain.CanonicalRequest,
	url string,
	body []byte,
) (domain.BackendResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, target.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, canonical.Method, url, bytes.NewReader(body))
	if err != nil {
		return domain.BackendResponse{}, err
	}

	for key, values := range canonical.Header {
		if _, skip := hopByHopHeaders[key]; skip {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("X-Detected-Intent", string(canonical.Intent))
	req.Header.Set("X-Detected-Locale", canonical.EffectiveLocale())

	httpResp, err := d.client.Do(req)
	if err != nil {
		return domain.BackendResponse{}, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	// Read one byte past the cap so an oversized body is detected and
	// surfaced rather than silently delivered truncated.
	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBackendBody+1))
	if err != nil {
		return domain.BackendResponse{}, err
	}
	if len(respBody) > maxBackendBody {
		d.logger.Error("backend response exceeds size limit",
			"service", target.Service,
			"status", httpResp.StatusCode,
			"limit_bytes", maxBackendBody)
		return domain.BackendResponse{
			StatusCode:  httpResp.StatusCode,
			Err:         true,
			ErrorKind:   domain.KindBackendError,
			ErrorDetail: "backend response exceeds size limit",
		}, nil
	}

	d.logger.Debug("backend response",
		"service", target.Service,
		"status", httpResp.StatusCode,
		"bytes", len(respBody))

	// 4xx/5xx are terminal answers from the backend, not transport
	// failures; they pass through with the original status and body.
	if httpResp.StatusCode >= http.StatusBadRequest {
		return domain.BackendResponse{
			StatusCode:  httpResp.StatusCode,
			Body:        respBody,
			Err:         true,
			ErrorKind:   domain.KindBackendError,
			ErrorDetail: domain.ErrBackendError.Error(),
		}, nil
	}

	return domain.BackendResponse{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
	}, nil
}

func (d *Dispatcher) timeoutResponse(target domain.RouteTarget, start time.Time) domain.BackendResponse {
	d.logger.Warn("inbound deadline elapsed, abandoning backend call",
		"service", target.Service)
	return domain.BackendResponse{
		StatusCode:  http.StatusGatewayTimeout,
		Latency:     time.Since(start),
		Err:         true,
		ErrorKind:   domain.KindTimeout,
		ErrorDetail: domain.ErrTimeout.Error(),
	}
}
