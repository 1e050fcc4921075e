package api

import (
	"net/http"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// EnvelopeHTTPStatus maps a gateway envelope to the outer HTTP status
// code. Successful dispatches mirror the backend's own success status;
// BackendError envelopes pass the backend's original status through so
// the caller sees what the backend answered.
func EnvelopeHTTPStatus(env domain.GatewayEnvelope) int {
	if env.IsOK() {
		if env.BackendStatus >= http.StatusOK && env.BackendStatus < http.StatusBadRequest {
			return env.BackendStatus
		}
		return http.StatusOK
	}

	switch env.Error.Kind {
	case domain.KindDecodingError:
		return http.StatusBadRequest
	case domain.KindNoRouteFound:
		return http.StatusNotFound
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	case domain.KindServiceUnavailable:
		return http.StatusBadGateway
	case domain.KindBackendError:
		if env.BackendStatus >= http.StatusBadRequest {
			return env.BackendStatus
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
