package gateway

import (
	"encoding/json"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// BuildEnvelope wraps a dispatch outcome into the gateway's standardized
// response contract.
//
// A routing failure produces an error envelope with a null service. A
// successful dispatch produces an ok envelope with the backend body as
// opaque payload. A failed dispatch produces an error envelope that still
// names the attempted service, so the caller can tell "wrong destination"
// from "destination unreachable" from "destination rejected the request".
// The detected locale is always echoed.
func BuildEnvelope(
	resp domain.BackendResponse,
	canonical domain.CanonicalRequest,
	target domain.RouteTarget,
	routeErr error,
) domain.GatewayEnvelope {
	locale := canonical.EffectiveLocale()

	if routeErr != nil {
		return domain.GatewayEnvelope{
			Status: domain.EnvelopeError,
			Data:   nullPayload(),
			Error: &domain.EnvelopeErrorDetail{
				Kind:    domain.KindForError(routeErr),
				Message: routeErr.Error(),
			},
			Service: nil,
			Locale:  locale,
		}
	}

	service := target.Service
	if resp.Err {
		return domain.GatewayEnvelope{
			Status: domain.EnvelopeError,
			Data:   nullPayload(),
			Error: &domain.EnvelopeErrorDetail{
				Kind:    resp.ErrorKind,
				Message: resp.ErrorDetail,
			},
			Service:       &service,
			Locale:        locale,
			BackendStatus: resp.StatusCode,
		}
	}

	return domain.GatewayEnvelope{
		Status:        domain.EnvelopeOK,
		Data:          opaquePayload(resp.Body),
		Error:         nil,
		Service:       &service,
		Locale:        locale,
		BackendStatus: resp.StatusCode,
	}
}

// DecodingErrorEnvelope is the fail-fast envelope for bodies that are not
// valid UTF-8. These never reach the normalizer, so there is no canonical
// request to echo from; the raw locale hint is used directly.
func DecodingErrorEnvelope(locale string) domain.GatewayEnvelope {
	if locale == "" {
		locale = domain.LocaleUnknown
	}
	return domain.GatewayEnvelope{
		Status: domain.EnvelopeError,
		Data:   nullPayload(),
		Error: &domain.EnvelopeErrorDetail{
			Kind:    domain.KindDecodingError,
			Message: domain.ErrDecoding.Error(),
		},
		Service: nil,
		Locale:  locale,
	}
}

// opaquePayload passes a JSON backend body through untouched and wraps
// anything else as a JSON string, so the envelope itself is always
// well-formed JSON.
func opaquePayload(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nullPayload()
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	wrapped, err := json.Marshal(string(body))
	if err != nil {
		return nullPayload()
	}
	return wrapped
}

func nullPayload() json.RawMessage {
	return json.RawMessage("null")
}
