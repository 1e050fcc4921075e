package domain

import "encoding/json"

// EnvelopeStatus is the top-level outcome marker of a GatewayEnvelope.
type EnvelopeStatus string

// Envelope statuses.
const (
	EnvelopeOK    EnvelopeStatus = "ok"
	EnvelopeError EnvelopeStatus = "error"
)

// EnvelopeErrorDetail carries the machine-readable kind and a human
// message for error envelopes.
type EnvelopeErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// GatewayEnvelope is the single standardized response shape returned to
// every caller, regardless of success or failure. It is the only
// artifact that crosses the gateway's outbound boundary: every inbound
// request yields exactly one envelope.
type GatewayEnvelope struct {
	Status EnvelopeStatus `json:"status"`
	// Data is the backend's body as an opaque payload when the status is
	// ok, null otherwise. Non-JSON backend bodies are wrapped as a JSON
	// string so the envelope itself stays well-formed.
	Data json.RawMessage `json:"data"`
	// Error is populated only for error envelopes.
	Error *EnvelopeErrorDetail `json:"error"`
	// Service names the backend that handled (or was attempted for) the
	// request; null when routing never resolved a target.
	Service *string `json:"service"`
	// Locale echoes the detected locale of the request, or "unknown".
	Locale string `json:"locale"`
	// BackendStatus preserves the backend's original HTTP status for
	// BackendError envelopes. It is internal plumbing for the HTTP layer
	// and not part of the serialized contract.
	BackendStatus int `json:"-"`
}

// IsOK reports whether the envelope represents a successful dispatch.
func (e GatewayEnvelope) IsOK() bool {
	return e.Status == EnvelopeOK
}
