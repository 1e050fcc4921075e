package domain

import "errors"

// Sentinel errors for the gateway error taxonomy. Every one of these is
// recovered by the gateway controller and surfaced as an error envelope;
// none of them terminates the process.
var (
	// ErrDecoding is returned when an inbound body is not valid UTF-8 and
	// cannot be handed to the normalizer.
	ErrDecoding = errors.New("request body is not valid UTF-8")

	// ErrNoRouteFound is returned when neither a path prefix nor the
	// detected intent resolves to a backend and no fallback is configured.
	ErrNoRouteFound = errors.New("no route found for request")

	// ErrTimeout is returned when the inbound request's deadline elapses
	// before the backend call completes.
	ErrTimeout = errors.New("backend call exceeded deadline")

	// ErrServiceUnavailable is returned when all transport attempts to a
	// backend have been exhausted.
	ErrServiceUnavailable = errors.New("backend service unavailable")

	// ErrBackendError is returned when a backend answered with a non-2xx
	// status. The original status and body are preserved on the
	// BackendResponse.
	ErrBackendError = errors.New("backend returned an error status")
)

// ErrorKind identifies an entry of the gateway error taxonomy in the
// outbound envelope contract.
type ErrorKind string

// Envelope error kinds. These strings are part of the response contract
// and must not change without versioning the API.
const (
	KindDecodingError      ErrorKind = "DecodingError"
	KindNoRouteFound       ErrorKind = "NoRouteFound"
	KindTimeout            ErrorKind = "Timeout"
	KindServiceUnavailable ErrorKind = "ServiceUnavailable"
	KindBackendError       ErrorKind = "BackendError"
)

// KindForError maps a taxonomy error to its envelope kind. Unrecognized
// errors map to ServiceUnavailable as the most conservative user-visible
// classification.
func KindForError(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrDecoding):
		return KindDecodingError
	case errors.Is(err, ErrNoRouteFound):
		return KindNoRouteFound
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrBackendError):
		return KindBackendError
	default:
		return KindServiceUnavailable
	}
}
