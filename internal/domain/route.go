package domain

import "time"

// RouteTarget describes a backend service a request can be dispatched to.
// Targets are built once from configuration and are read-only during
// request processing, so unsynchronized concurrent reads are safe.
type RouteTarget struct {
	// Service is the backend's identifier, echoed in the envelope so the
	// caller always knows which backend handled (or failed) the request.
	Service string
	// BaseURL is the backend's base URL; the original request path is
	// appended verbatim.
	BaseURL string
	// Timeout is the per-attempt budget for one outbound call.
	Timeout time.Duration
	// RetryCount is the number of additional transport attempts after the
	// first. The dispatcher issues at most RetryCount+1 attempts.
	RetryCount int
	// ForwardCanonical opts the backend into receiving the normalized
	// text instead of the original payload. Off by default: silently
	// rewriting farmer-submitted text could lose information.
	ForwardCanonical bool
}

// BackendResponse is the dispatcher's outcome for a single request. It is
// always a plain return value; transport failures set Err rather than
// surfacing as a Go error, and the caller must check the flag.
type BackendResponse struct {
	StatusCode int
	Body       []byte
	Latency    time.Duration
	// Err marks the response as a failure outcome. When set, ErrorKind
	// and ErrorDetail describe what went wrong.
	Err         bool
	ErrorKind   ErrorKind
	ErrorDetail string
}
