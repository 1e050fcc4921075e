package domain

import (
	"net/http"
	"unicode/utf8"
)

// Intent is a coarse classification of a request's purpose, derived from
// the canonical text. The set of intents is fixed; anything the rule
// table does not recognize classifies as IntentUnknown, which is a valid
// terminal value and not an error.
type Intent string

// The fixed intent set.
const (
	IntentWeather       Intent = "weather"
	IntentPricing       Intent = "pricing"
	IntentPestControl   Intent = "pest_control"
	IntentPlanting      Intent = "planting"
	IntentFertilization Intent = "fertilization"
	IntentIrrigation    Intent = "irrigation"
	IntentUnknown       Intent = "unknown"
)

// LocaleUnknown is echoed in the envelope when no locale was detected.
const LocaleUnknown = "unknown"

// InboundRequest is the immutable record created at ingress. It lives for
// the duration of one gateway pipeline run and is never persisted.
type InboundRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
	// Locale is the detected locale hint, empty when undetected.
	Locale string
}

// NewInboundRequest captures the structural fields of an HTTP request
// together with its already-read body. Header keys keep net/http's
// canonical form, which makes lookups case-insensitive.
func NewInboundRequest(method, path string, header http.Header, body []byte, locale string) InboundRequest {
	return InboundRequest{
		Method: method,
		Path:   path,
		Header: header.Clone(),
		Locale: locale,
		Body:   body,
	}
}

// ValidBody reports whether the raw body is valid UTF-8 text. Bodies that
// fail this check must be rejected with a DecodingError envelope before
// the normalizer ever sees them.
func (r InboundRequest) ValidBody() bool {
	return utf8.Valid(r.Body)
}

// CanonicalRequest is derived from an InboundRequest by the normalizer.
// It carries the canonical text and detected intent alongside a copy of
// the structural fields. Values flow forward through the pipeline; a
// CanonicalRequest is never mutated after creation.
type CanonicalRequest struct {
	Method string
	Path   string
	Header http.Header
	// Body is the original, unrewritten payload. Normalization is a
	// routing and intent aid; backends receive the original text unless
	// they opt into canonical forwarding on their RouteTarget.
	Body []byte
	// NormalizedText is the canonical form of the body text: lowercased,
	// diacritic-restored, synonym-resolved.
	NormalizedText string
	Intent         Intent
	Locale         string
}

// EffectiveLocale returns the detected locale, or LocaleUnknown when
// detection yielded nothing.
func (c CanonicalRequest) EffectiveLocale() string {
	if c.Locale == "" {
		return LocaleUnknown
	}
	return c.Locale
}
