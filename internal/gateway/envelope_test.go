package gateway

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaolo/agri-gateway/internal/domain"
)

func TestBuildEnvelopeRoutingFailure(t *testing.T) {
	canonical := domain.CanonicalRequest{Path: "/unknown/endpoint", Locale: "hr"}
	routeErr := fmt.Errorf("%w: path=/unknown/endpoint", domain.ErrNoRouteFound)

	env := BuildEnvelope(domain.BackendResponse{}, canonical, domain.RouteTarget{}, routeErr)

	assert.Equal(t, domain.EnvelopeError, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.KindNoRouteFound, env.Error.Kind)
	assert.Nil(t, env.Service, "service must be null when routing never resolved")
	assert.Equal(t, "hr", env.Locale)
	assert.Equal(t, "null", string(env.Data))
}

func TestBuildEnvelopeDispatchSuccess(t *testing.T) {
	canonical := domain.CanonicalRequest{Locale: "hr"}
	target := domain.RouteTarget{Service: "weather"}
	resp := domain.BackendResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"forecast":"sunny","temp_c":24}`),
	}

	env := BuildEnvelope(resp, canonical, target, nil)

	assert.Equal(t, domain.EnvelopeOK, env.Status)
	assert.Nil(t, env.Error)
	require.NotNil(t, env.Service)
	assert.Equal(t, "weather", *env.Service)
	assert.JSONEq(t, `{"forecast":"sunny","temp_c":24}`, string(env.Data))
	assert.Equal(t, http.StatusOK, env.BackendStatus)
}

func TestBuildEnvelopeNonJSONBodyWrapped(t *testing.T) {
	resp := domain.BackendResponse{StatusCode: http.StatusOK, Body: []byte("plain text answer")}
	env := BuildEnvelope(resp, domain.CanonicalRequest{}, domain.RouteTarget{Service: "advisor"}, nil)

	assert.Equal(t, domain.EnvelopeOK, env.Status)
	assert.Equal(t, `"plain text answer"`, string(env.Data), "non-JSON bodies become a JSON string")
}

func TestBuildEnvelopeEmptyBody(t *testing.T) {
	resp := domain.BackendResponse{StatusCode: http.StatusNoContent}
	env := BuildEnvelope(resp, domain.CanonicalRequest{}, domain.RouteTarget{Service: "advisor"}, nil)

	assert.Equal(t, domain.EnvelopeOK, env.Status)
	assert.Equal(t, "null", string(env.Data))
}

func TestBuildEnvelopeDispatchFailureNamesService(t *testing.T) {
	canonical := domain.CanonicalRequest{Locale: "hr"}
	target := domain.RouteTarget{Service: "market"}
	resp := domain.BackendResponse{
		StatusCode:  http.StatusNotFound,
		Body:        []byte("not here"),
		Err:         true,
		ErrorKind:   domain.KindBackendError,
		ErrorDetail: "backend returned an error status",
	}

	env := BuildEnvelope(resp, canonical, target, nil)

	assert.Equal(t, domain.EnvelopeError, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.KindBackendError, env.Error.Kind)
	require.NotNil(t, env.Service, "the caller must learn which service was attempted")
	assert.Equal(t, "market", *env.Service)
	assert.Equal(t, http.StatusNotFound, env.BackendStatus, "original status preserved")
}

func TestBuildEnvelopeLocaleEcho(t *testing.T) {
	env := BuildEnvelope(domain.BackendResponse{}, domain.CanonicalRequest{}, domain.RouteTarget{Service: "x"}, nil)
	assert.Equal(t, domain.LocaleUnknown, env.Locale, "undetected locale is echoed as unknown")

	env = BuildEnvelope(domain.BackendResponse{}, domain.CanonicalRequest{Locale: "sl"}, domain.RouteTarget{Service: "x"}, nil)
	assert.Equal(t, "sl", env.Locale)
}

func TestDecodingErrorEnvelope(t *testing.T) {
	env := DecodingErrorEnvelope("")
	assert.Equal(t, domain.EnvelopeError, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.KindDecodingError, env.Error.Kind)
	assert.Nil(t, env.Service)
	assert.Equal(t, domain.LocaleUnknown, env.Locale)

	assert.Equal(t, "hr", DecodingErrorEnvelope("hr").Locale)
}
