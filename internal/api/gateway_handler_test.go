package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// fakeController records the inbound request and returns a fixed envelope.
type fakeController struct {
	lastInbound domain.InboundRequest
	calls       int
	envelope    domain.GatewayEnvelope
}

func (f *fakeController) Handle(_ context.Context, inbound domain.InboundRequest) domain.GatewayEnvelope {
	f.calls++
	f.lastInbound = inbound
	return f.envelope
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

func TestGatewayHandlerProxiesInboundRequest(t *testing.T) {
	ctrl := &fakeController{envelope: okEnvelope(http.StatusOK)}
	handler := NewGatewayHandler(ctrl, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/weather/forecast", strings.NewReader("Kakvo je vrijeme sutra?"))
	req.Header.Set("X-Locale", "hr")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, 1, ctrl.calls)
	assert.Equal(t, http.MethodPost, ctrl.lastInbound.Method)
	assert.Equal(t, "/weather/forecast", ctrl.lastInbound.Path)
	assert.Equal(t, "hr", ctrl.lastInbound.Locale)
	assert.Equal(t, "Kakvo je vrijeme sutra?", string(ctrl.lastInbound.Body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env domain.GatewayEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, domain.EnvelopeOK, env.Status)
	require.NotNil(t, env.Service)
	assert.Equal(t, "weather-service", *env.Service)
}

func TestGatewayHandlerErrorEnvelopeStatus(t *testing.T) {
	ctrl := &fakeController{envelope: errorEnvelope(domain.KindNoRouteFound, 0)}
	handler := NewGatewayHandler(ctrl, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/nothing/here", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env domain.GatewayEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, domain.EnvelopeError, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.KindNoRouteFound, env.Error.Kind)
	assert.Nil(t, env.Service)
}

func TestGatewayHandlerRejectsOversizedBody(t *testing.T) {
	ctrl := &fakeController{envelope: okEnvelope(http.StatusOK)}
	handler := NewGatewayHandler(ctrl, discardLogger())

	big := strings.Repeat("a", maxInboundBody+100)
	req := httptest.NewRequest(http.MethodPost, "/weather/forecast", strings.NewReader(big))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, ctrl.calls, "a truncated body must never enter the pipeline")

	var env domain.GatewayEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, domain.EnvelopeError, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.KindDecodingError, env.Error.Kind)
}

func TestGatewayHandlerAcceptsBodyAtLimit(t *testing.T) {
	ctrl := &fakeController{envelope: okEnvelope(http.StatusOK)}
	handler := NewGatewayHandler(ctrl, discardLogger())

	exact := strings.Repeat("a", maxInboundBody)
	req := httptest.NewRequest(http.MethodPost, "/weather/forecast", strings.NewReader(exact))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, ctrl.calls)
	assert.Len(t, ctrl.lastInbound.Body, maxInboundBody)
}

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name           string
		xLocale        string
		acceptLanguage string
		want           string
	}{
		{"explicit header wins", "HR", "en-US,en;q=0.9", "hr"},
		{"accept-language primary tag", "", "hr-HR,hr;q=0.9,en;q=0.8", "hr"},
		{"accept-language plain tag", "", "en", "en"},
		{"wildcard means unknown", "", "*", ""},
		{"nothing present", "", "", ""},
		{"underscore separator", "", "sr_RS", "sr"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.xLocale != "" {
				req.Header.Set("X-Locale", tc.xLocale)
			}
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			assert.Equal(t, tc.want, DetectLocale(req))
		})
	}
}
