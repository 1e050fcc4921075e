package dispatch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaolo/agri-gateway/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCanonical(method, path string, body []byte) domain.CanonicalRequest {
	return domain.CanonicalRequest{
		Method:         method,
		Path:           path,
		Header:         http.Header{"Content-Type": []string{"text/plain"}},
		Body:           body,
		NormalizedText: "kakvo je vrijeme sutra",
		Intent:         domain.IntentWeather,
		Locale:         "hr",
	}
}

func targetFor(srv *httptest.Server, retries int) domain.RouteTarget {
	return domain.RouteTarget{
		Service:    "weather",
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		RetryCount: retries,
	}
}

func TestDispatchSuccess(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"forecast":"sunny"}`))
	}))
	defer srv.Close()

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), targetFor(srv, 0), testCanonical("POST", "/weather/forecast", []byte("Kakvo je vrijeme sutra?")))

	assert.False(t, resp.Err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"forecast":"sunny"}`, string(resp.Body))
	assert.Greater(t, resp.Latency, time.Duration(0))

	// Original payload forwarded verbatim, pipeline metadata in headers.
	assert.Equal(t, "Kakvo je vrijeme sutra?", string(gotBody))
	assert.Equal(t, "text/plain", gotHeader.Get("Content-Type"))
	assert.Equal(t, "weather", gotHeader.Get("X-Detected-Intent"))
	assert.Equal(t, "hr", gotHeader.Get("X-Detected-Locale"))
	assert.NotEmpty(t, gotHeader.Get("X-Request-Id"))
}

func TestDispatchForwardCanonical(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	target := targetFor(srv, 0)
	target.ForwardCanonical = true

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), target, testCanonical("POST", "/weather/forecast", []byte("Kakvo je vrijeme sutra?")))

	assert.False(t, resp.Err)
	assert.Equal(t, "kakvo je vrijeme sutra", string(gotBody), "opted-in backend receives canonical text")
}

func TestDispatchBackendErrorIsTerminal(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), targetFor(srv, 2), testCanonical("GET", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindBackendError, resp.ErrorKind)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "original status preserved")
	assert.Contains(t, string(resp.Body), "not here", "original body preserved")
	assert.Equal(t, int32(1), attempts.Load(), "backend error statuses are never retried")
}

func TestDispatchRetriesExhaustedOnTimeout(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	target := targetFor(srv, 2)
	target.Timeout = 30 * time.Millisecond

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), target, testCanonical("GET", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindServiceUnavailable, resp.ErrorKind)
	assert.Equal(t, int32(3), attempts.Load(), "exactly retry_count+1 transport attempts")
}

func TestDispatchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), targetFor(srv, 1), testCanonical("GET", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindServiceUnavailable, resp.ErrorKind)
	assert.NotEmpty(t, resp.ErrorDetail)
}

func TestDispatchRetryResendsIdenticalContent(t *testing.T) {
	var bodies [][]byte
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, body)
		if calls.Add(1) == 1 {
			// Kill the connection so the client sees a transport fault.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), targetFor(srv, 1), testCanonical("POST", "/weather/forecast", []byte("original text")))

	assert.False(t, resp.Err)
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1], "each retry uses unmodified request content")
}

func TestDispatchUnconstructableRequestFailsOnce(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}))
	defer srv.Close()

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), targetFor(srv, 3), testCanonical("BAD METHOD", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindServiceUnavailable, resp.ErrorKind)
	assert.NotEmpty(t, resp.ErrorDetail)
	assert.Equal(t, int32(0), attempts.Load(), "a request that can never be built must not burn attempts")
}

func TestDispatchOversizedBackendBodyIsSurfaced(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusOK)
		chunk := make([]byte, 64<<10)
		for written := 0; written <= maxBackendBody; written += len(chunk) {
			_, _ = w.Write(chunk)
		}
	}))
	defer srv.Close()

	d := New(testLogger())
	resp := d.Dispatch(context.Background(), targetFor(srv, 2), testCanonical("GET", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindBackendError, resp.ErrorKind)
	assert.Equal(t, "backend response exceeds size limit", resp.ErrorDetail)
	assert.Empty(t, resp.Body, "a truncated payload must never be delivered as data")
	assert.Equal(t, int32(1), attempts.Load(), "an oversized answer is terminal, not a transport fault")
}

func TestDispatchInboundDeadlineYieldsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	d := New(testLogger())
	resp := d.Dispatch(ctx, targetFor(srv, 3), testCanonical("GET", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindTimeout, resp.ErrorKind, "caller must still get a response after cancellation")
}

func TestDispatchAlreadyCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no attempt should reach the backend")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(testLogger())
	resp := d.Dispatch(ctx, targetFor(srv, 2), testCanonical("GET", "/weather/forecast", nil))

	assert.True(t, resp.Err)
	assert.Equal(t, domain.KindTimeout, resp.ErrorKind)
}
