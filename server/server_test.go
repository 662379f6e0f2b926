// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "ok")
})

func newTestServer(t *testing.T, allowedHosts []string, wrappers ...Wrapper) Server {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = listener.Close()
	})
	s, err := New(logging.NoLog{}, listener, Options{
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    allowedHosts,
		ShutdownTimeout: time.Second,
	}, wrappers...)
	require.NoError(t, err)
	return s
}

func serve(s Server, method, target, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if len(host) > 0 {
		req.Host = host
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestAddRoute(t *testing.T) {
	require := require.New(t)
	s := newTestServer(t, []string{"*"})

	require.NoError(s.AddRoute(okHandler, "ext", "/ping"))
	require.Error(s.AddRoute(okHandler, "ext", "/ping"))
	require.NoError(s.AddRoute(NewMetricsHandler(prometheus.NewRegistry()), "ext", "/metrics"))

	w := serve(s, http.MethodGet, "/ext/ping", "")
	require.Equal(http.StatusOK, w.Code)
	require.Equal("ok", w.Body.String())

	w = serve(s, http.MethodGet, "/ext/metrics", "")
	require.Equal(http.StatusOK, w.Code)

	w = serve(s, http.MethodGet, "/ext/missing", "")
	require.Equal(http.StatusNotFound, w.Code)
}

func TestAllowedHosts(t *testing.T) {
	require := require.New(t)
	s := newTestServer(t, []string{"localhost"})
	require.NoError(s.AddRoute(okHandler, "ext", "/ping"))

	require.Equal(http.StatusOK, serve(s, http.MethodGet, "/ext/ping", "localhost:9650").Code)
	require.Equal(http.StatusOK, serve(s, http.MethodGet, "/ext/ping", "127.0.0.1:9650").Code)
	require.Equal(http.StatusForbidden, serve(s, http.MethodGet, "/ext/ping", "evil.example:9650").Code)
}

func TestRateLimiter(t *testing.T) {
	require := require.New(t)

	require.Nil(NewRateLimiter(0, 10))
	var disabled *RateLimiter
	require.True(disabled.Allow("a", time.Now()))

	l := NewRateLimiter(1, 2)
	now := time.Unix(1_700_000_000, 0)
	require.True(l.Allow("a", now))
	require.True(l.Allow("a", now))
	require.False(l.Allow("a", now))
	require.True(l.Allow("b", now))
	require.True(l.Allow("a", now.Add(time.Second)))

	s := newTestServer(t, []string{"*"}, NewRateLimiter(1, 1))
	require.NoError(s.AddRoute(okHandler, "ext", "/ping"))
	require.Equal(http.StatusOK, serve(s, http.MethodGet, "/ext/ping", "").Code)
	require.Equal(http.StatusTooManyRequests, serve(s, http.MethodGet, "/ext/ping", "").Code)
}

func TestAddRouteWithoutBase(t *testing.T) {
	require := require.New(t)
	s := newTestServer(t, []string{"*"})

	require.NoError(s.AddRoute(okHandler, "", "/ping"))
	require.Equal(http.StatusOK, serve(s, http.MethodGet, "/ping", "").Code)
}
