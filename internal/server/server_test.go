package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/pathfinder/internal/config"
	"github.com/vanshika/pathfinder/internal/logging"
	"github.com/vanshika/pathfinder/internal/service"
)

func TestNew_AppliesHTTPConfig(t *testing.T) {
	cfg := config.Default().HTTP
	cfg.Host, cfg.Port = "127.0.0.1", 6001
	cfg.ReadHeaderTimeout = 3 * time.Second

	srv := New(logging.Discard(), cfg, http.NotFoundHandler())

	assert.Equal(t, "127.0.0.1:6001", srv.httpServer.Addr)
	assert.Equal(t, 3*time.Second, srv.httpServer.ReadHeaderTimeout)
	assert.Equal(t, cfg.ReadTimeout, srv.httpServer.ReadTimeout)
	assert.NotNil(t, srv.httpServer.ErrorLog)
}

func TestNew_CapsRequestBodies(t *testing.T) {
	logger := logging.Discard()
	routes := NewRouteHandlers(logger, service.NewRouteService(service.Settings{}, nil), nil, HandlerOptions{})
	cfg := config.Default().HTTP
	cfg.MaxBodyBytes = 64

	srv := New(logger, cfg, NewRouter(logger, RouterDependencies{Routes: routes}))

	small := `{"nodes":2,"edges":[],"start_node":"1"}`
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dijkstra", strings.NewReader(small)))
	assert.Equal(t, http.StatusOK, rec.Code)

	large := `{"nodes":2,"edges":[` + strings.Repeat(`{"source":"1","target":"2","weight":1},`, 10) + `{"source":"1","target":"2","weight":1}],"start_node":"1"}`
	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dijkstra", strings.NewReader(large)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body too large")
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(logging.Discard(), config.Default().HTTP, NewRouter(logging.Discard(), RouterDependencies{}))
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}
