package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/config"
	otelMocks "taskboard/infras/otel/mocks"
	"taskboard/transport/http/middleware"
	"taskboard/transport/http/router"

	"github.com/stretchr/testify/assert"
)

func newTestServer() *HTTP {
	cfg := &config.Config{}
	cfg.App.Name = "taskboard"

	otl := otelMocks.NewOtel()

	return New(cfg, router.New(router.DomainHandlers{}), middleware.NewAppMiddleware(otl, cfg, nil), nil, otl)
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer()
	handler := server.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	server.setState(ServerStateInGracePeriod)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVER PREPARING TO SHUT DOWN", rec.Body.String())
}

func TestHandler_IsBuiltOnce(t *testing.T) {
	server := newTestServer()

	assert.Same(t, server.Handler(), server.Handler())
	assert.Equal(t, ServerStateReady, server.State())
}
