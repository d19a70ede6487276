package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/marketplace/core/health"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/core/router"
)

func TestHealthHandlers(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	r := router.New[*router.Context](router.WithErrorHandler(response.ErrorHandler[*router.Context]))
	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](logger.Nop(), health.Check{Name: "backend", Fn: ok}))
	r.Get("/degraded", health.Readiness[*router.Context](logger.Nop(),
		health.Check{Name: "backend", Fn: ok},
		health.Check{Name: "cache", Fn: down},
	))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/live", http.StatusOK, "ALIVE"},
		{"/ready", http.StatusOK, "READY"},
		{"/degraded", http.StatusServiceUnavailable, "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
