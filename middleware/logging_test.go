package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/core/router"
	"github.com/dmitrymomot/marketplace/middleware"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) entry(t *testing.T) map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b.buf.Bytes(), &m))
	return m
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resp   handler.Response
		status float64
		level  string
	}{
		{name: "ok", resp: response.String("hi"), status: 200, level: "INFO"},
		{name: "client error", resp: response.StringWithStatus("no", http.StatusNotFound), status: 404, level: "WARN"},
		{name: "handler error", resp: response.Error(errors.New("boom")), status: 500, level: "ERROR"},
		{name: "http error", resp: response.Error(response.ErrForbidden), status: 403, level: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &syncBuffer{}
			log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))

			r := router.New[*router.Context]()
			r.Use(
				middleware.RequestID[*router.Context](),
				middleware.LoggingWithLogger[*router.Context](log),
			)
			r.Get("/path", func(*router.Context) handler.Response { return tt.resp })

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/path", nil))

			entry := buf.entry(t)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.status, entry["status_code"])
			assert.Equal(t, "/path", entry["path"])
			assert.Equal(t, "http", entry["component"])
			assert.NotEmpty(t, entry["request_id"])
		})
	}
}

func TestLoggingSkip(t *testing.T) {
	t.Parallel()

	buf := &syncBuffer{}
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(buf))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger: log,
		Skip:   func(ctx handler.Context) bool { return ctx.Request().URL.Path == "/live" },
	}))
	r.Get("/live", func(*router.Context) handler.Response { return response.NoContent() })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	buf.mu.Lock()
	defer buf.mu.Unlock()
	assert.Zero(t, buf.buf.Len())
}
