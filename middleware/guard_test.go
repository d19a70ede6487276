package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/core/router"
	"github.com/dmitrymomot/marketplace/middleware"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

func newGuardedRouter() router.Router[*router.Context] {
	r := router.New[*router.Context](router.WithMiddleware(
		middleware.Session[*router.Context](headerSessions{}),
		middleware.Guard[*router.Context](accesspolicy.Default(), logger.Nop()),
	))
	ok := func(*router.Context) handler.Response { return response.String("page") }
	r.Get("/login", ok)
	r.Get("/signUp", ok)
	r.Route("/availableServices", func(r router.Router[*router.Context]) {
		r.Get("/", ok)
		r.Get("/bookings", ok)
	})
	return r
}

func TestGuard(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter()

	tests := []struct {
		name     string
		path     string
		token    string
		status   int
		location string
	}{
		{name: "anonymous on protected page", path: "/availableServices", status: http.StatusFound, location: "/login"},
		{name: "anonymous on nested page", path: "/availableServices/bookings", status: http.StatusFound, location: "/login"},
		{name: "anonymous query mention", path: "/login?next=/availableServices", status: http.StatusOK},
		{name: "anonymous on login", path: "/login", status: http.StatusOK},
		{name: "session on login", path: "/login", token: "t", status: http.StatusFound, location: "/availableServices"},
		{name: "session on signup", path: "/signUp", token: "t", status: http.StatusFound, location: "/availableServices"},
		{name: "session on protected page", path: "/availableServices/bookings", token: "t", status: http.StatusOK},
		{name: "anonymous on unknown protected path", path: "/availableServices/missing", status: http.StatusFound, location: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("X-Test-Token", tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestGuardHTMXRedirect(t *testing.T) {
	t.Parallel()

	r := newGuardedRouter()

	req := httptest.NewRequest(http.MethodGet, "/availableServices", nil)
	req.Header.Set(response.HeaderHXRequest, "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/login", w.Header().Get(response.HeaderHXLocation))
}
