package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/router"
)

type appContext struct {
	*router.Context
	Tenant string
}

func text(body string) handler.Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		_, err := w.Write([]byte(body))
		return err
	}
}

func tag(name string) handler.Middleware[*router.Context] {
	return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.ResponseWriter().Header().Add("X-Trace", name)
			return next(ctx)
		}
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouterDispatch(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/bookings/{id}", func(ctx *router.Context) handler.Response {
		return text("booking " + ctx.Param("id"))
	})
	r.Post("/bookings", func(ctx *router.Context) handler.Response {
		return text("created")
	})

	t.Run("path parameter", func(t *testing.T) {
		t.Parallel()
		rec := serve(r, http.MethodGet, "/bookings/b-42")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "booking b-42", rec.Body.String())
	})

	t.Run("method routing", func(t *testing.T) {
		t.Parallel()
		rec := serve(r, http.MethodPost, "/bookings")
		assert.Equal(t, "created", rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		rec := serve(r, http.MethodGet, "/missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		rec := serve(r, http.MethodDelete, "/bookings")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestRouterErrorHandling(t *testing.T) {
	t.Parallel()

	var got []error
	r := router.New[*router.Context](router.WithErrorHandler(func(ctx *router.Context, err error) {
		got = append(got, err)
		http.Error(ctx.ResponseWriter(), "handled", router.StatusCode(err))
	}))

	r.Get("/fail", func(ctx *router.Context) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return errors.New("boom") }
	})
	r.Get("/nil", func(ctx *router.Context) handler.Response { return nil })
	r.Get("/panic", func(ctx *router.Context) handler.Response { panic("kaboom") })

	rec := serve(r, http.MethodGet, "/fail")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "handled\n", rec.Body.String())

	rec = serve(r, http.MethodGet, "/nil")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(r, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Len(t, got, 4)
	assert.EqualError(t, got[0], "boom")
	assert.ErrorIs(t, got[1], router.ErrNilResponse)

	var perr router.PanicError
	require.ErrorAs(t, got[2], &perr)
	assert.Equal(t, "kaboom", perr.Value())
	assert.NotEmpty(t, perr.Stack())

	assert.ErrorIs(t, got[3], router.ErrNotFound)
}

func TestRouterMiddlewareScopes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](router.WithMiddleware(tag("global")))
	r.Get("/plain", func(*router.Context) handler.Response { return text("ok") })

	r.Group(func(g router.Router[*router.Context]) {
		g.Use(tag("group"))
		g.Get("/grouped", func(*router.Context) handler.Response { return text("ok") })
	})

	r.With(tag("inline")).Get("/inline", func(*router.Context) handler.Response { return text("ok") })

	r.Route("/api", func(sub router.Router[*router.Context]) {
		sub.Use(tag("api"))
		sub.Get("/", func(*router.Context) handler.Response { return text("api root") })
		sub.Get("/items/{id}", func(ctx *router.Context) handler.Response { return text(ctx.Param("id")) })
	})

	tests := []struct {
		path  string
		trace []string
		body  string
	}{
		{"/plain", []string{"global"}, "ok"},
		{"/grouped", []string{"global", "group"}, "ok"},
		{"/inline", []string{"global", "inline"}, "ok"},
		{"/api", []string{"global", "api"}, "api root"},
		{"/api/items/7", []string{"global", "api"}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := serve(r, http.MethodGet, tt.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.trace, rec.Header().Values("X-Trace"))
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}

	t.Run("global middleware covers not found", func(t *testing.T) {
		t.Parallel()
		rec := serve(r, http.MethodGet, "/absent")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, []string{"global"}, rec.Header().Values("X-Trace"))
	})

	t.Run("routes are listed", func(t *testing.T) {
		t.Parallel()
		var patterns []string
		for _, rt := range r.Routes() {
			patterns = append(patterns, rt.Method+" "+rt.Pattern)
		}
		joined := strings.Join(patterns, ",")
		assert.Contains(t, joined, "GET /plain")
		assert.Contains(t, joined, "GET /api/items/{id}")
	})
}

func TestRouterCustomContext(t *testing.T) {
	t.Parallel()

	r := router.New[*appContext](router.WithContextFactory(func(w http.ResponseWriter, req *http.Request) *appContext {
		return &appContext{Context: router.NewContext(w, req), Tenant: req.Header.Get("X-Tenant")}
	}))
	r.Get("/whoami", func(ctx *appContext) handler.Response {
		return text(ctx.Tenant)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Tenant", "jaipur")
	r.ServeHTTP(rec, req)

	assert.Equal(t, "jaipur", rec.Body.String())
}

func TestRouterRequiresFactoryForCustomContext(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, router.ErrNoContextFactory, func() {
		router.New[*appContext]()
	})
}

type ctxKey struct{}

func TestContextSetValue(t *testing.T) {
	t.Parallel()

	setter := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.SetValue(ctxKey{}, "from-middleware")
			return next(ctx)
		}
	}

	r := router.New[*router.Context](router.WithMiddleware(setter))
	r.Get("/", func(ctx *router.Context) handler.Response {
		var _ context.Context = ctx
		return func(w http.ResponseWriter, req *http.Request) error {
			_, err := w.Write([]byte(req.Context().Value(ctxKey{}).(string)))
			return err
		}
	})

	rec := serve(r, http.MethodGet, "/")
	assert.Equal(t, "from-middleware", rec.Body.String())
}

func TestDefaultErrorHandlerUsesStatusCode(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/teapot", func(*router.Context) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return teapotError{} }
	})

	rec := serve(r, http.MethodGet, "/teapot")
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

type teapotError struct{}

func (teapotError) Error() string   { return "teapot" }
func (teapotError) StatusCode() int { return http.StatusTeapot }
