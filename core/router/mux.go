package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/marketplace/core/handler"
)

// config is shared by a router and every router derived from it.
type config[C handler.Context] struct {
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

type mux[C handler.Context] struct {
	cfg         *config[C]
	tree        chi.Router
	root        chi.Router
	middlewares []handler.Middleware[C]
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	cfg := &config[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		cfg.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	tree := chi.NewRouter()
	m := &mux[C]{
		cfg:         cfg,
		tree:        tree,
		root:        tree,
		middlewares: slices.Clone(cfg.middlewares),
	}

	tree.NotFound(m.fail(ErrNotFound))
	tree.MethodNotAllowed(m.fail(ErrMethodNotAllowed))

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.root.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C])    { m.method(http.MethodGet, pattern, h) }
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C])   { m.method(http.MethodPost, pattern, h) }
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C])    { m.method(http.MethodPut, pattern, h) }
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) { m.method(http.MethodDelete, pattern, h) }
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C])  { m.method(http.MethodPatch, pattern, h) }
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C])   { m.method(http.MethodHead, pattern, h) }

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.tree.Handle(pattern, m.endpoint(h))
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	for _, method := range methods {
		m.method(strings.ToUpper(method), pattern, h)
	}
}

func (m *mux[C]) method(method, pattern string, h handler.HandlerFunc[C]) {
	if h == nil {
		panic(fmt.Errorf("%w: nil handler for %s %s", ErrInvalidPattern, method, pattern))
	}
	m.tree.Method(method, pattern, m.endpoint(h))
}

// Use appends middlewares applied to routes registered afterwards.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns a router sharing the route tree with extra middlewares.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		cfg:         m.cfg,
		tree:        m.tree,
		root:        m.root,
		middlewares: append(slices.Clone(m.middlewares), middlewares...),
	}
}

// Group calls fn with a derived router whose Use calls do not leak back.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	g := m.With()
	if fn != nil {
		fn(g)
	}
	return g
}

// Route mounts a sub-router at pattern.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w: nil route function for %s", ErrNilSubrouter, pattern))
	}
	var sub *mux[C]
	m.tree.Route(pattern, func(cr chi.Router) {
		sub = &mux[C]{
			cfg:         m.cfg,
			tree:        cr,
			root:        m.root,
			middlewares: slices.Clone(m.middlewares),
		}
		fn(sub)
	})
	return sub
}

// Routes lists registered routes, excluding internal sub-router stubs.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.root, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

// endpoint freezes the current middleware stack around h.
func (m *mux[C]) endpoint(h handler.HandlerFunc[C]) http.HandlerFunc {
	fn := handler.Chain(h, slices.Clone(m.middlewares)...)
	return func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, fn)
	}
}

// fail renders err through the error handler with router middlewares applied,
// so request IDs and logging cover 404 and 405 responses too.
func (m *mux[C]) fail(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn := handler.Chain(func(C) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return err }
		}, m.cfg.middlewares...)
		m.serve(w, r, fn)
	}
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := m.cfg.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.cfg.logger.Error("panic after response written",
					slog.Any("value", perr.value),
					slog.String("stack", string(perr.stack)),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.Int("status", ww.Status()),
				)
				return
			}
			m.cfg.errorHandler(ctx, perr)
		}
	}()

	response := fn(ctx)
	if response == nil {
		m.cfg.errorHandler(ctx, ErrNilResponse)
		return
	}
	// Middlewares may have replaced the request (SetValue), so render with the
	// context's current request rather than the original.
	if err := response(ww, ctx.Request()); err != nil {
		m.cfg.errorHandler(ctx, err)
	}
}
