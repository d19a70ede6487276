package middleware

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/session"
)

// SessionLoader reads the session carried by a request.
type SessionLoader interface {
	Load(r *http.Request) session.Session
}

// Session loads the caller's session once per request and injects it into
// the request context. Downstream code reads it with SessionFrom or
// session.FromContext and never touches the session cookies directly.
func Session[C handler.Context](loader SessionLoader) handler.Middleware[C] {
	if loader == nil {
		panic("session middleware: loader is required")
	}
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			ctx.SetValue(session.ContextKey{}, loader.Load(ctx.Request()))
			return next(ctx)
		}
	}
}

// SessionFrom returns the session injected by Session. The second value is
// false when the middleware did not run.
func SessionFrom(ctx handler.Context) (session.Session, bool) {
	return session.FromContext(ctx)
}
