package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/marketplace/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*config[C])

// WithErrorHandler sets the handler for errors returned by responses,
// recovered panics and unmatched routes.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(c *config[C]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithMiddleware adds router-wide middleware.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(c *config[C]) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// WithContextFactory sets the function building the per-request context.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(c *config[C]) {
		if f != nil {
			c.newContext = f
		}
	}
}

// WithLogger sets the logger used for panics that cannot be reported to the
// client because the response was already written.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(c *config[C]) {
		if logger != nil {
			c.logger = logger
		}
	}
}
