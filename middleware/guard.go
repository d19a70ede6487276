package middleware

import (
	"log/slog"

	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

// GuardConfig configures the route guard.
type GuardConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Policy decides each navigation (default: accesspolicy.Default())
	Policy *accesspolicy.Policy
	// Logger receives redirect decisions at debug level
	Logger *slog.Logger
}

// Guard evaluates the access policy for every request before any page
// handler runs. It relies on the Session middleware having run first; a
// missing session counts as anonymous.
func Guard[C handler.Context](policy *accesspolicy.Policy, log *slog.Logger) handler.Middleware[C] {
	return GuardWithConfig[C](GuardConfig{Policy: policy, Logger: log})
}

// GuardWithConfig is Guard with custom settings.
func GuardWithConfig[C handler.Context](cfg GuardConfig) handler.Middleware[C] {
	if cfg.Policy == nil {
		cfg.Policy = accesspolicy.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			s, _ := SessionFrom(ctx)
			path := ctx.Request().URL.Path
			d := cfg.Policy.Evaluate(path, s.HasToken())
			if d.Allowed() {
				return next(ctx)
			}

			cfg.Logger.DebugContext(ctx, "route guard redirect",
				logger.Component("guard"),
				slog.String("rule", d.Rule),
				logger.Path(path),
				slog.String("location", d.Location),
			)
			return response.Redirect(d.Location)
		}
	}
}
