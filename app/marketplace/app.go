package marketplace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/cookie"
	"github.com/dmitrymomot/marketplace/core/health"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/router"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/middleware"
)

// ErrMissingDependency is returned by New when a required collaborator is nil.
var ErrMissingDependency = errors.New("marketplace: missing dependency")

// Accounts is the unauthenticated part of the marketplace API.
type Accounts interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)
	CreateUser(ctx context.Context, u domain.NewUser) error
}

// App is the marketplace web front end.
type App struct {
	cfg       Config
	log       *slog.Logger
	cookies   *cookie.Manager
	sessions  *session.Provider
	composer  *composer.Composer
	accounts  Accounts
	checks    []health.Check
	rateLimit middleware.RateLimitConfig
	views     *views
	router    router.Router[*Context]
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithHealthChecks adds readiness probes served at /ready.
func WithHealthChecks(checks ...health.Check) Option {
	return func(a *App) {
		a.checks = append(a.checks, checks...)
	}
}

// WithRateLimit overrides the throttling of the login and sign-up forms.
func WithRateLimit(cfg middleware.RateLimitConfig) Option {
	return func(a *App) {
		a.rateLimit = cfg
	}
}

// New builds the application and its route tree.
func New(cfg Config, cookies *cookie.Manager, comp *composer.Composer, accounts Accounts, opts ...Option) (*App, error) {
	if cookies == nil || comp == nil || accounts == nil {
		return nil, ErrMissingDependency
	}

	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      logger.Nop(),
		cookies:  cookies,
		sessions: session.NewProvider(cookies, cfg.Session),
		composer: comp,
		accounts: accounts,
		views:    v,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.router = a.routes()
	return a, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Routes lists the registered routes.
func (a *App) Routes() []router.Route {
	return a.router.Routes()
}
