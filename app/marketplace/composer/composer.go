package composer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/cache"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/session"
)

// Config sizes the workspace registry.
type Config struct {
	// MaxWorkspaces bounds the number of live sessions kept in memory.
	MaxWorkspaces int `env:"COMPOSER_MAX_WORKSPACES" envDefault:"10000"`
	// IdleTTL unmounts a workspace not used for this long.
	IdleTTL time.Duration `env:"COMPOSER_IDLE_TTL" envDefault:"30m"`
	// ReconcileTimeout bounds background backend calls of optimistic updates.
	ReconcileTimeout time.Duration `env:"COMPOSER_RECONCILE_TIMEOUT" envDefault:"10s"`
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.log = l
		}
	}
}

// Composer is the registry of session workspaces.
type Composer struct {
	cfg     Config
	backend BackendFunc
	users   cache.Store[domain.User]
	log     *slog.Logger

	mu         sync.Mutex
	workspaces *expirable.LRU[string, *Workspace]
}

// New creates a Composer. users is the current-user cache shared by every
// view of a session; entries are keyed by session.Session.Key.
func New(cfg Config, backend BackendFunc, users cache.Store[domain.User], opts ...Option) *Composer {
	if cfg.MaxWorkspaces <= 0 {
		cfg.MaxWorkspaces = 10000
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.ReconcileTimeout <= 0 {
		cfg.ReconcileTimeout = 10 * time.Second
	}
	if users == nil {
		users = cache.NewLRU[domain.User](cfg.MaxWorkspaces, cfg.IdleTTL)
	}

	c := &Composer{
		cfg:     cfg,
		backend: backend,
		users:   users,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("composer"))
	c.workspaces = expirable.NewLRU(cfg.MaxWorkspaces, func(_ string, ws *Workspace) {
		ws.unmount()
	}, cfg.IdleTTL)
	return c
}

// Workspace returns the session's workspace, mounting it on first use.
// Every call extends the workspace's idle deadline.
func (c *Composer) Workspace(s session.Session) (*Workspace, error) {
	if !s.Valid() {
		return nil, domain.ErrNoSession
	}
	key := s.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	ws, ok := c.workspaces.Get(key)
	if !ok {
		ws = newWorkspace(c, s)
		c.log.Debug("workspace mounted", logger.UserID(s.UserID))
	}
	c.workspaces.Add(key, ws)
	return ws, nil
}

// Drop unmounts the session's workspace and forgets its cached user.
// It is called at logout.
func (c *Composer) Drop(ctx context.Context, s session.Session) {
	key := s.Key()
	if key == "" {
		return
	}

	c.mu.Lock()
	c.workspaces.Remove(key)
	c.mu.Unlock()

	if err := c.users.Delete(ctx, key); err != nil {
		c.log.WarnContext(ctx, "drop cached user", logger.UserID(s.UserID), logger.Error(err))
	}
}

// Len reports the number of mounted workspaces.
func (c *Composer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workspaces.Len()
}
