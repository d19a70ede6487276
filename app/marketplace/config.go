package marketplace

import (
	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/core/cache"
	"github.com/dmitrymomot/marketplace/core/cookie"
	"github.com/dmitrymomot/marketplace/core/server"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/integration/backend"
	"github.com/dmitrymomot/marketplace/integration/database/redis"
)

// Config is the application configuration loaded from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"marketplace"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ProtectedPrefixes are the path prefixes that require a session.
	ProtectedPrefixes []string `env:"GUARD_PROTECTED_PREFIXES" envSeparator:"," envDefault:"/availableServices"`

	Cookie   cookie.Config
	Session  session.Config
	Server   server.Config
	Backend  backend.Config
	Cache    cache.Config
	Redis    redis.Config
	Composer composer.Config
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
