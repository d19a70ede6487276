package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidConfig is returned for unusable backend settings.
var ErrInvalidConfig = errors.New("cache: invalid configuration")

// Store is a string-keyed cache of V.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Set(ctx context.Context, key string, value V) error
	Delete(ctx context.Context, key string) error
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and sizes the backend.
type Config struct {
	Backend string        `env:"USER_CACHE_BACKEND" envDefault:"memory"`
	Size    int           `env:"USER_CACHE_SIZE" envDefault:"1024"`
	TTL     time.Duration `env:"USER_CACHE_TTL" envDefault:"10m"`
	Prefix  string        `env:"USER_CACHE_PREFIX" envDefault:"marketplace:user:"`
}

// New builds the store selected by cfg. client is required for the redis
// backend and ignored otherwise.
func New[V any](cfg Config, client redis.UniversalClient) (Store[V], error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewLRU[V](cfg.Size, cfg.TTL), nil
	case BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis backend needs a client", ErrInvalidConfig)
		}
		return NewRedis[V](client, cfg.Prefix, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}
