package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = map[reflect.Type]any{}
)

// ErrNotPointer is returned when the load target is not a pointer to a struct.
var ErrNotPointer = errors.New("config: target must be a non-nil pointer to a struct")

// Load parses environment variables into cfg.
func Load[T any](cfg *T) error {
	if cfg == nil || reflect.TypeOf(*cfg).Kind() != reflect.Struct {
		return ErrNotPointer
	}

	// A missing .env file is the normal case in production.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	typ := reflect.TypeOf(*cfg)

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}
	cache[typ] = parsed
	*cfg = parsed
	return nil
}

// MustLoad is Load that panics on error. Intended for main.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops cached values so tests can reload with a different environment.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
