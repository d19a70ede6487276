package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/core/config"
)

type backendConfig struct {
	URL     string        `env:"TEST_BACKEND_URL,required"`
	Timeout time.Duration `env:"TEST_BACKEND_TIMEOUT" envDefault:"5s"`
}

type missingConfig struct {
	Secret string `env:"TEST_CONFIG_UNSET_SECRET,required"`
}

// Tests in this file mutate the environment and the package cache, so they
// do not run in parallel.

func TestLoad(t *testing.T) {
	config.Reset()
	t.Setenv("TEST_BACKEND_URL", "http://localhost:8000/")

	var cfg backendConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "http://localhost:8000/", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("TEST_BACKEND_URL", "http://changed/")
		var again backendConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "http://localhost:8000/", again.URL)
	})
}

func TestLoadRequiredMissing(t *testing.T) {
	config.Reset()

	var cfg missingConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_CONFIG_UNSET_SECRET")

	assert.Panics(t, func() { config.MustLoad(&missingConfig{}) })
}

func TestLoadRejectsNonStruct(t *testing.T) {
	var n int
	assert.ErrorIs(t, config.Load(&n), config.ErrNotPointer)
}
