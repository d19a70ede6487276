package backend

import "time"

// Config holds the backend connection settings.
type Config struct {
	BaseURL string        `env:"BACKEND_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}
