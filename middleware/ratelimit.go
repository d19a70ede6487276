package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/response"
)

// RateLimitConfig configures the per-key token bucket limiter.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Rate is the refill rate (default: 10 per minute)
	Rate rate.Limit
	// Burst is the bucket size (default: 5)
	Burst int
	// KeyExtractor picks the bucket for a request (default: client IP)
	KeyExtractor func(ctx handler.Context) string
	// MaxKeys bounds the number of tracked buckets (default: 10000)
	MaxKeys int
	// IdleTTL drops buckets this long after they were created (default: 10m)
	IdleTTL time.Duration
}

// RateLimit throttles requests per client IP with the default settings.
func RateLimit[C handler.Context]() handler.Middleware[C] {
	return RateLimitWithConfig[C](RateLimitConfig{})
}

// RateLimitWithConfig is RateLimit with custom settings. Rejected requests
// get 429 with a Retry-After header.
func RateLimitWithConfig[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Rate <= 0 {
		cfg.Rate = rate.Every(6 * time.Second)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = GetClientIP
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 10000
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}

	buckets := newLimiterSet(cfg)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := buckets.get(cfg.KeyExtractor(ctx)).Reserve()
			if delay := r.Delay(); delay > 0 {
				r.Cancel()
				retry := strconv.Itoa(int(math.Ceil(delay.Seconds())))
				return func(w http.ResponseWriter, req *http.Request) error {
					w.Header().Set("Retry-After", retry)
					return response.ErrTooManyRequests
				}
			}
			return next(ctx)
		}
	}
}

type limiterSet struct {
	cfg   RateLimitConfig
	mu    sync.Mutex
	cache *expirable.LRU[string, *rate.Limiter]
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		cfg:   cfg,
		cache: expirable.NewLRU[string, *rate.Limiter](cfg.MaxKeys, nil, cfg.IdleTTL),
	}
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.cache.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(s.cfg.Rate, s.cfg.Burst)
	s.cache.Add(key, l)
	return l
}
