// Package cache provides a small generic key-value Store with two backends:
// an in-process LRU with TTL (hashicorp/golang-lru expirable) and Redis with
// JSON-encoded values (go-redis).
//
//	var users cache.Store[domain.User] = cache.NewLRU[domain.User](1024, 10*time.Minute)
//	users = cache.NewRedis[domain.User](client, "marketplace:user:", 10*time.Minute)
//
//	u, ok, err := users.Get(ctx, sessionKey)
//
// A miss is reported as ok=false with a nil error.
package cache
