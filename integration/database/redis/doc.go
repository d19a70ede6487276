// Package redis connects to Redis with retries and exposes a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	health.Check{Name: "redis", Fn: redis.Healthcheck(client)}
//
// Connect parses REDIS_URL (redis:// or rediss://), then pings until the
// server answers, RetryAttempts run out or ConnectTimeout elapses.
package redis
