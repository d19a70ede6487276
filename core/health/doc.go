// Package health provides liveness and readiness handlers.
//
//	r.Get("/live", health.Liveness[*app.Context])
//	r.Get("/ready", health.Readiness[*app.Context](log,
//		health.Check{Name: "backend", Fn: api.Ping},
//		health.Check{Name: "cache", Fn: cache.Ping},
//	))
//
// Readiness runs every check concurrently and answers 503 when any fails.
package health
