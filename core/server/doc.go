// Package server runs an http.Server with graceful shutdown, designed to be
// driven by errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Run returns once ctx is cancelled and in-flight requests have drained or the
// shutdown timeout expired.
package server
