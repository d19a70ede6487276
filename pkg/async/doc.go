// Package async runs functions on their own goroutine and hands back a
// Future for awaiting the outcome.
//
//	f := async.Exec(ctx, req, func(ctx context.Context, req Request) error {
//		return client.Send(ctx, req)
//	})
//	if err := f.AwaitWithTimeout(time.Second); errors.Is(err, async.ErrTimeout) {
//		// still running; the result will be recorded later
//	}
//
// A Future completes exactly once. Await may be called any number of times
// from any goroutine.
package async
