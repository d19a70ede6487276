package async

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by AwaitWithTimeout when the function is still running.
var ErrTimeout = errors.New("async: timeout waiting for result")

// Future is the pending outcome of an Exec call.
type Future struct {
	err  error
	done chan struct{}
}

// Await blocks until the function returns.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout waits at most timeout for the function to return.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-f.done:
		return f.err
	case <-t.C:
		return ErrTimeout
	}
}

// Done is closed once the function has returned.
func (f *Future) Done() <-chan struct{} { return f.done }

// IsComplete reports whether the function has returned.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn(ctx, param) on a new goroutine. If ctx is already done fn is
// not called and the future completes with ctx.Err().
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.err = fn(ctx, param)
	}()

	return f
}
