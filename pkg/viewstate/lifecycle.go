package viewstate

import (
	"errors"
	"sync"
)

// ErrUnmounted is returned by Do once the lifecycle has ended.
var ErrUnmounted = errors.New("viewstate: unmounted")

// Lifecycle guards state that must not change after its owner is gone.
// The zero value is mounted.
type Lifecycle struct {
	mu        sync.Mutex
	unmounted bool
	onUnmount []func()
}

// Do runs fn while holding the lifecycle lock, unless the lifecycle has been
// unmounted. fn must not call back into the Lifecycle.
func (l *Lifecycle) Do(fn func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unmounted {
		return ErrUnmounted
	}
	fn()
	return nil
}

// Mounted reports whether Unmount has not been called yet.
func (l *Lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.unmounted
}

// OnUnmount registers fn to run once at unmount. Registering after unmount
// runs fn immediately.
func (l *Lifecycle) OnUnmount(fn func()) {
	l.mu.Lock()
	if !l.unmounted {
		l.onUnmount = append(l.onUnmount, fn)
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()
	fn()
}

// Unmount ends the lifecycle. Later calls are no-ops.
func (l *Lifecycle) Unmount() {
	l.mu.Lock()
	if l.unmounted {
		l.mu.Unlock()
		return
	}
	l.unmounted = true
	hooks := l.onUnmount
	l.onUnmount = nil
	l.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
