package viewstate

import (
	"errors"
	"sync"
)

// ErrUnknownKey is returned when a List has no entry for a key.
var ErrUnknownKey = errors.New("viewstate: unknown key")

// Entry is a List element as rendered: the current value and whether it is
// still waiting for confirmation.
type Entry[V any] struct {
	Value   V
	Pending bool
}

// Change identifies one optimistic update made with List.Update.
type Change[K comparable, V any] struct {
	Key   K
	Value V
	rev   uint64
}

type item[V any] struct {
	value        V
	confirmed    V
	pendingRev   uint64
	confirmedRev uint64
}

// List is an ordered, keyed collection supporting optimistic updates.
//
// Update applies a change immediately and marks the entry pending. The
// caller then reports the outcome with Commit or Rollback. Only the newest
// pending change of an entry controls its pending marker; an older change
// that commits still advances the confirmed value a later rollback returns
// to.
type List[K comparable, V any] struct {
	mu    sync.RWMutex
	key   func(V) K
	order []K
	items map[K]*item[V]
	rev   uint64
}

// NewList creates an empty list keyed by key.
func NewList[K comparable, V any](key func(V) K) *List[K, V] {
	return &List[K, V]{key: key, items: make(map[K]*item[V])}
}

// Replace swaps the contents for a freshly loaded snapshot. Entries with a
// pending change keep their optimistic value; the snapshot becomes their
// confirmed value.
func (l *List[K, V]) Replace(values []V) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make(map[K]*item[V], len(values))
	order := make([]K, 0, len(values))
	for _, v := range values {
		k := l.key(v)
		if _, dup := items[k]; dup {
			continue
		}
		it := &item[V]{value: v, confirmed: v}
		if old, ok := l.items[k]; ok && old.pendingRev != 0 {
			it.value = old.value
			it.pendingRev = old.pendingRev
			it.confirmedRev = old.confirmedRev
		}
		items[k] = it
		order = append(order, k)
	}
	l.items = items
	l.order = order
}

// Update applies fn to the entry optimistically and marks it pending. fn
// sees the current value, optimistic changes included, and runs under the
// list lock; when it returns an error the entry is left untouched and the
// error is returned.
func (l *List[K, V]) Update(k K, fn func(V) (V, error)) (Change[K, V], error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, ok := l.items[k]
	if !ok {
		return Change[K, V]{}, ErrUnknownKey
	}
	next, err := fn(it.value)
	if err != nil {
		return Change[K, V]{}, err
	}
	l.rev++
	it.value = next
	it.pendingRev = l.rev
	return Change[K, V]{Key: k, Value: it.value, rev: l.rev}, nil
}

// Commit records that c was accepted. It reports whether the entry is no
// longer pending.
func (l *List[K, V]) Commit(c Change[K, V]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, ok := l.items[c.Key]
	if !ok {
		return false
	}
	if c.rev > it.confirmedRev {
		it.confirmed = c.Value
		it.confirmedRev = c.rev
	}
	if it.pendingRev == c.rev {
		it.pendingRev = 0
	}
	if it.pendingRev != 0 {
		return false
	}
	// a newer change may have been rolled back to an older confirmed value
	it.value = it.confirmed
	return true
}

// Rollback records that c was rejected. When c is the newest pending change
// the entry reverts to its last confirmed value, which is returned.
func (l *List[K, V]) Rollback(c Change[K, V]) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, ok := l.items[c.Key]
	if !ok || it.pendingRev != c.rev {
		var zero V
		return zero, false
	}
	it.value = it.confirmed
	it.pendingRev = 0
	return it.value, true
}

// Set applies a confirmed change to both the current and confirmed value.
func (l *List[K, V]) Set(k K, fn func(V) V) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, ok := l.items[k]
	if !ok {
		return ErrUnknownKey
	}
	it.value = fn(it.value)
	it.confirmed = fn(it.confirmed)
	return nil
}

// Remove deletes the entry for k.
func (l *List[K, V]) Remove(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[k]; !ok {
		return false
	}
	delete(l.items, k)
	for i, key := range l.order {
		if key == k {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the entry for k.
func (l *List[K, V]) Get(k K) (Entry[V], bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	it, ok := l.items[k]
	if !ok {
		return Entry[V]{}, false
	}
	return Entry[V]{Value: it.value, Pending: it.pendingRev != 0}, true
}

// Entries returns the entries in load order.
func (l *List[K, V]) Entries() []Entry[V] {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry[V], 0, len(l.order))
	for _, k := range l.order {
		it := l.items[k]
		out = append(out, Entry[V]{Value: it.value, Pending: it.pendingRev != 0})
	}
	return out
}

// Len returns the number of entries.
func (l *List[K, V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}
