package pool

import "sync"

// Locked guards a Pool with a mutex so several goroutines can share it.
// Hooks and observers run while the lock is held.
type Locked[T any] struct {
	mu    sync.Mutex
	inner *Pool[T]
}

// NewLocked builds a Pool from cfg and wraps it.
func NewLocked[T any](cfg Config[T]) (*Locked[T], error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Locked[T]{inner: p}, nil
}

// Checkout is Pool.Checkout under the lock.
func (l *Locked[T]) Checkout() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Checkout()
}

// Return is Pool.Return under the lock.
func (l *Locked[T]) Return(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Return(v)
}

// Stats is Pool.Stats under the lock.
func (l *Locked[T]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Stats()
}

// Name returns the wrapped pool's label.
func (l *Locked[T]) Name() string { return l.inner.Name() }
