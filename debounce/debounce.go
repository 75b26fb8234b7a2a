// Package debounce collapses a rapidly-changing value into a settled
// one that only updates after a quiet period with no further changes.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds the latest input value and emits it once no new
// update has arrived for the quiet period. Each update cancels and
// restarts the pending timer. No I/O happens here.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	seq     uint64
	latest  T
	settled T
	pending bool
	stopped bool
	emit    func(T)
}

// New creates a Debouncer that calls emit with the settled value.
// emit may be nil when callers only poll Settled().
func New[T any](quiet time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		quiet: quiet,
		emit:  emit,
	}
}

// Update records a new input value and restarts the quiet-period
// timer.
func (d *Debouncer[T]) Update(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.latest = value
	d.pending = true

	// Stop cannot cancel a callback that already left the timer; the
	// sequence check in fire is what actually invalidates it.
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(seq) })
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.settled = d.latest
	d.pending = false
	value := d.settled
	emit := d.emit
	d.mu.Unlock()

	if emit != nil {
		emit(value)
	}
}

// Settled returns the last emitted value.
func (d *Debouncer[T]) Settled() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Pending reports whether an update has been observed but its quiet
// period has not yet elapsed.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending timer without emitting. The debouncer is
// unusable afterwards.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
