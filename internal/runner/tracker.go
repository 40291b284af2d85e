package runner

import (
	"sync"
	"sync/atomic"
)

// Tracker is a counted completion barrier. Units call Emit exactly once;
// the dispatcher calls Wait, which returns after one signal per expected
// unit. Close must be called once every unit has exited so that Wait can
// detect signals that will never arrive.
type Tracker struct {
	expected int
	signals  chan struct{}
	emitted  atomic.Int64

	mu     sync.RWMutex
	closed bool

	causesMu sync.Mutex
	causes   []error
}

// NewTracker returns a tracker expecting the given number of signals.
func NewTracker(expected int) *Tracker {
	if expected < 0 {
		expected = 0
	}
	return &Tracker{
		expected: expected,
		// Buffer holds every legitimate signal so Emit never blocks.
		signals: make(chan struct{}, expected),
	}
}

// Expected returns the number of signals Wait waits for.
func (t *Tracker) Expected() int {
	return t.expected
}

// Emit records one completion. Emitting more than expected is refused with
// ErrExtraCompletion and is never counted towards Wait.
func (t *Tracker) Emit() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return ErrTrackerClosed
	}
	if t.emitted.Add(1) > int64(t.expected) {
		t.emitted.Add(-1)
		return ErrExtraCompletion
	}
	t.signals <- struct{}{}
	return nil
}

// Abandon records why a unit ended without emitting.
func (t *Tracker) Abandon(cause error) {
	if cause == nil {
		return
	}
	t.causesMu.Lock()
	t.causes = append(t.causes, cause)
	t.causesMu.Unlock()
}

// Close marks that no further signals will be emitted. It is safe to call
// more than once.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.signals)
	}
}

// Wait blocks until every expected signal is received. If the tracker is
// closed first, Wait returns a *LostCompletionError. Only one goroutine may
// call Wait.
func (t *Tracker) Wait() error {
	received := 0
	for received < t.expected {
		if _, ok := <-t.signals; !ok {
			return &LostCompletionError{
				Expected: t.expected,
				Received: received,
				Causes:   t.abandoned(),
			}
		}
		received++
	}
	return nil
}

func (t *Tracker) abandoned() []error {
	t.causesMu.Lock()
	defer t.causesMu.Unlock()
	out := make([]error, len(t.causes))
	copy(out, t.causes)
	return out
}
