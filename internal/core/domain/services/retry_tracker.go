package services

import (
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// RetryStatus is a read-only snapshot of an order's retry tracking state,
// exposed to operator dashboards.
type RetryStatus struct {
	Attempts       int
	FirstAttemptAt *time.Time
	Age            time.Duration
}

type retryEntry struct {
	attempts       int
	firstAttemptAt time.Time
}

// RetryTracker remembers, per order, how many assignment attempts the
// unassigned-order retry loop has made and when it first saw the order.
// Entries are created on first observation and removed on success, on
// give-up, or by an explicit Clear when a human resolves the order manually.
//
// State is process-local: a restart resets the counters, which is an
// accepted trade-off because the loop re-discovers eligible orders from the
// order store on its next tick.
type RetryTracker struct {
	mu      sync.Mutex
	entries map[kernel.UUID]*retryEntry
}

// NewRetryTracker creates an empty tracker.
func NewRetryTracker() *RetryTracker {
	return &RetryTracker{
		entries: make(map[kernel.UUID]*retryEntry),
	}
}

// Observe returns the order's current tracking state, creating it with
// firstAttemptAt=now on first sight. The first-seen time is recorded only
// once; later observations never move it.
func (t *RetryTracker) Observe(orderID kernel.UUID, now time.Time) RetryStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[orderID]
	if !ok {
		entry = &retryEntry{firstAttemptAt: now}
		t.entries[orderID] = entry
	}

	return t.snapshot(entry, now)
}

// RecordFailure increments the order's attempt counter and returns the new
// value. Creates the entry if the order was somehow not observed first.
func (t *RetryTracker) RecordFailure(orderID kernel.UUID, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[orderID]
	if !ok {
		entry = &retryEntry{firstAttemptAt: now}
		t.entries[orderID] = entry
	}

	entry.attempts++
	return entry.attempts
}

// Clear removes the order's tracking state. Called on successful
// assignment, on give-up, and by external flows after a manual fix so the
// loop does not re-alert on an order a human already resolved.
func (t *RetryTracker) Clear(orderID kernel.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, orderID)
}

// Status returns a snapshot for one order. A zero-attempt status with a nil
// first-attempt time means the order is not tracked.
func (t *RetryTracker) Status(orderID kernel.UUID, now time.Time) RetryStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[orderID]
	if !ok {
		return RetryStatus{}
	}
	return t.snapshot(entry, now)
}

// Purge drops entries whose first-attempt time is before cutoff. Keeps the
// map from leaking when an order disappears from the eligible query without
// being explicitly resolved.
func (t *RetryTracker) Purge(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, entry := range t.entries {
		if entry.firstAttemptAt.Before(cutoff) {
			delete(t.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked orders.
func (t *RetryTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

func (t *RetryTracker) snapshot(entry *retryEntry, now time.Time) RetryStatus {
	firstAttemptAt := entry.firstAttemptAt
	return RetryStatus{
		Attempts:       entry.attempts,
		FirstAttemptAt: &firstAttemptAt,
		Age:            now.Sub(entry.firstAttemptAt),
	}
}
