package services

import (
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ReminderStatus is a read-only snapshot of an order's reminder tracking
// state.
type ReminderStatus struct {
	Reminders       int
	FirstReminderAt *time.Time
	Age             time.Duration
}

type reminderEntry struct {
	reminders       int
	firstReminderAt time.Time
}

// ReminderTracker counts, per order, how many acceptance reminders have
// been sent to the shop owner. The count is informational: reminders stop
// when the order leaves the pending state, not at a maximum count.
//
// Like RetryTracker, state is process-local and rebuilt from the order
// store after a restart.
type ReminderTracker struct {
	mu      sync.Mutex
	entries map[kernel.UUID]*reminderEntry
}

// NewReminderTracker creates an empty tracker.
func NewReminderTracker() *ReminderTracker {
	return &ReminderTracker{
		entries: make(map[kernel.UUID]*reminderEntry),
	}
}

// Next records one more reminder for the order and returns its sequence
// number, creating the entry with firstReminderAt=now on first sight. The
// counter advances even when the owner has no registered devices, which
// bounds log noise for unreachable owners.
func (t *ReminderTracker) Next(orderID kernel.UUID, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[orderID]
	if !ok {
		entry = &reminderEntry{firstReminderAt: now}
		t.entries[orderID] = entry
	}

	entry.reminders++
	return entry.reminders
}

// Clear removes the order's tracking state.
func (t *ReminderTracker) Clear(orderID kernel.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, orderID)
}

// Status returns a snapshot for one order. A zero-reminder status with a
// nil first-reminder time means the order is not tracked.
func (t *ReminderTracker) Status(orderID kernel.UUID, now time.Time) ReminderStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[orderID]
	if !ok {
		return ReminderStatus{}
	}

	firstReminderAt := entry.firstReminderAt
	return ReminderStatus{
		Reminders:       entry.reminders,
		FirstReminderAt: &firstReminderAt,
		Age:             now.Sub(entry.firstReminderAt),
	}
}

// Tracked returns the IDs of all orders currently tracked. The reminder
// loop reconciles this set against the order store every tick so reminders
// stop as soon as an order is accepted, rejected, or cancelled.
func (t *ReminderTracker) Tracked() []kernel.UUID {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]kernel.UUID, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of tracked orders.
func (t *ReminderTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
