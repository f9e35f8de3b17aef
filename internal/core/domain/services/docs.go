// Package services provides domain services that hold state not owned by a
// single aggregate: the per-order tracking maps the scheduler loops use to
// decide between retrying, escalating, and giving up.
//
// The package includes:
//   - RetryTracker: attempt counters and first-seen times for the
//     unassigned-order retry loop
//   - ReminderTracker: reminder sequence numbers for the pending-order
//     reminder loop
//
// Both trackers are deliberately transient. Their counters reset with the
// process; the durable deadline for the driver search lives on the order row
// instead. Each loop owns exactly one tracker and never shares it, so the
// trackers only need to be safe against the operator HTTP surface reading or
// clearing entries concurrently with a tick.
package services
