// Package beastmode computes the strict-validation grace window.
//
// A failed strict commit records a trigger timestamp for the record. The
// remaining grace is always derived from that timestamp, never kept as a
// running timer, so closing and reopening an edit surface cannot reset
// the deadline.
package beastmode

import "time"

// GraceWindow is the grace period granted after a failed strict commit.
const GraceWindow = 30 * time.Second

// Remaining returns the whole seconds left in the grace window at now.
// Never negative.
func Remaining(triggeredAt, now time.Time) int {
	elapsed := int(now.Sub(triggeredAt).Seconds())
	remaining := int(GraceWindow.Seconds()) - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the grace window has fully elapsed at now.
// An expired trigger is treated as Idle and may be discarded.
func Expired(triggeredAt, now time.Time) bool {
	return Remaining(triggeredAt, now) == 0
}
