package models

import "time"

// Snapshot is a deep copy of every stage collection plus the booking-status
// vocabulary at a single instant. It is the payload of a ledger commit and
// the unit of restore pushed to the remote store.
type Snapshot struct {
	Stages       StageSet `json:"stages"`
	BookingVocab []string `json:"bookingVocab"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	vocab := make([]string, len(s.BookingVocab))
	copy(vocab, s.BookingVocab)
	return &Snapshot{
		Stages:       s.Stages.Clone(),
		BookingVocab: vocab,
	}
}

// Commit is a named, timestamped full-state snapshot in the audit ledger.
// Commits are never mutated after creation.
type Commit struct {
	ID         string    `json:"id"`
	ActionName string    `json:"actionName"`
	Timestamp  time.Time `json:"timestamp"`
	Snapshot   *Snapshot `json:"snapshot"`
}
