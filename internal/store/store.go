// Package store owns the in-memory workflow state: one record collection
// per stage plus the durable reference data (vocabularies, templates).
//
// The collections here are the authoritative working state; the SQLite
// mirror is written through the remote port and read only at startup.
// All access goes through Store methods, which take the store lock, so a
// record is in exactly one stage collection at any observable instant.
package store

import (
	"sync"

	"github.com/example/partflow/internal/models"
)

// Store is the single owned state container for the workflow core.
type Store struct {
	mu     sync.Mutex
	stages models.StageSet

	// Reference data, hydrated from the prefs blob. Durable, unlike the
	// stage collections above.
	statusVocab        []string
	bookingStatusVocab []string
	noteTemplates      []string
	reminderTemplates  []string
}

// New creates an empty store with initialized stage collections.
func New() *Store {
	stages := make(models.StageSet, len(models.AllStages))
	for _, s := range models.AllStages {
		stages[s] = nil
	}
	return &Store{stages: stages}
}

// Records returns a copy of the collection for one stage. The slice is
// fresh but the records are shared; mutate through Store methods only.
func (s *Store) Records(stage models.Stage) []*models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Record, len(s.stages[stage]))
	copy(out, s.stages[stage])
	return out
}

// Find locates a record in any stage collection.
func (s *Store) Find(id string) (models.Stage, *models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Store) findLocked(id string) (models.Stage, *models.Record, bool) {
	for _, stage := range models.AllStages {
		for _, rec := range s.stages[stage] {
			if rec.ID == id {
				return stage, rec, true
			}
		}
	}
	return "", nil, false
}

// Insert appends records to a stage collection.
func (s *Store) Insert(stage models.Stage, recs ...*models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages[stage] = append(s.stages[stage], recs...)
}

// Move removes the given ids from the source collections, applies
// transform to each matched record, and inserts the results into dest,
// all under one lock, so no reader ever observes a record in two stages
// or in none. Ids absent from every source are ignored.
func (s *Store) Move(sources []models.Stage, dest models.Stage, ids []string, transform func(*models.Record)) []*models.Record {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var moved []*models.Record
	for _, src := range sources {
		kept := s.stages[src][:0]
		for _, rec := range s.stages[src] {
			if wanted[rec.ID] {
				moved = append(moved, rec)
			} else {
				kept = append(kept, rec)
			}
		}
		s.stages[src] = kept
	}

	for _, rec := range moved {
		if transform != nil {
			transform(rec)
		}
	}
	s.stages[dest] = append(s.stages[dest], moved...)
	return moved
}

// Remove deletes the given ids from every stage collection and returns
// the removed records.
func (s *Store) Remove(ids []string) []*models.Record {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*models.Record
	for _, stage := range models.AllStages {
		kept := s.stages[stage][:0]
		for _, rec := range s.stages[stage] {
			if wanted[rec.ID] {
				removed = append(removed, rec)
			} else {
				kept = append(kept, rec)
			}
		}
		s.stages[stage] = kept
	}
	return removed
}

// Update applies fn to the record with the given id, if present, and
// reports whether a record was found. fn runs under the store lock.
func (s *Store) Update(id string, fn func(models.Stage, *models.Record)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	stage, rec, ok := s.findLocked(id)
	if !ok {
		return false
	}
	fn(stage, rec)
	return true
}

// ContainsAny reports whether any of the ids exists in any of the given
// stage collections.
func (s *Store) ContainsAny(sources []models.Stage, ids []string) bool {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, src := range sources {
		for _, rec := range s.stages[src] {
			if wanted[rec.ID] {
				return true
			}
		}
	}
	return false
}

// SnapshotStages returns a deep copy of the stage collections only.
// This is the undo-snapshot capture; reference data is excluded.
func (s *Store) SnapshotStages() models.StageSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stages.Clone()
}

// RestoreStages replaces the stage collections with a deep copy of set.
func (s *Store) RestoreStages(set models.StageSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages = set.Clone()
	for _, stage := range models.AllStages {
		if _, ok := s.stages[stage]; !ok {
			s.stages[stage] = nil
		}
	}
}

// Snapshot returns a deep copy of the stage collections plus the
// booking-status vocabulary, the payload of a ledger commit.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	vocab := make([]string, len(s.bookingStatusVocab))
	copy(vocab, s.bookingStatusVocab)
	return &models.Snapshot{
		Stages:       s.stages.Clone(),
		BookingVocab: vocab,
	}
}

// RestoreSnapshot replaces the stage collections and the booking-status
// vocabulary with a deep copy of snap.
func (s *Store) RestoreSnapshot(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := snap.Clone()
	s.stages = c.Stages
	for _, stage := range models.AllStages {
		if _, ok := s.stages[stage]; !ok {
			s.stages[stage] = nil
		}
	}
	s.bookingStatusVocab = c.BookingVocab
}

// ForEach visits every record under the store lock, stage by stage in
// workflow order. The callback must not mutate the store.
func (s *Store) ForEach(fn func(models.Stage, *models.Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stage := range models.AllStages {
		for _, rec := range s.stages[stage] {
			fn(stage, rec)
		}
	}
}

// BookingStatusVocab returns a copy of the booking-status vocabulary.
func (s *Store) BookingStatusVocab() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.bookingStatusVocab))
	copy(out, s.bookingStatusVocab)
	return out
}

// SetBookingStatusVocab replaces the booking-status vocabulary.
func (s *Store) SetBookingStatusVocab(vocab []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookingStatusVocab = append([]string(nil), vocab...)
}

// StatusVocab returns a copy of the part-status vocabulary.
func (s *Store) StatusVocab() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.statusVocab))
	copy(out, s.statusVocab)
	return out
}

// SetStatusVocab replaces the part-status vocabulary.
func (s *Store) SetStatusVocab(vocab []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusVocab = append([]string(nil), vocab...)
}

// NoteTemplates returns a copy of the note templates.
func (s *Store) NoteTemplates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.noteTemplates))
	copy(out, s.noteTemplates)
	return out
}

// SetNoteTemplates replaces the note templates.
func (s *Store) SetNoteTemplates(templates []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noteTemplates = append([]string(nil), templates...)
}

// ReminderTemplates returns a copy of the reminder templates.
func (s *Store) ReminderTemplates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.reminderTemplates))
	copy(out, s.reminderTemplates)
	return out
}

// SetReminderTemplates replaces the reminder templates.
func (s *Store) SetReminderTemplates(templates []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminderTemplates = append([]string(nil), templates...)
}
