package secondary

// Prefs is the durable key/value blob of non-transactional preferences:
// vocabularies, templates, the edit-lock flag, and free-form user notes.
//
// Stage collections, the history ledger and the undo/redo stacks are
// session-only and must never pass through this port.
type Prefs struct {
	StatusVocab        []string `json:"statusVocab"`
	BookingStatusVocab []string `json:"bookingStatusVocab"`
	NoteTemplates      []string `json:"noteTemplates"`
	ReminderTemplates  []string `json:"reminderTemplates"`
	Locked             bool     `json:"locked"`
	UserNotes          string   `json:"userNotes,omitempty"`
	Todos              []string `json:"todos,omitempty"`
}

// PrefsStore defines the secondary port for local reference-data
// persistence.
type PrefsStore interface {
	// Load reads the prefs blob, returning seeded defaults when no blob
	// exists yet.
	Load() (*Prefs, error)

	// Save writes the prefs blob.
	Save(prefs *Prefs) error
}
