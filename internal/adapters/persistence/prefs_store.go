// Package persistence contains file-based implementations of secondary
// ports. Only reference data goes through here; records are mirrored to
// SQLite through the remote port instead.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/partflow/internal/ports/secondary"
)

// JSONPrefsStore implements secondary.PrefsStore with a JSON blob on
// disk.
type JSONPrefsStore struct {
	path string
}

// NewJSONPrefsStore creates a prefs store backed by the given file.
func NewJSONPrefsStore(path string) *JSONPrefsStore {
	return &JSONPrefsStore{path: path}
}

// DefaultPrefs returns the seeded vocabularies and templates used before
// the user customizes anything.
func DefaultPrefs() *secondary.Prefs {
	return &secondary.Prefs{
		StatusVocab: []string{
			"New", "Pending", "Ordered", "Arrived", "Booked", "To Call", "Archived", "Reorder",
		},
		BookingStatusVocab: []string{
			"Scheduled", "Confirmed", "Completed", "No Show",
		},
		NoteTemplates: []string{
			"Customer notified by phone",
			"Waiting for supplier confirmation",
		},
		ReminderTemplates: []string{
			"Call customer about booking",
			"Chase supplier for delivery date",
		},
	}
}

// Load reads the prefs blob, returning seeded defaults when no blob
// exists yet.
func (s *JSONPrefsStore) Load() (*secondary.Prefs, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return DefaultPrefs(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prefs: %w", err)
	}

	var prefs secondary.Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse prefs: %w", err)
	}
	return &prefs, nil
}

// Save writes the prefs blob.
func (s *JSONPrefsStore) Save(prefs *secondary.Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
