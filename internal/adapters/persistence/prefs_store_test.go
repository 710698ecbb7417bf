package persistence

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	store := NewJSONPrefsStore(filepath.Join(t.TempDir(), "prefs.json"))

	prefs, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(prefs.BookingStatusVocab) == 0 || len(prefs.StatusVocab) == 0 {
		t.Error("defaults missing seeded vocabularies")
	}
	if prefs.Locked {
		t.Error("defaults start locked")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewJSONPrefsStore(filepath.Join(t.TempDir(), "nested", "prefs.json"))

	prefs := DefaultPrefs()
	prefs.BookingStatusVocab = append(prefs.BookingStatusVocab, "Rescheduled")
	prefs.Locked = true
	prefs.Todos = []string{"order oil filters"}
	if err := store.Save(prefs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.BookingStatusVocab[len(got.BookingStatusVocab)-1] != "Rescheduled" {
		t.Errorf("vocab = %v", got.BookingStatusVocab)
	}
	if !got.Locked {
		t.Error("lock flag lost")
	}
	if len(got.Todos) != 1 || got.Todos[0] != "order oil filters" {
		t.Errorf("todos = %v", got.Todos)
	}
}

func TestLoadRejectsMalformedBlob(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONPrefsStore(path).Load(); err == nil {
		t.Error("malformed blob accepted")
	}
}
