// Package wire provides dependency injection for the partflow
// application. It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	cliadapter "github.com/example/partflow/internal/adapters/cli"
	"github.com/example/partflow/internal/adapters/persistence"
	"github.com/example/partflow/internal/adapters/sqlite"
	"github.com/example/partflow/internal/app"
	"github.com/example/partflow/internal/config"
	"github.com/example/partflow/internal/db"
	"github.com/example/partflow/internal/ports/primary"
	"github.com/example/partflow/internal/ports/secondary"
	"github.com/example/partflow/internal/store"
)

var (
	recordStore         *store.Store
	prefsStore          secondary.PrefsStore
	workflowService     primary.WorkflowService
	historyService      primary.HistoryService
	undoService         primary.UndoService
	notificationService primary.NotificationService
	once                sync.Once
)

// WorkflowService returns the singleton WorkflowService instance.
func WorkflowService() primary.WorkflowService {
	once.Do(initServices)
	return workflowService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// UndoService returns the singleton UndoService instance.
func UndoService() primary.UndoService {
	once.Do(initServices)
	return undoService
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() primary.NotificationService {
	once.Do(initServices)
	return notificationService
}

// Store returns the singleton in-memory record store.
func Store() *store.Store {
	once.Do(initServices)
	return recordStore
}

// PrefsStore returns the singleton preferences store.
func PrefsStore() secondary.PrefsStore {
	once.Do(initServices)
	return prefsStore
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to locate config directory: %v", err)
	}

	dbPath := ""
	if cfg, err := config.LoadConfig(dir); err == nil {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			log.Fatalf("failed to locate database: %v", err)
		}
	}

	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	remote := sqlite.NewRecordStore(database)
	prefsStore = persistence.NewJSONPrefsStore(filepath.Join(dir, "prefs.json"))

	recordStore = store.New()
	hydrate(remote, prefsStore)

	historyService = app.NewHistoryService(recordStore, remote)
	undoService = app.NewUndoService(recordStore, historyService)
	workflowService = app.NewWorkflowService(recordStore, remote, historyService, undoService)
	notificationService = app.NewNotificationService(recordStore)
}

// hydrate loads persisted records and reference data into the in-memory
// store. A missing prefs file falls back to defaults; a database read
// failure is fatal.
func hydrate(remote *sqlite.RecordStore, prefs secondary.PrefsStore) {
	stages, err := remote.GetRecordsByStage(context.Background())
	if err != nil {
		log.Fatalf("failed to load records: %v", err)
	}
	recordStore.RestoreStages(stages)

	p, err := prefs.Load()
	if err != nil {
		p = persistence.DefaultPrefs()
	}
	recordStore.SetStatusVocab(p.StatusVocab)
	recordStore.SetBookingStatusVocab(p.BookingStatusVocab)
	recordStore.SetNoteTemplates(p.NoteTemplates)
	recordStore.SetReminderTemplates(p.ReminderTemplates)
}

// Shutdown flushes optimistic remote writes and the debounced ledger
// before the process exits.
func Shutdown() {
	if workflowService != nil {
		workflowService.Flush()
	}
	if historyService != nil {
		historyService.Flush()
		historyService.Close()
	}
	db.Close()
}

// WorkflowAdapter returns a new WorkflowAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func WorkflowAdapter() *cliadapter.WorkflowAdapter {
	return WorkflowAdapterWithOutput(os.Stdout)
}

// WorkflowAdapterWithOutput returns a new WorkflowAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func WorkflowAdapterWithOutput(out io.Writer) *cliadapter.WorkflowAdapter {
	once.Do(initServices)
	return cliadapter.NewWorkflowAdapter(workflowService, out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	once.Do(initServices)
	return cliadapter.NewHistoryAdapter(historyService, os.Stdout)
}

// NotificationAdapter returns a new NotificationAdapter writing to stdout.
func NotificationAdapter() *cliadapter.NotificationAdapter {
	return NotificationAdapterWithOutput(os.Stdout)
}

// NotificationAdapterWithOutput returns a new NotificationAdapter writing to the given output.
func NotificationAdapterWithOutput(out io.Writer) *cliadapter.NotificationAdapter {
	once.Do(initServices)
	return cliadapter.NewNotificationAdapter(notificationService, out)
}
