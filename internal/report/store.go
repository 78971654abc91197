// Package report persists enriched analysis runs so they can be listed
// and re-rendered later. The pipeline itself never touches the store;
// the CLI is the caller that decides to persist.
package report

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/racelens/racelens/internal/event"
	"github.com/racelens/racelens/internal/logger"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// Run is one persisted analysis: the trace it came from and summary counts.
type Run struct {
	ID            string
	CreatedAt     time.Time
	Source        string
	EventCount    int
	RelevantCount int
	DroppedCount  int
}

// RunStore defines the persistence interface for analysis runs.
type RunStore interface {
	SaveRun(run *Run, events []*event.Event) (*Run, error)
	GetRun(id string) (*Run, error)
	ListRuns() ([]*Run, error)
	GetRunEvents(id string) ([]*event.Event, error)
	DeleteRun(id string) error
	Clear() (int64, error)
	Close() error
}

// SQLiteStore implements RunStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewSQLiteStore opens (or creates) the run database. An empty dbPath
// defaults to ~/.racelens/runs.db.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, ".racelens", "runs.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug().
		Str("path", dbPath).
		Msg("Opened run store")

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		source TEXT,
		event_count INTEGER NOT NULL,
		relevant_count INTEGER NOT NULL,
		dropped_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		payload TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_run_events_run ON run_events(run_id, position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun persists a run and its enriched events in one transaction.
// A missing run ID gets a fresh UUID; the returned Run carries the final
// ID and timestamp.
func (s *SQLiteStore) SaveRun(run *Run, events []*event.Event) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *run
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	saved.EventCount = len(events)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, created_at, source, event_count, relevant_count, dropped_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.CreatedAt.Unix(), saved.Source,
		saved.EventCount, saved.RelevantCount, saved.DroppedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event %d: %w", i, err)
		}
		_, err = tx.Exec(
			"INSERT INTO run_events (run_id, position, payload) VALUES (?, ?, ?)",
			saved.ID, i, string(payload),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return &saved, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var run Run
	var createdAt int64

	err := s.db.QueryRow(
		`SELECT run_id, created_at, source, event_count, relevant_count, dropped_count
		 FROM runs WHERE run_id = ?`,
		id,
	).Scan(&run.ID, &createdAt, &run.Source, &run.EventCount, &run.RelevantCount, &run.DroppedCount)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.CreatedAt = time.Unix(createdAt, 0)
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *SQLiteStore) ListRuns() ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT run_id, created_at, source, event_count, relevant_count, dropped_count
		 FROM runs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt int64
		if err := rows.Scan(&run.ID, &createdAt, &run.Source, &run.EventCount,
			&run.RelevantCount, &run.DroppedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetRunEvents returns a run's enriched events in stored order.
func (s *SQLiteStore) GetRunEvents(id string) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT payload FROM run_events WHERE run_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		var ev event.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

// DeleteRun removes a run and its events.
func (s *SQLiteStore) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM run_events WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	result, err := tx.Exec("DELETE FROM runs WHERE run_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("run not found: %s", id)
	}

	return tx.Commit()
}

// Clear removes all runs and returns how many were deleted.
func (s *SQLiteStore) Clear() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM run_events"); err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	result, err := tx.Exec("DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}
	deleted, _ := result.RowsAffected()

	return deleted, tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
