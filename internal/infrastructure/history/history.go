// Package history persists generated diet plans in a local SQLite database.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tesso57/dietplan/internal/domain/plan"
	"modernc.org/sqlite"
)

// ErrNotFound is returned when no plan matches the requested id.
var ErrNotFound = errors.New("plan not found")

// DefaultListLimit caps List when a non-positive limit is given.
const DefaultListLimit = 20

// sqliteConstraintPrimaryKey is SQLITE_CONSTRAINT_PRIMARYKEY.
const sqliteConstraintPrimaryKey = 1555

const schema = `
CREATE TABLE IF NOT EXISTS plans (
	"id" TEXT PRIMARY KEY,
	"created_at" TEXT NOT NULL,
	"providers" TEXT NOT NULL,
	"policy" TEXT NOT NULL,
	"document" TEXT NOT NULL,
	"pdf_path" TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS plans_created_at ON plans(created_at);`

// Store handles saving and loading plan records.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create plans table: %w", err)
	}
	return new(Store{db: db}), nil
}

// Save inserts a record. Ids must be unique.
func (s *Store) Save(record plan.Record) error {
	if strings.TrimSpace(record.ID) == "" {
		return errors.New("plan record id is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO plans(id, created_at, providers, policy, document, pdf_path) VALUES(?, ?, ?, ?, ?, ?)",
		record.ID,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		strings.Join(record.Providers, ","),
		string(record.Policy),
		record.Document,
		record.PDFPath,
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintPrimaryKey {
			return fmt.Errorf("plan %s already saved: %w", record.ID, err)
		}
		return err
	}
	return nil
}

// List returns the newest records first.
func (s *Store) List(limit int) ([]plan.Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, created_at, providers, policy, document, pdf_path FROM plans ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []plan.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Get returns the record with id, or ErrNotFound.
func (s *Store) Get(id string) (plan.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		"SELECT id, created_at, providers, policy, document, pdf_path FROM plans WHERE id = ?",
		id,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return plan.Record{}, ErrNotFound
	}
	return record, err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (plan.Record, error) {
	var (
		record    plan.Record
		createdAt string
		providers string
		policy    string
	)
	if err := row.Scan(&record.ID, &createdAt, &providers, &policy, &record.Document, &record.PDFPath); err != nil {
		return plan.Record{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return plan.Record{}, fmt.Errorf("plan %s has bad created_at %q: %w", record.ID, createdAt, err)
	}
	record.CreatedAt = ts
	record.Policy = plan.MergePolicy(policy)
	if providers != "" {
		record.Providers = strings.Split(providers, ",")
	}
	return record, nil
}
