package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anketa-io/anketa/internal/models"
)

const surveyRecordsSchema = `
CREATE TABLE IF NOT EXISTS survey_records (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	submission_id TEXT NOT NULL,
	record        TEXT NOT NULL,
	received_at   TEXT NOT NULL
);`

// SQLiteStore appends records to an insert-only SQLite table. It exists as an
// alternative to the JSON-lines file for deployments that already manage a
// SQLite database; it exposes no update or delete path.
type SQLiteStore struct {
	db     *sql.DB
	insert *sql.Stmt
}

// NewSQLiteStore prepares the schema and the insert statement. The usual
// pragmas are applied up front so appends survive process crashes.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(surveyRecordsSchema); err != nil {
		return nil, fmt.Errorf("create survey_records table: %w", err)
	}
	insert, err := db.Prepare("INSERT INTO survey_records (submission_id, record, received_at) VALUES (?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &SQLiteStore{db: db, insert: insert}, nil
}

// Append inserts one record. SQLite serializes writers itself, so entries
// never interleave; the FULL synchronous pragma makes the insert durable
// before the call returns.
func (s *SQLiteStore) Append(rec *models.StoredSurveyRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return &PersistenceError{Op: "encode record", Err: err}
	}
	if _, err := s.insert.Exec(rec.SubmissionID, string(body), rec.ReceivedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return &PersistenceError{Op: "insert record", Err: err}
	}
	return nil
}

// Close releases the prepared statement and the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.insert.Close(); err != nil {
		return err
	}
	return s.db.Close()
}
