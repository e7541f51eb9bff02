package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/anketa-io/anketa/internal/models"
)

// JSONLStore appends records to a JSON-lines file, one object per line.
// A mutex serializes appends so concurrent requests never interleave bytes
// of two records, and every append is synced before returning.
type JSONLStore struct {
	mu sync.Mutex
	f  *os.File
}

// OpenJSONLStore opens (creating if needed) the log file in append-only mode.
func OpenJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &PersistenceError{Op: "open log", Err: err}
	}
	return &JSONLStore{f: f}, nil
}

// Append writes one record as a single newline-terminated JSON line and
// flushes it to disk. On any failure the record must be considered unwritten
// by the caller, though a partially written line may remain in the file.
func (s *JSONLStore) Append(rec *models.StoredSurveyRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return &PersistenceError{Op: "encode record", Err: err}
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(line); err != nil {
		return &PersistenceError{Op: "append record", Err: err}
	}
	if err := s.f.Sync(); err != nil {
		return &PersistenceError{Op: "sync log", Err: err}
	}
	return nil
}

// Close releases the underlying file handle.
func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
