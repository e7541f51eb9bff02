// Package storage provides append-only persistence for survey records.
// Two backends share one contract: a JSON-lines file (default) and a SQLite
// table. Both only ever add entries; nothing in this package updates or
// deletes a stored record.
package storage

import "fmt"

// PersistenceError reports a failed append. The pipeline treats it as a hard
// failure of the request: no success response may be sent once one occurs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
