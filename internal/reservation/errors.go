// Package reservation implements the seat reservation engine: the
// coordinator that atomically claims seats for a show, and the lifecycle
// manager that creates and deletes shows together with their seat grid.
// The package owns the engine's error taxonomy; the storage layer maps
// driver-level failures onto these sentinels so callers can decide whether
// an outcome is retryable without knowing the backing store.
package reservation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest is returned when a claim request is malformed (empty
// seat set, duplicate or blank labels).  This is a caller bug and is never
// retryable; the store is not touched.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound is returned when the referenced show (or, on show creation,
// the referenced movie) does not exist.  Not retryable.
var ErrNotFound = errors.New("not found")

// ErrTransient is returned when the store aborts a transaction for a
// transient reason: lock wait timeout, deadlock victim, dropped connection.
// The engine never retries internally; callers may retry after re-reading
// seat state.
var ErrTransient = errors.New("transient store failure")

// ConflictError reports that a claim could not be satisfied because one or
// more requested seats were not available.  Unavailable is a best-effort
// diagnostic listing the labels that were missing or already claimed at
// the time the transaction read them; it is not authoritative for retry
// logic.  The whole batch fails: no seat in the request was claimed.
type ConflictError struct {
	Unavailable []string
}

func (e *ConflictError) Error() string {
	if len(e.Unavailable) == 0 {
		return "seats unavailable"
	}
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Unavailable, ", "))
}
