package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cinetix/seat-reservation/internal/reservation"
)

// ClaimStore is the MySQL implementation of the reservation engine's Store
// interface.  Row-level locking (SELECT ... FOR UPDATE under InnoDB's
// default REPEATABLE READ) provides the isolation the engine requires: a
// concurrent transaction reading the same seat rows blocks until this one
// commits or rolls back, bounded by innodb_lock_wait_timeout.
type ClaimStore struct {
	db *sql.DB
}

// NewClaimStore constructs a ClaimStore over the given pool.
func NewClaimStore(db *sql.DB) *ClaimStore {
	return &ClaimStore{db: db}
}

// WithTx opens a transaction, runs fn and commits when fn returns nil.
// Any error from fn rolls the transaction back before returning, so a
// caller that abandons a request never leaves a transaction open.  Begin
// and commit failures are mapped onto the engine taxonomy.
func (s *ClaimStore) WithTx(ctx context.Context, fn func(tx reservation.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapStoreErr(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&claimTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapStoreErr(err)
	}
	committed = true
	return nil
}

// claimTx adapts one *sql.Tx to the statements the engine issues.
type claimTx struct {
	tx *sql.Tx
}

// ShowExists reports whether the show row exists.
func (t *claimTx) ShowExists(ctx context.Context, showID uint64) (bool, error) {
	const q = `SELECT 1 FROM shows WHERE id = ?`
	var one int
	err := t.tx.QueryRowContext(ctx, q, showID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, mapStoreErr(err)
	}
	return true, nil
}

// LockAvailableSeats reads the requested seat rows that are AVAILABLE,
// taking an exclusive lock on each matched row for the remainder of the
// transaction.  Rows already claimed (or locked rows that turn out to be
// claimed once the holder commits) are simply absent from the result.
func (t *claimTx) LockAvailableSeats(ctx context.Context, showID uint64, labels []string) ([]string, error) {
	q := `SELECT label FROM seats
		  WHERE show_id = ? AND status = 'AVAILABLE' AND label IN (` + placeholders(len(labels)) + `)
		  FOR UPDATE`
	args := make([]interface{}, 0, len(labels)+1)
	args = append(args, showID)
	for _, l := range labels {
		args = append(args, l)
	}
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	defer rows.Close()

	var matched []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, mapStoreErr(err)
		}
		matched = append(matched, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreErr(err)
	}
	return matched, nil
}

// ClaimSeats transitions the given rows to CLAIMED with the claimant set.
// The status predicate is repeated even though the rows are locked: the
// claim transaction is the only write path allowed to set CLAIMED, and the
// predicate keeps that invariant even if a future code path misuses this
// method outside LockAvailableSeats.
func (t *claimTx) ClaimSeats(ctx context.Context, showID uint64, labels []string, claimantID uint64) error {
	q := `UPDATE seats SET status = 'CLAIMED', claimant_id = ?
		  WHERE show_id = ? AND status = 'AVAILABLE' AND label IN (` + placeholders(len(labels)) + `)`
	args := make([]interface{}, 0, len(labels)+2)
	args = append(args, claimantID, showID)
	for _, l := range labels {
		args = append(args, l)
	}
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return mapStoreErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapStoreErr(err)
	}
	if n != int64(len(labels)) {
		// Locked rows changed under us; abort rather than commit a partial
		// claim.
		return &reservation.ConflictError{Unavailable: labels}
	}
	return nil
}

// InsertShow creates a show row and returns its generated ID.
func (t *claimTx) InsertShow(ctx context.Context, movieID uint64, startsAt time.Time) (uint64, error) {
	const q = `INSERT INTO shows (movie_id, starts_at) VALUES (?, ?)`
	res, err := t.tx.ExecContext(ctx, q, movieID, startsAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, mapStoreErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, mapStoreErr(err)
	}
	return uint64(id), nil
}

// InsertSeats bulk-inserts AVAILABLE seat rows for a show in a single
// statement.
func (t *claimTx) InsertSeats(ctx context.Context, showID uint64, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO seats (show_id, label) VALUES `)
	args := make([]interface{}, 0, len(labels)*2)
	for i, l := range labels {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?)")
		args = append(args, showID, l)
	}
	_, err := t.tx.ExecContext(ctx, b.String(), args...)
	return mapStoreErr(err)
}

// DeleteShow removes the show row; the ON DELETE CASCADE constraint on
// seats.show_id removes the seat grid in the same transaction.
func (t *claimTx) DeleteShow(ctx context.Context, showID uint64) (int64, error) {
	const q = `DELETE FROM shows WHERE id = ?`
	res, err := t.tx.ExecContext(ctx, q, showID)
	if err != nil {
		return 0, mapStoreErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapStoreErr(err)
	}
	return n, nil
}

// placeholders returns n comma-separated "?" markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
