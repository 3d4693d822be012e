package reservation

import (
	"context"
	"time"
)

// Lifecycle creates and deletes shows together with their seat grid.  Seat
// rows exist only as part of a show: creation inserts the full grid in the
// same transaction as the show row, and deletion relies on the store's
// cascading FK so no orphaned seat can survive an interrupted delete.
type Lifecycle struct {
	store       Store
	defaultRows int
	defaultCols int
}

// NewLifecycle constructs a Lifecycle with the grid defaults used when a
// create request does not specify dimensions.
func NewLifecycle(store Store, defaultRows, defaultCols int) *Lifecycle {
	if store == nil {
		panic("nil store passed to NewLifecycle")
	}
	if defaultRows < 1 {
		defaultRows = 5
	}
	if defaultCols < 1 {
		defaultCols = 8
	}
	return &Lifecycle{store: store, defaultRows: defaultRows, defaultCols: defaultCols}
}

// CreateShow inserts the show row and its rows×cols seat grid, all
// AVAILABLE, inside one transaction.  Zero dimensions fall back to the
// configured defaults; negative or absurdly large grids are rejected with
// ErrInvalidRequest.  A failure inserting seats rolls the show row back
// too: a show never exists with zero or partial seats.
func (l *Lifecycle) CreateShow(ctx context.Context, movieID uint64, startsAt time.Time, rows, cols int) (uint64, error) {
	if rows == 0 {
		rows = l.defaultRows
	}
	if cols == 0 {
		cols = l.defaultCols
	}
	// Each dimension is capped before multiplying so the product check
	// cannot be defeated by int overflow.
	if rows < 1 || cols < 1 || rows > 10000 || cols > 10000 || rows*cols > 10000 {
		return 0, ErrInvalidRequest
	}
	labels := SeatLabels(rows, cols)
	var showID uint64
	err := l.store.WithTx(ctx, func(tx Tx) error {
		id, err := tx.InsertShow(ctx, movieID, startsAt)
		if err != nil {
			return err
		}
		showID = id
		return tx.InsertSeats(ctx, id, labels)
	})
	if err != nil {
		return 0, err
	}
	return showID, nil
}

// DeleteShow removes the show and, through the cascading FK, every one of
// its seats in a single transaction.  A concurrent in-flight claim against
// one of those seats either commits before the delete acquires the rows or
// fails cleanly once they are gone.  Returns ErrNotFound when the show
// does not exist.
func (l *Lifecycle) DeleteShow(ctx context.Context, showID uint64) error {
	return l.store.WithTx(ctx, func(tx Tx) error {
		n, err := tx.DeleteShow(ctx, showID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
