package repository // repository defines read access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
)

// Seat mirrors one row of the seats table.  ClaimantID is non-null exactly
// when Status is CLAIMED; the only write path that sets CLAIMED is the
// claim transaction in the reservation engine.
type Seat struct {
	ID         uint64         // primary key
	ShowID     uint64         // FK -> shows.id
	Label      string         // e.g. A1, unique within a show
	Status     string         // AVAILABLE | CLAIMED
	ClaimantID sql.NullInt64  // set iff Status is CLAIMED
}

// SeatRepo provides read-only seat map access.  Claim-path writes go
// through ClaimStore inside the engine's transaction; nothing here mutates
// seat status.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListByShow retrieves all seats of a show ordered by label.  Clients use
// this as the canonical re-fetch path after a claim conflict or a notifier
// event.
func (r *SeatRepo) ListByShow(ctx context.Context, showID uint64) ([]Seat, error) {
	const q = `SELECT id, show_id, label, status, claimant_id
			   FROM seats
			   WHERE show_id = ?
			   ORDER BY label`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Seat
	for rows.Next() {
		var s Seat
		if err := rows.Scan(&s.ID, &s.ShowID, &s.Label, &s.Status, &s.ClaimantID); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
