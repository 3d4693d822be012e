// Package repository contains data access for shows.  A Show represents
// one scheduled screening of a movie; shows are immutable after creation
// except for deletion, which cascades to the show's seats.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"time"         // time.Time for DATETIME columns
)

// Show represents a scheduled screening of a movie.  The DSN sets
// parseTime=true, so DATETIME columns scan directly into time.Time (UTC).
type Show struct {
	ID        uint64    // shows.id
	MovieID   uint64    // shows.movie_id
	StartsAt  time.Time // shows.starts_at
	CreatedAt time.Time // shows.created_at
}

// ShowRepo manages read access to shows.  Creation and deletion go through
// the reservation lifecycle manager so the seat grid stays transactional
// with the show row.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*Show, error) {
	const q = `SELECT id, movie_id, starts_at, created_at FROM shows WHERE id = ?`
	var s Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.StartsAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMovie returns all shows for a movie ordered by start time.
func (r *ShowRepo) ListByMovie(ctx context.Context, movieID uint64) ([]Show, error) {
	const q = `SELECT id, movie_id, starts_at, created_at FROM shows WHERE movie_id = ? ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Show
	for rows.Next() {
		var s Show
		if err := rows.Scan(&s.ID, &s.MovieID, &s.StartsAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
