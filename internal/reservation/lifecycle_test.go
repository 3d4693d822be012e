package reservation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSeatLabels(t *testing.T) {
	t.Parallel()

	t.Run("default grid", func(t *testing.T) {
		labels := SeatLabels(5, 8)
		if len(labels) != 40 {
			t.Fatalf("expected 40 labels, got %d", len(labels))
		}
		if labels[0] != "A1" {
			t.Fatalf("expected first label A1, got %s", labels[0])
		}
		if labels[len(labels)-1] != "E8" {
			t.Fatalf("expected last label E8, got %s", labels[len(labels)-1])
		}
		seen := make(map[string]struct{}, len(labels))
		for _, l := range labels {
			if _, dup := seen[l]; dup {
				t.Fatalf("duplicate label %s", l)
			}
			seen[l] = struct{}{}
		}
	})

	t.Run("rows beyond Z", func(t *testing.T) {
		labels := SeatLabels(28, 1)
		if labels[25] != "Z1" {
			t.Fatalf("expected row 26 to be Z, got %s", labels[25])
		}
		if labels[26] != "AA1" {
			t.Fatalf("expected row 27 to be AA, got %s", labels[26])
		}
		if labels[27] != "AB1" {
			t.Fatalf("expected row 28 to be AB, got %s", labels[27])
		}
	})
}

func TestLifecycle_CreateShow(t *testing.T) {
	t.Parallel()

	startsAt := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)

	t.Run("creates full grid", func(t *testing.T) {
		store := newFakeStore()
		lc := NewLifecycle(store, 5, 8)

		showID, err := lc.CreateShow(context.Background(), 1, startsAt, 2, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if showID == 0 {
			t.Fatalf("expected a show ID")
		}
		for _, l := range []string{"A1", "A2", "A3", "B1", "B2", "B3"} {
			seat := store.seat(showID, l)
			if seat == nil || seat.status != "AVAILABLE" {
				t.Fatalf("seat %s = %+v, want AVAILABLE", l, seat)
			}
		}
	})

	t.Run("zero dimensions use defaults", func(t *testing.T) {
		store := newFakeStore()
		lc := NewLifecycle(store, 2, 2)

		showID, err := lc.CreateShow(context.Background(), 1, startsAt, 0, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, l := range []string{"A1", "A2", "B1", "B2"} {
			if store.seat(showID, l) == nil {
				t.Fatalf("default grid missing seat %s", l)
			}
		}
	})

	t.Run("rejects invalid dimensions", func(t *testing.T) {
		cases := []struct {
			name       string
			rows, cols int
		}{
			{"negative rows", -1, 8},
			{"grid too large", 200, 200},
			// Dimensions whose product overflows int must fail the same
			// way, not wrap around the grid-size check.
			{"overflowing product", 3037000500, 3037000500},
			{"one huge dimension", 1, int(^uint(0) >> 1)},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				store := newFakeStore()
				lc := NewLifecycle(store, 5, 8)

				if _, err := lc.CreateShow(context.Background(), 1, startsAt, tc.rows, tc.cols); !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("expected ErrInvalidRequest, got %v", err)
				}
				if store.transactions() != 0 {
					t.Fatalf("store touched for invalid dimensions")
				}
			})
		}
	})

	t.Run("seat failure rolls back the show", func(t *testing.T) {
		store := newFakeStore()
		store.insertSeatErr = errors.New("insert exploded")
		lc := NewLifecycle(store, 5, 8)

		if _, err := lc.CreateShow(context.Background(), 1, startsAt, 2, 2); err == nil {
			t.Fatalf("expected error")
		}
		// Nothing committed: no show may exist with zero or partial seats.
		if store.commitCount != 0 {
			t.Fatalf("transaction committed despite seat failure")
		}
		if len(store.shows) != 0 {
			t.Fatalf("show row survived the rollback: %v", store.shows)
		}
	})
}

func TestLifecycle_DeleteShow(t *testing.T) {
	t.Parallel()

	t.Run("removes show and all seats", func(t *testing.T) {
		store := newFakeStore()
		store.addShow(1, SeatLabels(5, 8)...)
		// Some seats already claimed; delete must take them too.
		co := NewCoordinator(store, &fakeHub{}, nil)
		if _, err := co.Claim(context.Background(), ClaimRequest{ShowID: 1, SeatLabels: []string{"A1", "A2", "A3", "A4", "A5"}, ClaimantID: 9}); err != nil {
			t.Fatalf("seed claim failed: %v", err)
		}

		lc := NewLifecycle(store, 5, 8)
		if err := lc.DeleteShow(context.Background(), 1); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.seat(1, "A1") != nil {
			t.Fatalf("orphaned seat survived show deletion")
		}
		// A claim against the deleted show now fails cleanly.
		if _, err := co.Claim(context.Background(), ClaimRequest{ShowID: 1, SeatLabels: []string{"B1"}, ClaimantID: 9}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("unknown show", func(t *testing.T) {
		store := newFakeStore()
		lc := NewLifecycle(store, 5, 8)
		if err := lc.DeleteShow(context.Background(), 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
