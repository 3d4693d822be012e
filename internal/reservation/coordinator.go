package reservation

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cinetix/seat-reservation/internal/notifier"
	"github.com/cinetix/seat-reservation/internal/queue"
)

// Store opens a transaction against the seat store and runs fn inside it.
// WithTx commits when fn returns nil and rolls back otherwise, so no code
// path can leave a transaction open.  Implementations must guarantee that
// Tx.LockAvailableSeats acquires exclusive row locks held until the
// transaction ends: two concurrent transactions must never both observe
// the same seat as available.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of statements the engine issues inside one transaction.
// The MySQL implementation lives in the repository package; tests use an
// in-memory fake that serializes whole transactions.
type Tx interface {
	// ShowExists reports whether the show row exists.
	ShowExists(ctx context.Context, showID uint64) (bool, error)
	// LockAvailableSeats returns the labels among the requested set whose
	// seat rows are currently AVAILABLE, locking each matched row
	// exclusively for the remainder of the transaction.
	LockAvailableSeats(ctx context.Context, showID uint64, labels []string) ([]string, error)
	// ClaimSeats transitions the given seats to CLAIMED for the claimant.
	ClaimSeats(ctx context.Context, showID uint64, labels []string, claimantID uint64) error
	// InsertShow creates a show row and returns its ID.
	InsertShow(ctx context.Context, movieID uint64, startsAt time.Time) (uint64, error)
	// InsertSeats bulk-creates AVAILABLE seat rows for a show.
	InsertSeats(ctx context.Context, showID uint64, labels []string) error
	// DeleteShow removes a show row (seats go with it via the cascading
	// FK) and returns how many show rows were deleted.
	DeleteShow(ctx context.Context, showID uint64) (int64, error)
}

// Broadcaster fans a claim event out to currently connected observers.
// Delivery is best-effort and must never block the claim path.
type Broadcaster interface {
	Publish(ev notifier.Event)
}

// AuditPublisher forwards a claim event to the message broker for
// downstream consumers.  Failures are logged and ignored: the broker is an
// audit channel, not part of the claim contract.
type AuditPublisher interface {
	PublishSeatsClaimed(ctx context.Context, ev queue.SeatsClaimedEvent) error
}

// ClaimRequest is the transient input to one coordinator invocation.
type ClaimRequest struct {
	ShowID     uint64
	SeatLabels []string
	ClaimantID uint64
}

// ClaimOutcome is the successful result of a claim: the full set of labels
// that transitioned to CLAIMED, normalized to upper case.
type ClaimOutcome struct {
	Claimed []string
}

// Coordinator owns the concurrency contract of the engine.  It never
// caches seat state between requests; every claim re-reads current status
// inside its own transaction.
type Coordinator struct {
	store Store
	hub   Broadcaster
	audit AuditPublisher // optional; nil disables broker publishing
}

// NewCoordinator constructs a Coordinator.  store and hub must be non-nil;
// audit may be nil when no broker is configured.
func NewCoordinator(store Store, hub Broadcaster, audit AuditPublisher) *Coordinator {
	if store == nil || hub == nil {
		panic("nil dependency passed to NewCoordinator")
	}
	return &Coordinator{store: store, hub: hub, audit: audit}
}

// Claim atomically transitions the requested seats from AVAILABLE to
// CLAIMED for the claimant, or fails the whole batch.  The request is
// validated before any store access.  Inside a single transaction the
// target rows are read with exclusive locks; if any requested seat is
// missing or already claimed the transaction rolls back and a
// *ConflictError names the unavailable labels.  Only after the commit
// succeeds are observers notified, exactly once, so they never learn of a
// claim that could still roll back.
func (co *Coordinator) Claim(ctx context.Context, req ClaimRequest) (ClaimOutcome, error) {
	labels, err := normalizeLabels(req.SeatLabels)
	if err != nil {
		return ClaimOutcome{}, err
	}

	err = co.store.WithTx(ctx, func(tx Tx) error {
		ok, err := tx.ShowExists(ctx, req.ShowID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		available, err := tx.LockAvailableSeats(ctx, req.ShowID, labels)
		if err != nil {
			return err
		}
		if len(available) != len(labels) {
			// All-or-nothing: returning an error rolls the transaction
			// back, so no seat in the batch is left claimed.
			return &ConflictError{Unavailable: missingLabels(labels, available)}
		}
		return tx.ClaimSeats(ctx, req.ShowID, labels, req.ClaimantID)
	})
	if err != nil {
		return ClaimOutcome{}, err
	}

	co.hub.Publish(notifier.Event{
		Type:       notifier.TypeSeatsClaimed,
		ShowID:     req.ShowID,
		SeatLabels: labels,
	})
	if co.audit != nil {
		ev := queue.SeatsClaimedEvent{
			ShowID:     req.ShowID,
			SeatLabels: labels,
			ClaimantID: req.ClaimantID,
			ClaimedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := co.audit.PublishSeatsClaimed(pubCtx, ev); err != nil {
				log.Printf("coordinator: audit publish failed: %v", err)
			}
		}()
	}
	return ClaimOutcome{Claimed: labels}, nil
}

// normalizeLabels trims and upper-cases the requested labels and rejects
// empty sets, blank labels and duplicates before the store is touched.
func normalizeLabels(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidRequest
	}
	labels := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, l := range raw {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" {
			return nil, ErrInvalidRequest
		}
		if _, dup := seen[l]; dup {
			return nil, ErrInvalidRequest
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	return labels, nil
}

// missingLabels returns the requested labels that are not in the matched
// set, preserving request order.
func missingLabels(requested, matched []string) []string {
	have := make(map[string]struct{}, len(matched))
	for _, l := range matched {
		have[l] = struct{}{}
	}
	var missing []string
	for _, l := range requested {
		if _, ok := have[l]; !ok {
			missing = append(missing, l)
		}
	}
	return missing
}
