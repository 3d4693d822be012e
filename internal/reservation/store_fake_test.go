package reservation

import (
	"context"
	"sync"
	"time"
)

// fakeSeat is one seat row in the in-memory store.
type fakeSeat struct {
	status   string
	claimant uint64
}

// fakeStore is an in-memory Store whose transactions are serialized by a
// mutex, the degenerate form of row locking: a whole transaction holds all
// rows exclusively.  Each transaction runs against a deep copy that is
// swapped in only on commit, so a failed transaction leaves no trace.
type fakeStore struct {
	mu            sync.Mutex
	beginErr      error
	claimErr      error
	insertSeatErr error

	nextShowID  uint64
	shows       map[uint64]bool
	seats       map[uint64]map[string]*fakeSeat
	txCount     int
	commitCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shows: make(map[uint64]bool),
		seats: make(map[uint64]map[string]*fakeSeat),
	}
}

// addShow seeds a show whose listed seats are all AVAILABLE.
func (s *fakeStore) addShow(id uint64, labels ...string) {
	s.shows[id] = true
	m := make(map[string]*fakeSeat, len(labels))
	for _, l := range labels {
		m[l] = &fakeSeat{status: "AVAILABLE"}
	}
	s.seats[id] = m
	if id > s.nextShowID {
		s.nextShowID = id
	}
}

func (s *fakeStore) seat(showID uint64, label string) *fakeSeat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.seats[showID]; ok {
		if seat, ok := m[label]; ok {
			c := *seat
			return &c
		}
	}
	return nil
}

func (s *fakeStore) transactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txCount
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++
	if s.beginErr != nil {
		return s.beginErr
	}
	stage := s.stage()
	if err := fn(stage); err != nil {
		return err
	}
	s.shows = stage.shows
	s.seats = stage.seats
	s.nextShowID = stage.nextShowID
	s.commitCount++
	return nil
}

// stage deep-copies the store state for one transaction.
func (s *fakeStore) stage() *fakeTx {
	shows := make(map[uint64]bool, len(s.shows))
	for k, v := range s.shows {
		shows[k] = v
	}
	seats := make(map[uint64]map[string]*fakeSeat, len(s.seats))
	for showID, m := range s.seats {
		cp := make(map[string]*fakeSeat, len(m))
		for l, seat := range m {
			c := *seat
			cp[l] = &c
		}
		seats[showID] = cp
	}
	return &fakeTx{store: s, shows: shows, seats: seats, nextShowID: s.nextShowID}
}

type fakeTx struct {
	store      *fakeStore
	shows      map[uint64]bool
	seats      map[uint64]map[string]*fakeSeat
	nextShowID uint64
}

func (t *fakeTx) ShowExists(ctx context.Context, showID uint64) (bool, error) {
	return t.shows[showID], nil
}

func (t *fakeTx) LockAvailableSeats(ctx context.Context, showID uint64, labels []string) ([]string, error) {
	var matched []string
	for _, l := range labels {
		if seat, ok := t.seats[showID][l]; ok && seat.status == "AVAILABLE" {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (t *fakeTx) ClaimSeats(ctx context.Context, showID uint64, labels []string, claimantID uint64) error {
	if t.store.claimErr != nil {
		return t.store.claimErr
	}
	for _, l := range labels {
		seat := t.seats[showID][l]
		seat.status = "CLAIMED"
		seat.claimant = claimantID
	}
	return nil
}

func (t *fakeTx) InsertShow(ctx context.Context, movieID uint64, startsAt time.Time) (uint64, error) {
	t.nextShowID++
	id := t.nextShowID
	t.shows[id] = true
	t.seats[id] = make(map[string]*fakeSeat)
	return id, nil
}

func (t *fakeTx) InsertSeats(ctx context.Context, showID uint64, labels []string) error {
	if t.store.insertSeatErr != nil {
		return t.store.insertSeatErr
	}
	for _, l := range labels {
		t.seats[showID][l] = &fakeSeat{status: "AVAILABLE"}
	}
	return nil
}

func (t *fakeTx) DeleteShow(ctx context.Context, showID uint64) (int64, error) {
	if !t.shows[showID] {
		return 0, nil
	}
	delete(t.shows, showID)
	delete(t.seats, showID)
	return 1, nil
}
