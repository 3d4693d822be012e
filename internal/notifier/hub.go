package notifier

import "sync"

// subscriberBuffer is the per-observer channel depth.  A full buffer means
// the observer is too slow to keep up; further events are dropped for that
// observer only (delivery is best-effort, clients re-fetch the seat map).
const subscriberBuffer = 16

// Subscription is an observer handle.  Receive events from C; hand the
// subscription back to Hub.Unsubscribe when the observer disconnects, after
// which C is closed.
type Subscription struct {
	C  <-chan Event
	id uint64
	ch chan Event
}

// Hub is the observer registry.  Subscribe, Unsubscribe and Publish may be
// called concurrently from arbitrary goroutines; the registry map is
// guarded by a mutex and sends never block, so a publish cannot be wedged
// by a stalled or departing observer.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan Event
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan Event)}
}

// Subscribe registers a new observer and returns its handle.  The observer
// only sees events published after this call; there is no replay.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	h.mu.Unlock()
	return &Subscription{C: ch, id: id, ch: ch}
}

// Unsubscribe removes the observer and closes its channel.  Calling it
// more than once, or with a subscription from another hub, is a no-op.
func (h *Hub) Unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	h.mu.Lock()
	if ch, ok := h.subs[s.id]; ok && ch == s.ch {
		delete(h.subs, s.id)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish delivers ev to every currently subscribed observer, at most once
// each.  Observers whose buffers are full are skipped.  The send happens
// under the registry lock so an observer can never receive on a channel
// that Unsubscribe has already closed.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default: // observer too slow, drop
		}
	}
	h.mu.Unlock()
}

// Len reports the number of currently subscribed observers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
