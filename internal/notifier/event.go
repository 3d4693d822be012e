// Package notifier implements the change notifier: a concurrency-safe
// registry of connected observers and a best-effort broadcast of claim
// events to all of them.
package notifier

// TypeSeatsClaimed identifies the event broadcast after a successful claim.
const TypeSeatsClaimed = "SEATS_CLAIMED"

// Event is the message delivered to every observer connected at publish
// time.  The JSON field names are part of the wire contract consumed by
// browser clients over the websocket.
type Event struct {
	Type       string   `json:"type"`
	ShowID     uint64   `json:"showId"`
	SeatLabels []string `json:"seatLabels"`
}
