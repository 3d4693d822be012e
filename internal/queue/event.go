// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// SeatsClaimedEvent is published to the broker after a claim transaction
// commits.  It carries enough for downstream consumers to log, notify, or
// feed analytics without querying the primary database.  This is the
// durable audit channel; live observers get the same claim over the
// notifier hub instead.
type SeatsClaimedEvent struct {
	ShowID     uint64   `json:"show_id"`
	SeatLabels []string `json:"seats"`
	ClaimantID uint64   `json:"claimant_id"`
	ClaimedAt  string   `json:"claimed_at"`
}
