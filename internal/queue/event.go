// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationTransitionedEvent is published after a negotiation action
// commits.  Delivery is best effort (at most once): consumers get enough
// context to log or notify without querying the primary database, and
// both parties discover changes by re-fetching regardless.
type ReservationTransitionedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	ClientID      uint64 `json:"client_id"`
	GarageID      uint64 `json:"garage_id"`
	Actor         string `json:"actor"`
	Action        string `json:"action"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
	SlotDate      string `json:"slot_date"`
	SlotTime      string `json:"slot_time"`
	OccurredAt    string `json:"occurred_at"`
}
