package model

import (
	"fmt"
	"time"
)

// Status is the negotiation state of a reservation.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusAccepted        Status = "ACCEPTED"
	StatusRefused         Status = "REFUSED"
	StatusCounterProposed Status = "COUNTER_PROPOSED"
	StatusCancelled       Status = "CANCELLED"
)

// validTransitions encodes which statuses may follow each status.  The
// acting role and last proposer narrow these further; see the negotiation
// package for the full eligibility rules.
var validTransitions = map[Status][]Status{
	StatusPending:         {StatusAccepted, StatusRefused, StatusCounterProposed, StatusCancelled},
	StatusCounterProposed: {StatusAccepted, StatusRefused, StatusCounterProposed, StatusCancelled},
	StatusAccepted:        {},
	StatusRefused:         {},
	StatusCancelled:       {},
}

// IsValid returns true if the status is a recognized reservation status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsTerminal returns true if no further transitions are possible from this
// status.  Terminality is absolute: there is no re-open action.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed by the status graph alone.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus converts a stored string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid reservation status: %s", s)
	}
	return st, nil
}

// Role identifies which party is acting on a reservation.  The values
// match the role claim carried in access tokens.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleGarage Role = "GARAGE"
)

// Other returns the counterparty of a role.
func (r Role) Other() Role {
	if r == RoleClient {
		return RoleGarage
	}
	return RoleClient
}

// Reservation is the shared negotiation record between a client and a
// garage.  The foreign references are immutable after creation and owned
// by the surrounding CRUD services; everything else mutates only through
// the negotiation transition table.
//
// Fields:
//  ID            – primary key identifier, assigned at creation.
//  ClientID      – client who requested the appointment.
//  GarageID      – garage being booked.
//  VehicleID     – vehicle the work concerns.
//  ServiceID     – catalog service being requested.
//  RequestedSlot – most recent client-authored slot proposal.
//  ProposedSlot  – most recent garage counter-proposal; present only
//                  while the status is COUNTER_PROPOSED.
//  Status        – negotiation state (see Status).
//  LastProposer  – which party authored the proposal currently on the
//                  table; decides who may respond while counter-proposed.
//  GarageMessage – latest free-text message from the garage (overwritten
//                  per action, no history).
//  ClientMessage – latest free-text message from the client.
//  Description   – client-authored problem description, fixed at creation.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – bumped on every successful transition.
//  Version       – optimistic concurrency guard; incremented per write.
type Reservation struct {
	ID            uint64    `json:"id"`
	ClientID      uint64    `json:"client_id"`
	GarageID      uint64    `json:"garage_id"`
	VehicleID     uint64    `json:"vehicle_id"`
	ServiceID     uint64    `json:"service_id"`
	RequestedSlot Slot      `json:"requested_slot"`
	ProposedSlot  *Slot     `json:"proposed_slot,omitempty"`
	Status        Status    `json:"status"`
	LastProposer  Role      `json:"last_proposer"`
	GarageMessage *string   `json:"garage_message,omitempty"`
	ClientMessage *string   `json:"client_message,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int64     `json:"version"`
}

// ActiveSlot returns the proposal currently on the table: the garage
// counter-proposal when one is pending, otherwise the client's requested
// slot.  Listings use it to decide whether the reservation has lapsed.
func (r Reservation) ActiveSlot() Slot {
	if r.ProposedSlot != nil {
		return *r.ProposedSlot
	}
	return r.RequestedSlot
}
