// Package negotiation implements the state machine through which a client
// and a garage agree on an appointment slot: proposals, counter-proposals,
// acceptance, refusal and cancellation.  The package is persistence
// agnostic; storage is consumed through the Store interface.
package negotiation

import "errors"

// Sentinel errors returned by Decide and Service.  Handlers distinguish
// them with errors.Is: ErrConflict means "re-fetch and resubmit", the
// others mean the action is not allowed as issued.
var (
	// ErrNotFound is returned when the referenced reservation id does
	// not exist in the store.
	ErrNotFound = errors.New("reservation not found")

	// ErrIneligibleActor is returned when the acting role is not
	// entitled to perform the action in the current state.
	ErrIneligibleActor = errors.New("actor not eligible for this action")

	// ErrTerminalState is returned for any action attempted against an
	// accepted, refused or cancelled reservation.
	ErrTerminalState = errors.New("reservation is in a terminal state")

	// ErrInvalidSlot is returned when a proposed slot is malformed or
	// dated strictly before today.
	ErrInvalidSlot = errors.New("slot is malformed or in the past")

	// ErrConflict is returned when the optimistic-concurrency guard
	// failed after the retry bound was exhausted.
	ErrConflict = errors.New("reservation was modified concurrently")

	// ErrStale signals a single failed guarded write.  Stores return it
	// from UpdateGuarded; the service retries and eventually surfaces
	// ErrConflict, so callers outside the package never see ErrStale.
	ErrStale = errors.New("stale reservation version")
)
