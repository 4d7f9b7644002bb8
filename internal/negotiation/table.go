package negotiation

import (
	"time"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
)

// Action is a negotiation request issued by one of the two parties.
type Action string

const (
	ActionAccept         Action = "ACCEPT"
	ActionRefuse         Action = "REFUSE"
	ActionCounterPropose Action = "COUNTER_PROPOSE"
	ActionAcceptCounter  Action = "ACCEPT_COUNTER"
	ActionCancel         Action = "CANCEL"
)

// ParseAction converts a request string into an Action.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionAccept, ActionRefuse, ActionCounterPropose, ActionAcceptCounter, ActionCancel:
		return Action(s), true
	}
	return "", false
}

// Payload carries the optional data attached to an action.  Slot is
// required for CounterPropose and ignored otherwise; Message is accepted
// on every action and overwrites the acting party's stored message.
type Payload struct {
	Slot    *model.Slot
	Message *string
}

// Decide is the transition table: a pure function from (current record,
// actor, action, payload, now) to either the successor record or a typed
// error.  It never mutates its input and never returns both a change and
// an error.
//
// Eligibility while COUNTER_PROPOSED is directional: the party that did
// not author the proposal on the table is the one entitled to respond.
// Cancel is the universal escape hatch, open to both parties from every
// non-terminal state.
func Decide(rec model.Reservation, actor model.Role, action Action, payload Payload, now time.Time) (model.Reservation, error) {
	if rec.Status.IsTerminal() {
		return model.Reservation{}, ErrTerminalState
	}

	if action == ActionCancel {
		// A proposal never outlives the negotiation it belongs to.
		rec.ProposedSlot = nil
		rec.Status = model.StatusCancelled
		setMessage(&rec, actor, payload.Message)
		return rec, nil
	}

	switch rec.Status {
	case model.StatusPending:
		if actor != model.RoleGarage {
			return model.Reservation{}, ErrIneligibleActor
		}
		switch action {
		case ActionAccept:
			rec.Status = model.StatusAccepted
			setMessage(&rec, actor, payload.Message)
			return rec, nil
		case ActionRefuse:
			rec.Status = model.StatusRefused
			setMessage(&rec, actor, payload.Message)
			return rec, nil
		case ActionCounterPropose:
			return counterPropose(rec, actor, payload, now)
		}
		return model.Reservation{}, ErrIneligibleActor

	case model.StatusCounterProposed:
		// Only the counterparty of the last proposer may respond.
		if actor != rec.LastProposer.Other() {
			return model.Reservation{}, ErrIneligibleActor
		}
		switch {
		case actor == model.RoleClient && action == ActionAcceptCounter:
			if rec.ProposedSlot == nil {
				// No garage proposal on the table; nothing to accept.
				return model.Reservation{}, ErrIneligibleActor
			}
			// Adopt the garage's slot as the agreed appointment.
			rec.RequestedSlot = *rec.ProposedSlot
			rec.ProposedSlot = nil
			rec.Status = model.StatusAccepted
			setMessage(&rec, actor, payload.Message)
			return rec, nil
		case actor == model.RoleGarage && action == ActionAccept:
			// The client re-countered; accepting takes their requested slot.
			rec.ProposedSlot = nil
			rec.Status = model.StatusAccepted
			setMessage(&rec, actor, payload.Message)
			return rec, nil
		case actor == model.RoleGarage && action == ActionRefuse:
			rec.ProposedSlot = nil
			rec.Status = model.StatusRefused
			setMessage(&rec, actor, payload.Message)
			return rec, nil
		case action == ActionCounterPropose:
			return counterPropose(rec, actor, payload, now)
		}
		return model.Reservation{}, ErrIneligibleActor
	}

	return model.Reservation{}, ErrIneligibleActor
}

// counterPropose validates the supplied slot and records it as the
// proposal on the table.  A garage counter lands in ProposedSlot; a
// client counter replaces RequestedSlot and clears ProposedSlot, handing
// the turn back to the garage.
func counterPropose(rec model.Reservation, actor model.Role, payload Payload, now time.Time) (model.Reservation, error) {
	if payload.Slot == nil {
		return model.Reservation{}, ErrInvalidSlot
	}
	slot := *payload.Slot
	if err := slot.Validate(); err != nil {
		return model.Reservation{}, ErrInvalidSlot
	}
	if slot.IsPast(now) {
		return model.Reservation{}, ErrInvalidSlot
	}
	if actor == model.RoleGarage {
		rec.ProposedSlot = &slot
	} else {
		rec.RequestedSlot = slot
		rec.ProposedSlot = nil
	}
	rec.Status = model.StatusCounterProposed
	rec.LastProposer = actor
	setMessage(&rec, actor, payload.Message)
	return rec, nil
}

// setMessage overwrites the acting party's message field.  There is no
// message history: a nil message clears the previous one.
func setMessage(rec *model.Reservation, actor model.Role, msg *string) {
	if actor == model.RoleGarage {
		rec.GarageMessage = msg
	} else {
		rec.ClientMessage = msg
	}
}
