package negotiation

import (
	"time"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
)

// FilterActive returns only the reservations whose slot on the table (the
// garage counter-proposal when present, otherwise the requested slot) has
// not lapsed.  It is a pure read-time filter: a lapsed reservation keeps
// its stored status and simply stops appearing in listings.  Applying the
// filter twice yields the same result.
func FilterActive(recs []model.Reservation, now time.Time) []model.Reservation {
	active := make([]model.Reservation, 0, len(recs))
	for _, rec := range recs {
		if rec.ActiveSlot().IsPast(now) {
			continue
		}
		active = append(active, rec)
	}
	return active
}

// CountNeedingAction returns how many of the given reservations are
// waiting on the viewer's response.  A garage owes a response to fresh
// requests and to client re-counters; a client owes a response to garage
// counter-proposals.  Pure projection, computed per listing request.
func CountNeedingAction(recs []model.Reservation, viewer model.Role) int {
	n := 0
	for _, rec := range recs {
		if NeedsActionBy(rec, viewer) {
			n++
		}
	}
	return n
}

// NeedsActionBy reports whether the reservation is waiting on the given
// role to act.
func NeedsActionBy(rec model.Reservation, viewer model.Role) bool {
	switch rec.Status {
	case model.StatusPending:
		return viewer == model.RoleGarage
	case model.StatusCounterProposed:
		return viewer == rec.LastProposer.Other()
	}
	return false
}
