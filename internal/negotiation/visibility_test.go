package negotiation

import (
	"testing"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
)

func reservationAt(status model.Status, requested model.Slot, proposed *model.Slot) model.Reservation {
	rec := pendingReservation()
	rec.Status = status
	rec.RequestedSlot = requested
	rec.ProposedSlot = proposed
	return rec
}

func TestFilterActiveHidesLapsedSlots(t *testing.T) {
	recs := []model.Reservation{
		reservationAt(model.StatusPending, model.Slot{Date: "2025-03-09", StartTime: "09:00"}, nil),  // yesterday
		reservationAt(model.StatusPending, model.Slot{Date: "2025-03-10", StartTime: "08:00"}, nil),  // earlier today
		reservationAt(model.StatusAccepted, model.Slot{Date: "2025-03-11", StartTime: "09:00"}, nil), // tomorrow
	}
	got := FilterActive(recs, testNow)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, rec := range got {
		if rec.RequestedSlot.Date == "2025-03-09" {
			t.Errorf("lapsed reservation survived the filter")
		}
	}
}

// The filter looks at the slot on the table: a counter-proposal for a
// future date keeps the reservation visible even when the original request
// has lapsed, and vice versa.
func TestFilterActiveUsesProposedSlotWhenPresent(t *testing.T) {
	lapsedRequest := reservationAt(model.StatusCounterProposed,
		model.Slot{Date: "2025-03-08", StartTime: "09:00"},
		&model.Slot{Date: "2025-03-12", StartTime: "14:00"})
	lapsedProposal := reservationAt(model.StatusCounterProposed,
		model.Slot{Date: "2025-03-12", StartTime: "09:00"},
		&model.Slot{Date: "2025-03-08", StartTime: "14:00"})

	got := FilterActive([]model.Reservation{lapsedRequest, lapsedProposal}, testNow)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ProposedSlot == nil || got[0].ProposedSlot.Date != "2025-03-12" {
		t.Errorf("wrong survivor: %+v", got[0])
	}
}

func TestFilterActiveIsIdempotent(t *testing.T) {
	recs := []model.Reservation{
		reservationAt(model.StatusPending, model.Slot{Date: "2025-03-09", StartTime: "09:00"}, nil),
		reservationAt(model.StatusPending, model.Slot{Date: "2025-03-11", StartTime: "09:00"}, nil),
	}
	once := FilterActive(recs, testNow)
	twice := FilterActive(once, testNow)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("record %d changed on second pass", i)
		}
	}
}

func TestNeedsActionBy(t *testing.T) {
	garageCounter := reservationAt(model.StatusCounterProposed,
		model.Slot{Date: "2025-03-11", StartTime: "09:00"},
		&model.Slot{Date: "2025-03-12", StartTime: "14:00"})
	garageCounter.LastProposer = model.RoleGarage

	clientCounter := garageCounter
	clientCounter.LastProposer = model.RoleClient

	accepted := reservationAt(model.StatusAccepted, model.Slot{Date: "2025-03-11", StartTime: "09:00"}, nil)

	cases := []struct {
		name   string
		rec    model.Reservation
		viewer model.Role
		want   bool
	}{
		{"pending waits on garage", pendingReservation(), model.RoleGarage, true},
		{"pending does not wait on client", pendingReservation(), model.RoleClient, false},
		{"garage counter waits on client", garageCounter, model.RoleClient, true},
		{"garage counter does not wait on garage", garageCounter, model.RoleGarage, false},
		{"client re-counter waits on garage", clientCounter, model.RoleGarage, true},
		{"client re-counter does not wait on client", clientCounter, model.RoleClient, false},
		{"terminal waits on nobody", accepted, model.RoleGarage, false},
	}
	for _, tc := range cases {
		if got := NeedsActionBy(tc.rec, tc.viewer); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCountNeedingAction(t *testing.T) {
	garageCounter := reservationAt(model.StatusCounterProposed,
		model.Slot{Date: "2025-03-11", StartTime: "09:00"},
		&model.Slot{Date: "2025-03-12", StartTime: "14:00"})
	garageCounter.LastProposer = model.RoleGarage

	recs := []model.Reservation{
		pendingReservation(),
		pendingReservation(),
		garageCounter,
		reservationAt(model.StatusRefused, model.Slot{Date: "2025-03-11", StartTime: "09:00"}, nil),
	}
	if got := CountNeedingAction(recs, model.RoleGarage); got != 2 {
		t.Errorf("garage count = %d, want 2", got)
	}
	if got := CountNeedingAction(recs, model.RoleClient); got != 1 {
		t.Errorf("client count = %d, want 1", got)
	}
}
