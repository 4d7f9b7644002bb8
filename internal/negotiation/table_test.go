package negotiation

import (
	"errors"
	"testing"
	"time"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
)

var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func pendingReservation() model.Reservation {
	return model.Reservation{
		ID:            42,
		ClientID:      7,
		GarageID:      3,
		VehicleID:     11,
		ServiceID:     5,
		RequestedSlot: model.Slot{Date: "2025-03-10", StartTime: "09:00"},
		Status:        model.StatusPending,
		LastProposer:  model.RoleClient,
		Description:   "bruit suspect au freinage",
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
		Version:       1,
	}
}

func TestParseAction(t *testing.T) {
	for _, s := range []string{"ACCEPT", "REFUSE", "COUNTER_PROPOSE", "ACCEPT_COUNTER", "CANCEL"} {
		if _, ok := ParseAction(s); !ok {
			t.Errorf("ParseAction(%q) rejected a valid action", s)
		}
	}
	for _, s := range []string{"", "accept", "DELETE", "ACCEPTE"} {
		if _, ok := ParseAction(s); ok {
			t.Errorf("ParseAction(%q) accepted an unknown action", s)
		}
	}
}

func TestGarageAcceptsPending(t *testing.T) {
	rec := pendingReservation()
	got, err := Decide(rec, model.RoleGarage, ActionAccept, Payload{}, testNow)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if got.Status != model.StatusAccepted {
		t.Errorf("status = %v, want %v", got.Status, model.StatusAccepted)
	}
	if !got.RequestedSlot.Equal(rec.RequestedSlot) {
		t.Errorf("requested slot changed on accept: %v", got.RequestedSlot)
	}
}

func TestGarageRefusesPendingWithMessage(t *testing.T) {
	rec := pendingReservation()
	got, err := Decide(rec, model.RoleGarage, ActionRefuse, Payload{Message: strPtr("complet cette semaine")}, testNow)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if got.Status != model.StatusRefused {
		t.Errorf("status = %v, want %v", got.Status, model.StatusRefused)
	}
	if got.GarageMessage == nil || *got.GarageMessage != "complet cette semaine" {
		t.Errorf("garage message = %v, want set", got.GarageMessage)
	}
}

func TestGarageCounterProposes(t *testing.T) {
	rec := pendingReservation()
	slot := model.Slot{Date: "2025-03-10", StartTime: "14:00"}
	got, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &slot, Message: strPtr("plus tôt occupé")}, testNow)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if got.Status != model.StatusCounterProposed {
		t.Errorf("status = %v, want %v", got.Status, model.StatusCounterProposed)
	}
	if got.ProposedSlot == nil || !got.ProposedSlot.Equal(slot) {
		t.Errorf("proposed slot = %v, want %v", got.ProposedSlot, slot)
	}
	if got.LastProposer != model.RoleGarage {
		t.Errorf("last proposer = %v, want %v", got.LastProposer, model.RoleGarage)
	}
	if !got.RequestedSlot.Equal(rec.RequestedSlot) {
		t.Errorf("requested slot must survive a garage counter, got %v", got.RequestedSlot)
	}
}

func TestCounterProposeRequiresSlot(t *testing.T) {
	rec := pendingReservation()
	if _, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{}, testNow); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
}

func TestCounterProposeRejectsPastSlot(t *testing.T) {
	rec := pendingReservation()
	past := model.Slot{Date: "2025-03-09", StartTime: "09:00"}
	if _, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &past}, testNow); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
}

func TestCounterProposeRejectsMalformedSlot(t *testing.T) {
	rec := pendingReservation()
	bad := model.Slot{Date: "10/03/2025", StartTime: "9h"}
	if _, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &bad}, testNow); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}
}

func TestClientCannotActOnPendingExceptCancel(t *testing.T) {
	rec := pendingReservation()
	slot := model.Slot{Date: "2025-03-12", StartTime: "10:00"}
	for _, action := range []Action{ActionAccept, ActionRefuse, ActionAcceptCounter, ActionCounterPropose} {
		if _, err := Decide(rec, model.RoleClient, action, Payload{Slot: &slot}, testNow); !errors.Is(err, ErrIneligibleActor) {
			t.Errorf("client %s on pending: err = %v, want ErrIneligibleActor", action, err)
		}
	}
}

func TestCancelFromEveryNonTerminalState(t *testing.T) {
	counter := pendingReservation()
	counter.Status = model.StatusCounterProposed
	counter.LastProposer = model.RoleGarage
	counter.ProposedSlot = &model.Slot{Date: "2025-03-10", StartTime: "14:00"}

	cases := []struct {
		name  string
		rec   model.Reservation
		actor model.Role
	}{
		{"client cancels pending", pendingReservation(), model.RoleClient},
		{"garage cancels pending", pendingReservation(), model.RoleGarage},
		{"client cancels counter-proposed", counter, model.RoleClient},
		{"garage cancels counter-proposed", counter, model.RoleGarage},
	}
	for _, tc := range cases {
		got, err := Decide(tc.rec, tc.actor, ActionCancel, Payload{Message: strPtr("annulé")}, testNow)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got.Status != model.StatusCancelled {
			t.Errorf("%s: status = %v, want %v", tc.name, got.Status, model.StatusCancelled)
		}
		if got.ProposedSlot != nil {
			t.Errorf("%s: proposed slot survived cancellation: %v", tc.name, got.ProposedSlot)
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	slot := model.Slot{Date: "2025-03-12", StartTime: "10:00"}
	actions := []Action{ActionAccept, ActionRefuse, ActionCounterPropose, ActionAcceptCounter, ActionCancel}
	for _, status := range []model.Status{model.StatusAccepted, model.StatusRefused, model.StatusCancelled} {
		for _, actor := range []model.Role{model.RoleClient, model.RoleGarage} {
			for _, action := range actions {
				rec := pendingReservation()
				rec.Status = status
				if _, err := Decide(rec, actor, action, Payload{Slot: &slot}, testNow); !errors.Is(err, ErrTerminalState) {
					t.Errorf("%s %s on %s: err = %v, want ErrTerminalState", actor, action, status, err)
				}
			}
		}
	}
}

func TestCounterProposalAcceptanceRoundTrip(t *testing.T) {
	rec := pendingReservation()
	slotX := model.Slot{Date: "2025-03-10", StartTime: "14:00"}

	afterCounter, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &slotX}, testNow)
	if err != nil {
		t.Fatalf("garage counter: %v", err)
	}
	if afterCounter.Status != model.StatusCounterProposed || afterCounter.ProposedSlot == nil || !afterCounter.ProposedSlot.Equal(slotX) {
		t.Fatalf("after counter: status=%v proposed=%v", afterCounter.Status, afterCounter.ProposedSlot)
	}

	accepted, err := Decide(afterCounter, model.RoleClient, ActionAcceptCounter, Payload{}, testNow)
	if err != nil {
		t.Fatalf("client accept counter: %v", err)
	}
	if accepted.Status != model.StatusAccepted {
		t.Errorf("status = %v, want %v", accepted.Status, model.StatusAccepted)
	}
	if !accepted.RequestedSlot.Equal(slotX) {
		t.Errorf("requested slot = %v, want adopted %v", accepted.RequestedSlot, slotX)
	}
	if accepted.ProposedSlot != nil {
		t.Errorf("proposed slot not cleared: %v", accepted.ProposedSlot)
	}
}

// Re-countering hands the turn back and forth: after the garage counters,
// only the client may respond; after the client re-counters, only the
// garage may.  This exercises the full negotiation loop end to end.
func TestCounterProposalTurnTaking(t *testing.T) {
	rec := pendingReservation()
	garageSlot := model.Slot{Date: "2025-03-10", StartTime: "14:00"}
	clientSlot := model.Slot{Date: "2025-03-11", StartTime: "09:00"}

	afterGarage, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &garageSlot, Message: strPtr("plus tôt occupé")}, testNow)
	if err != nil {
		t.Fatalf("garage counter: %v", err)
	}

	// The garage already spoke; it may not respond to itself.
	for _, action := range []Action{ActionAccept, ActionRefuse, ActionCounterPropose} {
		if _, err := Decide(afterGarage, model.RoleGarage, action, Payload{Slot: &clientSlot}, testNow); !errors.Is(err, ErrIneligibleActor) {
			t.Errorf("garage %s while its counter pends: err = %v, want ErrIneligibleActor", action, err)
		}
	}

	afterClient, err := Decide(afterGarage, model.RoleClient, ActionCounterPropose, Payload{Slot: &clientSlot}, testNow)
	if err != nil {
		t.Fatalf("client re-counter: %v", err)
	}
	if afterClient.Status != model.StatusCounterProposed {
		t.Errorf("status = %v, want %v", afterClient.Status, model.StatusCounterProposed)
	}
	if !afterClient.RequestedSlot.Equal(clientSlot) {
		t.Errorf("requested slot = %v, want %v", afterClient.RequestedSlot, clientSlot)
	}
	if afterClient.ProposedSlot != nil {
		t.Errorf("proposed slot not cleared by client re-counter: %v", afterClient.ProposedSlot)
	}
	if afterClient.LastProposer != model.RoleClient {
		t.Errorf("last proposer = %v, want %v", afterClient.LastProposer, model.RoleClient)
	}

	// Now the ball is with the garage again: the client may not respond
	// to its own proposal, while the garage may settle it.
	if _, err := Decide(afterClient, model.RoleClient, ActionAcceptCounter, Payload{}, testNow); !errors.Is(err, ErrIneligibleActor) {
		t.Errorf("client accept-counter of own proposal: err = %v, want ErrIneligibleActor", err)
	}
	settled, err := Decide(afterClient, model.RoleGarage, ActionAccept, Payload{}, testNow)
	if err != nil {
		t.Fatalf("garage accept after client re-counter: %v", err)
	}
	if settled.Status != model.StatusAccepted {
		t.Errorf("status = %v, want %v", settled.Status, model.StatusAccepted)
	}
	if !settled.RequestedSlot.Equal(clientSlot) {
		t.Errorf("agreed slot = %v, want client's %v", settled.RequestedSlot, clientSlot)
	}
}

func TestMessagesAreOverwrittenNotAppended(t *testing.T) {
	rec := pendingReservation()
	slot1 := model.Slot{Date: "2025-03-11", StartTime: "10:00"}
	first, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &slot1, Message: strPtr("mardi plutôt ?")}, testNow)
	if err != nil {
		t.Fatalf("first counter: %v", err)
	}
	slot2 := model.Slot{Date: "2025-03-12", StartTime: "10:00"}
	second, err := Decide(first, model.RoleClient, ActionCounterPropose, Payload{Slot: &slot2}, testNow)
	if err != nil {
		t.Fatalf("client counter: %v", err)
	}
	third, err := Decide(second, model.RoleGarage, ActionCounterPropose, Payload{Slot: &slot1, Message: strPtr("mercredi complet")}, testNow)
	if err != nil {
		t.Fatalf("second garage counter: %v", err)
	}
	if third.GarageMessage == nil || *third.GarageMessage != "mercredi complet" {
		t.Errorf("garage message = %v, want latest only", third.GarageMessage)
	}
}

func TestDecideDoesNotMutateInput(t *testing.T) {
	rec := pendingReservation()
	before := rec
	slot := model.Slot{Date: "2025-03-11", StartTime: "10:00"}
	if _, err := Decide(rec, model.RoleGarage, ActionCounterPropose, Payload{Slot: &slot}, testNow); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if rec != before {
		t.Errorf("Decide mutated its input: %+v", rec)
	}
}
