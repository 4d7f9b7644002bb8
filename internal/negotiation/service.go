package negotiation

import (
	"context"
	"errors"
	"time"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
)

// maxAttempts bounds the read-decide-write retry loop.  After this many
// failed guards the caller gets ErrConflict and may re-fetch and resubmit.
const maxAttempts = 3

// Store is the record store consumed by the service.  UpdateGuarded must
// persist the record only if the stored version still equals
// expectedVersion, returning the committed record (with its bumped
// version) on success and ErrStale when the guard fails.
type Store interface {
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	Insert(ctx context.Context, rec model.Reservation) (model.Reservation, error)
	UpdateGuarded(ctx context.Context, rec model.Reservation, expectedVersion int64) (model.Reservation, error)
}

// TransitionListener observes committed transitions.  It runs after the
// guarded write succeeded and must not influence the outcome; the queue
// publisher hangs off this hook.
type TransitionListener func(old, updated model.Reservation, actor model.Role, action Action)

// Service orchestrates negotiation actions: it loads the current record,
// consults the transition table and performs the guarded write-back.
// Concurrency is handled optimistically; no locks are held across the
// read-decide-write sequence.
type Service struct {
	store    Store
	now      func() time.Time
	listener TransitionListener
}

// NewService builds a Service over the given store.  now may be nil, in
// which case wall-clock UTC time is used.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{store: store, now: now}
}

// OnTransition registers a listener invoked after every committed
// transition.  Passing nil removes the current listener.
func (s *Service) OnTransition(l TransitionListener) { s.listener = l }

// NewReservation carries the client-supplied fields for Create.
type NewReservation struct {
	ClientID    uint64
	GarageID    uint64
	VehicleID   uint64
	ServiceID   uint64
	Slot        model.Slot
	Description string
	Message     *string
}

// Create validates the requested slot and persists a fresh PENDING
// reservation.  Creation is outside the transition table proper but
// subject to the same past-slot rule.
func (s *Service) Create(ctx context.Context, req NewReservation) (model.Reservation, error) {
	now := s.now()
	if err := req.Slot.Validate(); err != nil {
		return model.Reservation{}, ErrInvalidSlot
	}
	if req.Slot.IsPast(now) {
		return model.Reservation{}, ErrInvalidSlot
	}
	rec := model.Reservation{
		ClientID:      req.ClientID,
		GarageID:      req.GarageID,
		VehicleID:     req.VehicleID,
		ServiceID:     req.ServiceID,
		RequestedSlot: req.Slot,
		Status:        model.StatusPending,
		LastProposer:  model.RoleClient,
		ClientMessage: req.Message,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}
	return s.store.Insert(ctx, rec)
}

// Apply executes one negotiation action against the reservation.  On a
// guard failure the whole load-decide-write sequence is retried from the
// top, so a concurrent transition is always observed before deciding
// again; eligibility or terminal-state errors from the re-read propagate
// as such.  No partial writes occur on any error path.
func (s *Service) Apply(ctx context.Context, id uint64, actor model.Role, action Action, payload Payload) (model.Reservation, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return model.Reservation{}, err
		}
		current, err := s.store.GetByID(ctx, id)
		if err != nil {
			return model.Reservation{}, err
		}
		next, err := Decide(current, actor, action, payload, s.now())
		if err != nil {
			return model.Reservation{}, err
		}
		next.UpdatedAt = s.now()
		committed, err := s.store.UpdateGuarded(ctx, next, current.Version)
		if errors.Is(err, ErrStale) {
			continue
		}
		if err != nil {
			return model.Reservation{}, err
		}
		if s.listener != nil {
			s.listener(current, committed, actor, action)
		}
		return committed, nil
	}
	return model.Reservation{}, ErrConflict
}
