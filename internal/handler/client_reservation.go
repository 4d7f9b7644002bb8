package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/model"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/negotiation"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/repository"
)

// ClientReservationHandler exposes the client side of slot negotiation:
// creating reservations, listing them, and responding to garage
// counter-proposals.  JWT authentication and the CLIENT role are enforced
// by middleware; handlers only verify that the reservation belongs to the
// caller.
type ClientReservationHandler struct {
	Service *negotiation.Service
	Repo    *repository.ReservationRepo
}

// NewClientReservationHandler constructs the handler.  Both dependencies
// must be non-nil.
func NewClientReservationHandler(svc *negotiation.Service, repo *repository.ReservationRepo) *ClientReservationHandler {
	if svc == nil || repo == nil {
		panic("nil dependency passed to NewClientReservationHandler")
	}
	return &ClientReservationHandler{Service: svc, Repo: repo}
}

type createReservationReq struct {
	GarageID    uint64     `json:"garage_id"`
	VehicleID   uint64     `json:"vehicle_id"`
	ServiceID   uint64     `json:"service_id"`
	Slot        model.Slot `json:"slot"`
	Description string     `json:"description"`
	Message     *string    `json:"message,omitempty"`
}

type actionReq struct {
	Action  string      `json:"action"`
	Slot    *model.Slot `json:"slot,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// CreateReservation handles POST /v1/reservations.  It opens a new
// negotiation in PENDING state.  The requested slot must not be dated
// before today; 400 is returned otherwise.
func (h *ClientReservationHandler) CreateReservation(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.GarageID == 0 || req.VehicleID == 0 || req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "garage_id, vehicle_id and service_id are required"})
	}
	rec, err := h.Service.Create(c.Request().Context(), negotiation.NewReservation{
		ClientID:    clientID,
		GarageID:    req.GarageID,
		VehicleID:   req.VehicleID,
		ServiceID:   req.ServiceID,
		Slot:        req.Slot,
		Description: req.Description,
		Message:     req.Message,
	})
	if err != nil {
		return negotiationError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rec})
}

// ListReservations handles GET /v1/my-reservations.  Reservations whose
// slot date has elapsed are filtered out at read time; their stored
// status is untouched.  The response carries a needs_action counter so
// the client UI can badge counter-proposals awaiting a reply.
func (h *ClientReservationHandler) ListReservations(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	recs, err := h.Repo.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	active := negotiation.FilterActive(recs, time.Now().UTC())
	return c.JSON(http.StatusOK, echo.Map{
		"items":        active,
		"count":        len(active),
		"needs_action": negotiation.CountNeedingAction(active, model.RoleClient),
	})
}

// GetReservation handles GET /v1/reservations/:id for the owning client.
func (h *ClientReservationHandler) GetReservation(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rec, err := h.loadOwned(c, clientID)
	if err != nil {
		return negotiationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rec})
}

// Act handles POST /v1/reservations/:id/actions.  Clients may
// counter-propose, accept a garage counter-proposal or cancel; the
// transition table rejects anything else with a typed error.
func (h *ClientReservationHandler) Act(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rec, err := h.loadOwned(c, clientID)
	if err != nil {
		return negotiationError(c, err)
	}
	var req actionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	action, ok := negotiation.ParseAction(req.Action)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown action"})
	}
	updated, err := h.Service.Apply(c.Request().Context(), rec.ID, model.RoleClient, action, negotiation.Payload{
		Slot:    req.Slot,
		Message: req.Message,
	})
	if err != nil {
		return negotiationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// loadOwned fetches the reservation from the path parameter and enforces
// that it belongs to the calling client.
func (h *ClientReservationHandler) loadOwned(c echo.Context, clientID uint64) (model.Reservation, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return model.Reservation{}, negotiation.ErrNotFound
	}
	rec, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return model.Reservation{}, err
	}
	if rec.ClientID != clientID {
		return model.Reservation{}, repository.ErrForbidden
	}
	return rec, nil
}
