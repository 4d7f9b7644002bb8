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

// GarageReservationHandler exposes the garage side of slot negotiation:
// listing incoming requests, accepting, refusing, counter-proposing and
// cancelling.  The GARAGE role is enforced by middleware; handlers verify
// the reservation is addressed to the calling garage.
type GarageReservationHandler struct {
	Service *negotiation.Service
	Repo    *repository.ReservationRepo
}

// NewGarageReservationHandler constructs the handler.  Both dependencies
// must be non-nil.
func NewGarageReservationHandler(svc *negotiation.Service, repo *repository.ReservationRepo) *GarageReservationHandler {
	if svc == nil || repo == nil {
		panic("nil dependency passed to NewGarageReservationHandler")
	}
	return &GarageReservationHandler{Service: svc, Repo: repo}
}

// ListReservations handles GET /v1/garage/reservations.  Lapsed
// reservations are hidden at read time; needs_action counts fresh
// requests plus client re-counters so the garage dashboard can poll it.
func (h *GarageReservationHandler) ListReservations(c echo.Context) error {
	garageID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	recs, err := h.Repo.ListByGarage(c.Request().Context(), garageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	active := negotiation.FilterActive(recs, time.Now().UTC())
	return c.JSON(http.StatusOK, echo.Map{
		"items":        active,
		"count":        len(active),
		"needs_action": negotiation.CountNeedingAction(active, model.RoleGarage),
	})
}

// GetReservation handles GET /v1/garage/reservations/:id.
func (h *GarageReservationHandler) GetReservation(c echo.Context) error {
	garageID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rec, err := h.loadAddressed(c, garageID)
	if err != nil {
		return negotiationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rec})
}

// Act handles POST /v1/garage/reservations/:id/actions.  Garages may
// accept, refuse, counter-propose or cancel; eligibility per state is
// decided by the transition table, including the turn-taking rule while
// a counter-proposal is on the table.
func (h *GarageReservationHandler) Act(c echo.Context) error {
	garageID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rec, err := h.loadAddressed(c, garageID)
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
	updated, err := h.Service.Apply(c.Request().Context(), rec.ID, model.RoleGarage, action, negotiation.Payload{
		Slot:    req.Slot,
		Message: req.Message,
	})
	if err != nil {
		return negotiationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// loadAddressed fetches the reservation from the path parameter and
// enforces that it is addressed to the calling garage.
func (h *GarageReservationHandler) loadAddressed(c echo.Context, garageID uint64) (model.Reservation, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return model.Reservation{}, negotiation.ErrNotFound
	}
	rec, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return model.Reservation{}, err
	}
	if rec.GarageID != garageID {
		return model.Reservation{}, repository.ErrForbidden
	}
	return rec, nil
}
