package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/negotiation"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/repository"
)

// getUserID extracts the authenticated user's ID from the Echo context.
// JWTAuth stores the raw claim, whose concrete type depends on how the
// token was decoded, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// negotiationError maps engine errors onto HTTP responses.  Each sentinel
// keeps its own status and message so clients can tell "retry" (conflict)
// apart from "not allowed".
func negotiationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, negotiation.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, negotiation.ErrIneligibleActor):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "action not available to this party"})
	case errors.Is(err, negotiation.ErrTerminalState):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already settled"})
	case errors.Is(err, negotiation.ErrInvalidSlot):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot is malformed or in the past"})
	case errors.Is(err, negotiation.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation changed concurrently, re-fetch and retry"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
