package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/config"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/handler"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/middleware"
)

// RegisterGarage registers garage-scoped endpoints under /v1/garage.  All
// routes require a valid JWT and the GARAGE role.  Garages list incoming
// reservation requests (with a needs-action counter their dashboard
// polls) and act on them: accept, refuse, counter-propose or cancel.
func RegisterGarage(e *echo.Echo, h *handler.GarageReservationHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1/garage",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("GARAGE"),
	)
	g.GET("/reservations", h.ListReservations, middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/reservations/:id", h.GetReservation)
	g.POST("/reservations/:id/actions", h.Act)
}
