package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/config"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/handler"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/middleware"
)

// RegisterClient registers client-scoped endpoints under /v1.  All routes
// require a valid JWT and the CLIENT role.  Clients create reservations,
// list their own (lapsed ones filtered out), inspect one, and respond to
// garage counter-proposals through the actions endpoint.
func RegisterClient(e *echo.Echo, h *handler.ClientReservationHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CLIENT"),
	)
	g.POST("/reservations", h.CreateReservation)
	// Listing is cache-friendly: the client UI polls it on an interval
	// to pick up garage responses.
	g.GET("/my-reservations", h.ListReservations, middleware.NewRedisCache(cacheCfg, rdb))
	g.GET("/reservations/:id", h.GetReservation)
	g.POST("/reservations/:id/actions", h.Act)
}
