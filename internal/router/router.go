// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/config"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/handler"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterMiddleware applies the cross-cutting middleware: distributed
// rate limiting backed by Redis.  When rdb is nil the limiter degrades
// to a no-op, so the API keeps working without Redis.
func RegisterMiddleware(e *echo.Echo, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))
}

// RegisterAuth registers authentication routes and the shared /v1/me
// endpoint.  Unauthenticated operations live under /v1/auth; protected
// endpoints accept both CLIENT and GARAGE roles.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CLIENT", "GARAGE"))
	auth.GET("/me", a.Me)

	// Logout also works without the JWT middleware: a refresh token in
	// the body is enough to terminate a single session.
	e.POST("/v1/logout", a.Logout)
}
