package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/config"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/database"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/handler"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/negotiation"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/queue"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/repository"
	"github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/router"
	queue_publisher "github.com/ahlem-bouguerra/gestion-garage-mecanique-sub003/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and caching disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	svc := negotiation.NewService(reservationRepo, nil)
	svc.OnTransition(queue_publisher.TransitionListener)

	// Background consumer logs committed transitions; it reconnects on
	// its own and never takes the API down.
	go func() {
		if err := queue.StartTransitionConsumer(); err != nil {
			log.Printf("transition consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterMiddleware(e, config.LoadRateLimitConfig(), rdb)

	cacheCfg := config.LoadCacheConfig()
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterClient(e, handler.NewClientReservationHandler(svc, reservationRepo), cfg.JWTSecret, cacheCfg, rdb)
	router.RegisterGarage(e, handler.NewGarageReservationHandler(svc, reservationRepo), cfg.JWTSecret, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
