package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // .env loading for local development
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cinetix/seat-reservation/internal/config"
	"github.com/cinetix/seat-reservation/internal/database"
	"github.com/cinetix/seat-reservation/internal/handler"
	"github.com/cinetix/seat-reservation/internal/notifier"
	"github.com/cinetix/seat-reservation/internal/queue"
	"github.com/cinetix/seat-reservation/internal/repository"
	"github.com/cinetix/seat-reservation/internal/reservation"
	"github.com/cinetix/seat-reservation/internal/router"
	queuepublisher "github.com/cinetix/seat-reservation/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.LockWaitSec)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: nil disables response caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limit disabled")
	}

	// The engine core: claim store, notifier hub, broker publisher.
	claimStore := repository.NewClaimStore(db)
	hub := notifier.NewHub()
	coordinator := reservation.NewCoordinator(claimStore, hub, queuepublisher.New())
	lifecycle := reservation.NewLifecycle(claimStore, cfg.SeatRows, cfg.SeatCols)

	// Background consumer draining the broker audit queue.
	go func() {
		if err := queue.StartClaimConsumer(); err != nil {
			log.Printf("claim-consumer: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Cfg:    cfg,
		Auth:   handler.NewAuthHandler(cfg, repository.NewUserRepo(db)),
		Public: handler.NewPublicHandler(repository.NewMovieRepo(db), repository.NewShowRepo(db), repository.NewSeatRepo(db)),
		Claim:  handler.NewClaimHandler(coordinator),
		Admin:  handler.NewAdminHandler(repository.NewMovieRepo(db), lifecycle),
		WS:     handler.NewWSHandler(hub),
		Redis:  rdb,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
