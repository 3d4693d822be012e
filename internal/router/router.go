package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/cinetix/seat-reservation/internal/config"     // middleware configuration
	"github.com/cinetix/seat-reservation/internal/handler"    // handlers implementing the endpoints
	"github.com/cinetix/seat-reservation/internal/middleware" // JWT, role, rate limit, cache middleware
)

// Deps bundles everything route registration needs.  The Redis client may
// be nil, in which case caching and rate limiting are disabled.
type Deps struct {
	Cfg    config.Config
	Auth   *handler.AuthHandler
	Public *handler.PublicHandler
	Claim  *handler.ClaimHandler
	Admin  *handler.AdminHandler
	WS     *handler.WSHandler
	Redis  *redis.Client
}

// Register wires all routes onto the Echo instance.
func Register(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Authentication: register and login issue tokens, no session needed.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", d.Auth.Register)
	authGroup.POST("/login", d.Auth.Login)

	// Public browse endpoints; GET responses are served through the Redis
	// response cache when available.
	cache := middleware.ResponseCache(config.LoadCacheConfig(), d.Redis)
	e.GET("/v1/movies", d.Public.ListMovies, cache)
	e.GET("/v1/movies/:id", d.Public.GetMovie, cache)
	e.GET("/v1/shows/:id", d.Public.GetShow, cache)

	// Observer socket: no auth, the event feed carries only seat labels.
	e.GET("/v1/ws", d.WS.Serve)

	// Authenticated endpoints.
	authed := e.Group("/v1")
	authed.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	authed.GET("/me", d.Auth.Me)

	// The claim endpoint is the engine's hot path; rate limit per
	// ip/user/route so one misbehaving client cannot hammer the seat rows.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)
	authed.POST("/shows/:id/claim", d.Claim.ClaimSeats, limiter)

	// Admin catalog and show management.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/movies", d.Admin.CreateMovie)
	admin.DELETE("/movies/:id", d.Admin.DeleteMovie)
	admin.POST("/shows", d.Admin.CreateShow)
	admin.DELETE("/shows/:id", d.Admin.DeleteShow)
}
