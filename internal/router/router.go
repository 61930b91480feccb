package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/linkwise/linkwise/internal/handler"
	"github.com/linkwise/linkwise/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Post   *handler.PostHandler
	Vote   *handler.VoteHandler
	Stats  *handler.StatsHandler
	Cache  *handler.CacheHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics sit outside the API group and its rate limits
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	postsLimiter := middleware.NewPostsRateLimiter()
	voteLimiter := middleware.NewVoteRateLimiter()
	statsLimiter := middleware.NewStatsRateLimiter()

	// Post routes
	api.Get("/posts", h.Post.GetPage, postsLimiter.Handler())
	api.Post("/posts", h.Post.Create, postsLimiter.Handler())

	// Vote routes
	api.Post("/votes", h.Vote.Submit, voteLimiter.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())

	// Cache diagnostics
	api.Get("/cache", h.Cache.Info)
}
