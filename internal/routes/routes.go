package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/shubhampanchal18/fitplanhub/internal/handlers"
	"github.com/shubhampanchal18/fitplanhub/internal/middleware"
)

func Setup(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	planHandler *handlers.PlanHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	trainerHandler *handlers.TrainerHandler,
	feedHandler *handlers.FeedHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit against credential stuffing.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.AuthRequired(), authHandler.Logout)

	// Plan catalog — reads are public (viewer-projected), writes trainer-only.
	api.Get("/plans", planHandler.List)
	api.Get("/plans/:id", planHandler.Get)
	api.Post("/plans", middleware.TrainerRequired(), planHandler.Create)
	api.Put("/plans/:id", middleware.TrainerRequired(), planHandler.Update)
	api.Delete("/plans/:id", middleware.TrainerRequired(), planHandler.Delete)

	// Subscriptions
	api.Get("/subscriptions/my-subscriptions", middleware.AuthRequired(), subscriptionHandler.MySubscriptions)
	api.Post("/subscriptions/:planId", middleware.AuthRequired(), subscriptionHandler.Subscribe)

	// Feed — authenticated-only surface.
	api.Get("/feed", middleware.AuthRequired(), feedHandler.Feed)

	// Trainers; the static /following/list route must precede /:id.
	api.Get("/trainers", trainerHandler.List)
	api.Get("/trainers/following/list", middleware.AuthRequired(), trainerHandler.Following)
	api.Get("/trainers/:id", trainerHandler.Profile)
	api.Post("/trainers/:id/follow", middleware.AuthRequired(), trainerHandler.Follow)
	api.Delete("/trainers/:id/follow", middleware.AuthRequired(), trainerHandler.Unfollow)
}
