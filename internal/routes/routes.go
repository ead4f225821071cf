package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const authRateLimitPerMinute = 10

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Config     *handlers.RemoteConfigHandler
	Workout    *handlers.WorkoutHandler
	Preference *handlers.PreferenceHandler
	Progress   *handlers.ProgressHandler
	Coach      *handlers.CoachHandler
	Dashboard  *handlers.DashboardHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter per IP; 0 disables limiting
	if cfg.RateLimitPerMinute > 0 {
		api.Use(rateLimiter(cfg.RateLimitPerMinute))
	}

	api.Get("/health", h.Health.Check)
	api.Get("/config", h.Config.GetConfig)

	// Auth: public, with a stricter limit
	auth := api.Group("/auth")
	if cfg.RateLimitPerMinute > 0 {
		auth.Use(rateLimiter(min(authRateLimitPerMinute, cfg.RateLimitPerMinute)))
	}
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// JWT is applied per route so that public routes stay public
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, h.Auth.Logout)
	api.Delete("/auth/account", jwt, h.Auth.DeleteAccount)
	api.Get("/auth/me", jwt, h.Auth.Me)

	workouts := api.Group("/workouts", jwt)
	workouts.Get("/", h.Workout.List)
	workouts.Get("/tags", h.Workout.Tags)
	workouts.Get("/:id", h.Workout.Get)

	api.Get("/preferences", jwt, h.Preference.Get)
	api.Put("/preferences", jwt, h.Preference.Put)

	progress := api.Group("/progress", jwt)
	progress.Post("/", h.Progress.Log)
	progress.Get("/", h.Progress.Summary)
	progress.Get("/history", h.Progress.History)

	api.Post("/coach/chat", jwt, h.Coach.Chat)
	api.Get("/dashboard", jwt, h.Dashboard.Get)

	// Admin (JWT + admin required)
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Post("/workouts", h.Workout.Create)
	admin.Put("/config/:key", h.Config.SetConfigKey)
	admin.Delete("/config/:key", h.Config.DeleteConfigKey)
}

func rateLimiter(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
