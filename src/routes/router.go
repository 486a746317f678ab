package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/swagger"

	"sgformer-backend/src/controllers"
	"sgformer-backend/src/metrics"
	"sgformer-backend/src/middleware"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/services/checkin"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/notifications"
	"sgformer-backend/src/services/submission"
	"sgformer-backend/src/services/users"
	"sgformer-backend/src/utils"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	Stores      *repository.Stores
	Gate        *auth.Gate
	OAuth       controllers.OAuthFlow
	Notifier    notifications.Notifier
	FrontendURL string
	Log         *slog.Logger

	RequestTimeout time.Duration
	RateLimit      int
	RateWindow     time.Duration

	// Ping reports whether the database answers. Optional.
	Ping func(ctx context.Context) error
}

func InitRoutes(app *fiber.App, d Deps) {
	formSvc := forms.NewService(d.Stores, d.Log)
	subSvc := submission.NewService(d.Stores, formSvc, d.Notifier, d.Log)
	userSvc := users.NewService(d.Stores, formSvc, subSvc, d.Log)
	matcher := checkin.NewMatcher(d.Stores.Submissions, d.Notifier, d.Log)

	app.Get("/health", health(d.Ping))
	app.Get("/metrics", metrics.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	if d.RateLimit > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        d.RateLimit,
			Expiration: d.RateWindow,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return utils.Fail(c, fiber.StatusTooManyRequests, "Too many requests, please try again later.")
			},
		}))
	}
	if d.RequestTimeout > 0 {
		api.Use(middleware.RequestTimeout(d.RequestTimeout))
	}

	authRoutes(api, controllers.NewAuthController(d.Gate, d.OAuth, d.FrontendURL, d.Log), d.Gate)
	formRoutes(api, controllers.NewFormController(formSvc), controllers.NewCheckInController(formSvc, matcher), d.Gate)
	submissionRoutes(api, controllers.NewSubmissionController(subSvc), d.Gate)
	userRoutes(api, controllers.NewUserController(userSvc), d.Gate)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}

func health(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UTC()})
	}
}
