package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/respirex/respirex-backend/internal/handlers"
	"github.com/respirex/respirex-backend/internal/identity"
	"github.com/respirex/respirex-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	db *gorm.DB,
	verifier identity.Verifier,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	screeningHandler *handlers.ScreeningHandler,
	reportHandler *handlers.ReportHandler,
	appointmentHandler *handlers.AppointmentHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public, no auth
	api.Get("/health", healthHandler.Check)
	api.Get("/stats/", screeningHandler.PublicStats)

	// Everything below resolves the caller through the identity provider
	authed := api.Group("", middleware.Auth(db, verifier))

	authed.Get("/profile/", profileHandler.Get)
	authed.Post("/profile/", profileHandler.Upsert)

	authed.Post("/predict/", screeningHandler.Predict)
	authed.Get("/history/", screeningHandler.History)
	authed.Get("/doctor/dashboard/", screeningHandler.Dashboard)

	authed.Get("/report/:id/", reportHandler.Download)
	authed.Post("/email-report/:id/", reportHandler.Email)

	authed.Get("/doctors-list/", appointmentHandler.DoctorsList)
	authed.Get("/appointments/", appointmentHandler.List)
	authed.Post("/appointments/", appointmentHandler.Create)
	authed.Patch("/appointments/:id/status/", appointmentHandler.UpdateStatus)
}
