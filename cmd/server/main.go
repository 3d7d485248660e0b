package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/respirex/respirex-backend/internal/config"
	"github.com/respirex/respirex-backend/internal/database"
	"github.com/respirex/respirex-backend/internal/handlers"
	"github.com/respirex/respirex-backend/internal/identity"
	"github.com/respirex/respirex-backend/internal/logging"
	"github.com/respirex/respirex-backend/internal/mail"
	"github.com/respirex/respirex-backend/internal/middleware"
	"github.com/respirex/respirex-backend/internal/ml"
	"github.com/respirex/respirex-backend/internal/report"
	"github.com/respirex/respirex-backend/internal/routes"
	"github.com/respirex/respirex-backend/internal/services"
	"github.com/respirex/respirex-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.DoctorAccessCode == "" {
		slog.Error("DOCTOR_ACCESS_CODE environment variable is required")
		os.Exit(1)
	}
	if cfg.IdentityJWTSecret == "" && cfg.IdentityURL == "" {
		slog.Error("either IDENTITY_JWT_SECRET or IDENTITY_URL is required")
		os.Exit(1)
	}
	if cfg.S3Bucket == "" {
		slog.Error("S3_BUCKET environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Identity verification: verify tokens locally when the provider's JWT
	// secret is shared, call the provider otherwise.
	var verifier identity.Verifier
	if cfg.IdentityJWTSecret != "" {
		verifier = identity.NewJWTVerifier(cfg.IdentityJWTSecret)
	} else {
		verifier = identity.NewHTTPVerifier(cfg.IdentityURL, cfg.IdentityAPIKey)
	}

	// Object storage for radiographs
	uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicBaseURL)
	if err != nil {
		slog.Error("object storage init failed", "error", err)
		os.Exit(1)
	}

	// Classifier: falls back to dummy mode when no inference endpoint is set.
	var model ml.Model = ml.Unavailable{}
	if cfg.ModelURL != "" {
		model = ml.NewHTTPModel(cfg.ModelURL, cfg.ModelTimeout)
	} else {
		slog.Warn("MODEL_URL not set, classifier running in dummy mode")
	}
	classifier := ml.NewClassifier(model)

	// Email delivery
	var mailer mail.Sender = mail.Disabled{}
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.SenderEmail)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, email sending disabled")
	}

	renderer := report.NewRenderer(report.NewHTTPImageFetcher())

	// Services
	profileService := services.NewProfileService(database.DB, cfg.DoctorAccessCode)
	screeningService := services.NewScreeningService(database.DB, uploader, classifier, renderer, mailer, cfg.DashboardURL)
	appointmentService := services.NewAppointmentService(database.DB, mailer)

	// Handlers
	healthHandler := handlers.NewHealthHandler(classifier)
	profileHandler := handlers.NewProfileHandler(profileService)
	screeningHandler := handlers.NewScreeningHandler(profileService, screeningService)
	reportHandler := handlers.NewReportHandler(profileService, screeningService)
	appointmentHandler := handlers.NewAppointmentHandler(profileService, appointmentService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, database.DB, verifier, healthHandler, profileHandler, screeningHandler, reportHandler, appointmentHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "model_loaded", classifier.Available())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
