package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/respirex/respirex-backend/internal/database"
	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/ml"
)

type HealthHandler struct {
	classifier *ml.Classifier
}

func NewHealthHandler(classifier *ml.Classifier) *HealthHandler {
	return &HealthHandler{classifier: classifier}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	modelStatus := "loaded"
	if !h.classifier.Available() {
		modelStatus = "dummy"
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Model:     modelStatus,
	})
}
