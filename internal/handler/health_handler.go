package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/pkg/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("database health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("database unavailable"))
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"status": "ok"}, ""))
}
