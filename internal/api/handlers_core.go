package api

import (
	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var metricsHandler = adaptor.HTTPHandler(metrics.Handler())

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Metrics(c *fiber.Ctx) error {
	return metricsHandler(c)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
}
