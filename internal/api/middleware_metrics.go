package api

import (
	"time"

	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware records in-flight and completed requests, labelled by the
// matched route pattern rather than the raw path.
func (handler *Handler) MetricsMiddleware(c *fiber.Ctx) error {
	done := metrics.TrackInFlight()
	defer done()

	started := time.Now()
	err := handler.nextResolved(c)
	metrics.ObserveHTTPRequest(
		c.Method(),
		routeLabel(c),
		c.Response().StatusCode(),
		time.Since(started),
	)
	return err
}

// routeLabel is empty when no route matched and only app.Use handlers ran.
func routeLabel(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Method == "USE" {
		return ""
	}
	return route.Path
}
