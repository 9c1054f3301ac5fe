package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request, keyed by the request id.
func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	started := time.Now()
	err := handler.nextResolved(c)

	status := c.Response().StatusCode()
	level := zerolog.InfoLevel
	switch {
	case status >= fiber.StatusInternalServerError:
		level = zerolog.ErrorLevel
	case status >= fiber.StatusBadRequest:
		level = zerolog.WarnLevel
	}
	handler.requestLogger(c).WithLevel(level).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("route", routeLabel(c)).
		Int("status", status).
		Dur("latency", time.Since(started)).
		Str("ip", c.IP()).
		Msg("request")
	return err
}

func (handler *Handler) requestLogger(c *fiber.Ctx) *zerolog.Logger {
	logger := handler.logger.With().Str("request_id", requestID(c)).Logger()
	return &logger
}
