package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

// apiError writes {"error": <localized message for key>}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": handler.translate(c, key)})
}

func (handler *Handler) validationError(c *fiber.Ctx, validation *services.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  handler.translate(c, "error.validation"),
		"fields": validation.FieldMap(),
	})
}

func (handler *Handler) fieldError(c *fiber.Ctx, field string, message string) error {
	validation := &services.ValidationError{}
	validation.Add(field, message)
	return handler.validationError(c, validation)
}

// bodyParseError reports a body that could not be decoded. Validation errors
// and JSON type mismatches name the offending field.
func (handler *Handler) bodyParseError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return handler.validationError(c, validation)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return handler.fieldError(c, typeErr.Field, "has the wrong type")
	}
	return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognised is logged and reported as an internal error.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return handler.validationError(c, validation)
	case errors.Is(err, services.ErrUnauthorized):
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	case errors.Is(err, services.ErrNotFound):
		return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
	case errors.Is(err, services.ErrConstraintViolation):
		return handler.apiError(c, fiber.StatusConflict, "error.conflict")
	default:
		handler.requestLogger(c).Error().Err(err).Str("route", routeLabel(c)).Msg("request failed")
		return handler.apiError(c, fiber.StatusInternalServerError, "error.internal")
	}
}

func isJSONRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}

func parseUintParam(raw string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parseOptionalInt(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
