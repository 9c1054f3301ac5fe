package api

import (
	"errors"

	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondAuthError maps credential and password errors, deferring everything
// else to respondServiceError.
func (handler *Handler) respondAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return handler.apiError(c, fiber.StatusUnauthorized, "error.invalid_credentials")
	case errors.Is(err, services.ErrWeakPassword):
		return handler.apiError(c, fiber.StatusBadRequest, "error.weak_password")
	case errors.Is(err, services.ErrAuthEmailTaken):
		return handler.apiError(c, fiber.StatusConflict, "error.email_taken")
	case errors.Is(err, services.ErrPasswordChangeInvalidInput):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	case errors.Is(err, services.ErrPasswordMismatch):
		return handler.apiError(c, fiber.StatusBadRequest, "error.password_mismatch")
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		return handler.apiError(c, fiber.StatusUnauthorized, "error.invalid_current_password")
	case errors.Is(err, services.ErrNewPasswordMustDiffer):
		return handler.apiError(c, fiber.StatusBadRequest, "error.password_must_differ")
	case errors.Is(err, services.ErrAccountPasswordMissing):
		return handler.apiError(c, fiber.StatusBadRequest, "error.password_required")
	case errors.Is(err, services.ErrAccountPasswordInvalid):
		return handler.apiError(c, fiber.StatusUnauthorized, "error.password_invalid")
	default:
		return handler.respondServiceError(c, err)
	}
}

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":                   user.ID,
		"email":                user.Email,
		"role":                 user.Role,
		"must_change_password": user.MustChangePassword,
	}
}
