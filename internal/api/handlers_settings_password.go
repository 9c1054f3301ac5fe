package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	if err := handler.accountService.ChangePassword(
		user.ID,
		user.PasswordHash,
		input.CurrentPassword,
		input.NewPassword,
		input.ConfirmPassword,
	); err != nil {
		return handler.respondAuthError(c, err)
	}

	refreshed, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if _, err := handler.setAuthCookie(c, &refreshed, false); err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.translate(c, "success.password_changed"),
	})
}
