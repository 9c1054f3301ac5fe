package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := deleteAccountInput{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
		}
	}
	if strings.TrimSpace(input.Password) == "" {
		input.Password = c.FormValue("password")
	}

	if err := handler.accountService.DeleteAccount(currentIdentity(c), user.PasswordHash, input.Password); err != nil {
		return handler.respondAuthError(c, err)
	}

	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.translate(c, "success.account_deleted"),
	})
}
