package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// OptionalAuth attaches the user when the request carries a valid session and
// lets anonymous requests through unchanged.
func (handler *Handler) OptionalAuth(c *fiber.Ctx) error {
	if user, err := handler.authenticateRequest(c); err == nil {
		c.Locals(contextUserKey, user)
	}
	return c.Next()
}
