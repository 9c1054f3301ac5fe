package api

import (
	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName      = "webhealth_auth"
	languageCookieName  = "webhealth_lang"
	contextUserKey      = "current_user"
	contextLanguageKey  = "current_language"
	contextRequestIDKey = "request_id"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// currentIdentity is anonymous unless an auth middleware stored a user.
func currentIdentity(c *fiber.Ctx) services.Identity {
	user, ok := currentUser(c)
	if !ok {
		return services.AnonymousIdentity()
	}
	return services.AuthenticatedIdentity(user.ID)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(contextRequestIDKey).(string)
	return id
}
