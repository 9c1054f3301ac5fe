package api

import (
	"strings"

	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}
	if confirm := strings.TrimSpace(credentials.ConfirmPassword); confirm != "" && confirm != strings.TrimSpace(credentials.Password) {
		return handler.respondAuthError(c, services.ErrPasswordMismatch)
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password, handler.now())
	if err != nil {
		return handler.respondAuthError(c, err)
	}

	token, err := handler.setAuthCookie(c, &user, true)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    userPayload(&user),
		"token":   token,
		"message": handler.i18n.Translatef(handler.currentLanguage(c), "success.account_created", user.Email),
	})
}

// Login is throttled per client IP; only failed attempts spend the budget.
func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now) {
		metrics.RecordLoginAttempt("throttled")
		return handler.apiError(c, fiber.StatusTooManyRequests, "error.too_many_attempts")
	}

	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		handler.loginLimiter.addFailure(limiterKey, now)
		metrics.RecordLoginAttempt("failure")
		return handler.respondAuthError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)
	metrics.RecordLoginAttempt("success")

	token, err := handler.setAuthCookie(c, &user, credentials.RememberMe)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  userPayload(&user),
		"token": token,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.translate(c, "success.logged_out"),
	})
}
