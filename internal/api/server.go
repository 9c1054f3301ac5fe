package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const appName = "webhealth"

// NewApp builds the fiber application with the middleware chain and every route.
// corsOrigins enables cross-origin access for the listed origins only.
func NewApp(handler *Handler, corsOrigins []string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	}))
	app.Use(handler.RequestLogger)
	app.Use(handler.MetricsMiddleware)
	app.Use(compress.New())
	if len(corsOrigins) > 0 {
		app.Use(cors.New(corsConfig(corsOrigins)))
	}
	app.Use(handler.LanguageMiddleware)

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func corsConfig(origins []string) cors.Config {
	joined := strings.Join(origins, ",")
	return cors.Config{
		AllowOrigins:     joined,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Accept-Language,Authorization",
		AllowCredentials: joined != "*",
	}
}

// ErrorHandler renders errors that escaped a handler, including fiber's own
// routing errors, as the JSON error body.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		key := "error.internal"
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			key = "error.not_found"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
			key = "error.invalid_input"
		case fiber.StatusUnauthorized:
			key = "error.unauthorized"
		case fiber.StatusMethodNotAllowed:
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		return handler.apiError(c, fiberErr.Code, key)
	}

	handler.requestLogger(c).Error().Err(err).Msg("unhandled request error")
	return handler.apiError(c, fiber.StatusInternalServerError, "error.internal")
}

// nextResolved runs the rest of the chain and renders a returned error in place,
// so outer middleware observes the final status.
func (handler *Handler) nextResolved(c *fiber.Ctx) error {
	chainErr := c.Next()
	if chainErr == nil {
		return nil
	}
	if err := handler.ErrorHandler(c, chainErr); err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}
