package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", handler.Metrics)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/home", handler.Home)
	api.Get("/current-time-slot", handler.CurrentTimeSlot)
	api.Get("/time-slots", handler.ListTimeSlots)
	api.Get("/time-slots/:name", handler.TimeSlotDetail)
	api.Get("/acupoints", handler.ListAcupoints)
	api.Get("/acupoints/:id", handler.AcupointDetail)
	api.Get("/choices", handler.Choices)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	api.Get("/tinnitus/helper", handler.OptionalAuth, handler.TinnitusHelper)
	api.Get("/tinnitus-logs", handler.AuthRequired, handler.ListTinnitusLogs)
	api.Post("/tinnitus-logs", handler.AuthRequired, handler.CreateTinnitusLog)
	api.Get("/tinnitus-logs/:id", handler.AuthRequired, handler.TinnitusLogDetail)

	api.Get("/reminders", handler.AuthRequired, handler.ReminderSettings)
	api.Get("/reminders/active", handler.AuthRequired, handler.ActiveReminders)
	api.Put("/reminders", handler.AuthRequired, handler.UpdateReminders)
	api.Put("/reminders/:slot", handler.AuthRequired, handler.UpdateReminder)

	api.Get("/profile", handler.AuthRequired, handler.GetProfile)
	api.Put("/profile", handler.AuthRequired, handler.UpdateProfile)

	api.Delete("/account", handler.AuthRequired, handler.DeleteAccount)
}
