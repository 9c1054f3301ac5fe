package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

// TinnitusHelper serves the helper page data; anonymous callers get an empty overview.
func (handler *Handler) TinnitusHelper(c *fiber.Ctx) error {
	overview, err := handler.tinnitusService.HelperOverview(currentIdentity(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	label := handler.labeler(c)
	return c.JSON(fiber.Map{
		"authenticated":    overview.Authenticated,
		"recent_logs":      newTinnitusLogViews(label, overview.RecentLogs),
		"active_reminders": newReminderViews(label, overview.ActiveReminders),
		"total_logs":       overview.TotalLogs,
	})
}

func (handler *Handler) ListTinnitusLogs(c *fiber.Ctx) error {
	filter, err := handler.parseTinnitusLogFilter(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	logs, err := handler.tinnitusService.List(currentIdentity(c), filter)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"logs": newTinnitusLogViews(handler.labeler(c), logs)})
}

func (handler *Handler) TinnitusLogDetail(c *fiber.Ctx) error {
	logID, ok := parseUintParam(c.Params("id"))
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
	}
	entry, err := handler.tinnitusService.Get(currentIdentity(c), logID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"log": newTinnitusLogView(handler.labeler(c), entry)})
}

// parseTinnitusLogFilter reads limit, time_slot (symbolic name or id),
// date_from and date_to from the query string.
func (handler *Handler) parseTinnitusLogFilter(c *fiber.Ctx) (services.TinnitusLogFilter, error) {
	filter := services.TinnitusLogFilter{}
	validation := &services.ValidationError{}

	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		validation.Add("limit", "must be an integer")
	} else if limit != nil {
		filter.Limit = *limit
	}

	if rawSlot := strings.TrimSpace(c.Query("time_slot")); rawSlot != "" {
		slotID, err := handler.resolveSlotReference(rawSlot)
		switch {
		case err == nil:
			filter.TimeSlotID = &slotID
		case errors.Is(err, services.ErrNotFound):
			validation.Add("time_slot", "unknown time slot")
		default:
			return filter, err
		}
	}

	if filter.From, err = services.ParseDay(strings.TrimSpace(c.Query("date_from"))); err != nil {
		validation.Add("date_from", "must be YYYY-MM-DD")
	}
	if filter.To, err = services.ParseDay(strings.TrimSpace(c.Query("date_to"))); err != nil {
		validation.Add("date_to", "must be YYYY-MM-DD")
	}
	return filter, validation.OrNil()
}

func (handler *Handler) resolveSlotReference(raw string) (uint, error) {
	if slotID, ok := parseUintParam(raw); ok {
		slot, err := handler.catalogService.TimeSlotByID(slotID)
		return slot.ID, err
	}
	slot, err := handler.catalogService.TimeSlotByName(raw)
	return slot.ID, err
}

func (handler *Handler) CreateTinnitusLog(c *fiber.Ctx) error {
	input, err := bindTinnitusLogInput(c)
	if err != nil {
		return handler.bodyParseError(c, err)
	}

	date, err := services.ParseDay(strings.TrimSpace(input.Date))
	if err != nil {
		return handler.fieldError(c, "date", "must be YYYY-MM-DD")
	}

	entry, err := handler.tinnitusService.Create(currentIdentity(c), services.TinnitusLogInput{
		Date:            date,
		TimeSlotID:      input.TimeSlotID,
		Severity:        input.Severity,
		Frequency:       input.Frequency,
		DurationMinutes: input.DurationMinutes,
		Symptoms:        input.Symptoms,
		Triggers:        input.Triggers,
		MassagePoints:   input.MassagePoints,
		MassageEffect:   input.MassageEffect,
		Mood:            input.Mood,
		SleepQuality:    input.SleepQuality,
		Notes:           input.Notes,
	}, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	metrics.RecordTinnitusLogCreated()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"log":     newTinnitusLogView(handler.labeler(c), entry),
		"message": handler.translate(c, "success.log_created"),
	})
}

// bindTinnitusLogInput decodes JSON bodies as typed values. Form bodies are
// converted field by field; a blank time_slot_id or sleep_quality means none.
func bindTinnitusLogInput(c *fiber.Ctx) (tinnitusLogInput, error) {
	if isJSONRequest(c) {
		input := tinnitusLogInput{}
		err := c.BodyParser(&input)
		return input, err
	}

	form := tinnitusLogFormInput{}
	if err := c.BodyParser(&form); err != nil {
		return tinnitusLogInput{}, err
	}
	return form.toInput()
}

func (form tinnitusLogFormInput) toInput() (tinnitusLogInput, error) {
	validation := &services.ValidationError{}
	input := tinnitusLogInput{
		Date:          form.Date,
		Frequency:     form.Frequency,
		Symptoms:      form.Symptoms,
		Triggers:      form.Triggers,
		MassagePoints: form.MassagePoints,
		MassageEffect: form.MassageEffect,
		Mood:          form.Mood,
		Notes:         form.Notes,
	}

	if raw := strings.TrimSpace(form.TimeSlotID); raw != "" {
		slotID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			validation.Add("time_slot", "unknown time slot")
		} else {
			id := uint(slotID)
			input.TimeSlotID = &id
		}
	}
	input.Severity = formInt(validation, "severity", form.Severity)
	input.DurationMinutes = formInt(validation, "duration_minutes", form.DurationMinutes)

	sleepQuality, err := parseOptionalInt(form.SleepQuality)
	if err != nil {
		validation.Add("sleep_quality", "must be an integer")
	}
	input.SleepQuality = sleepQuality

	return input, validation.OrNil()
}

// formInt reads a required integer; blank is zero and left to service validation.
func formInt(validation *services.ValidationError, field string, raw string) int {
	value, err := parseOptionalInt(raw)
	if err != nil {
		validation.Add(field, "must be an integer")
		return 0
	}
	if value == nil {
		return 0
	}
	return *value
}
