package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

type reminderResultView struct {
	TimeSlotID uint          `json:"time_slot_id"`
	Outcome    string        `json:"outcome"`
	Reminder   *reminderView `json:"reminder,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func (handler *Handler) ReminderSettings(c *fiber.Ctx) error {
	settings, err := handler.reminderService.Settings(currentIdentity(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	label := handler.labeler(c)
	views := make([]reminderSettingView, 0, len(settings))
	for _, setting := range settings {
		view := reminderSettingView{TimeSlot: newTimeSlotView(label, setting.Slot)}
		if setting.Reminder != nil {
			reminder := newReminderView(label, *setting.Reminder)
			view.Reminder = &reminder
		}
		views = append(views, view)
	}
	return c.JSON(fiber.Map{"settings": views})
}

func (handler *Handler) ActiveReminders(c *fiber.Ctx) error {
	reminders, err := handler.reminderService.ActiveReminders(currentIdentity(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reminders": newReminderViews(handler.labeler(c), reminders)})
}

// UpdateReminders applies a batch. JSON bodies carry the entries explicitly;
// form bodies describe every slot with reminder_<id>=on and message_<id>.
func (handler *Handler) UpdateReminders(c *fiber.Ctx) error {
	var (
		preferences []services.ReminderPreference
		err         error
	)
	if isJSONRequest(c) {
		preferences, err = parseReminderBatchJSON(c.Body())
		if err != nil {
			return handler.bodyParseError(c, err)
		}
	} else {
		preferences, err = handler.parseReminderBatchForm(c)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
	}

	results, err := handler.reminderService.ApplyPreferences(currentIdentity(c), preferences)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	label := handler.labeler(c)
	views := make([]reminderResultView, 0, len(results))
	failed := 0
	for _, result := range results {
		metrics.RecordReminderPreference(string(result.Outcome))
		view := reminderResultView{TimeSlotID: result.TimeSlotID, Outcome: string(result.Outcome)}
		if result.Err != nil {
			failed++
			view.Error = handler.reminderFailureMessage(c, result.Err)
		} else {
			reminder := newReminderView(label, result.Reminder)
			view.Reminder = &reminder
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"results": views,
		"updated": len(results) - failed,
		"failed":  failed,
		"message": handler.translate(c, "success.reminders_updated"),
	})
}

func parseReminderBatchJSON(body []byte) ([]services.ReminderPreference, error) {
	var entries []reminderInput
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
	} else {
		batch := reminderBatchInput{}
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return nil, err
		}
		entries = batch.Reminders
	}

	preferences := make([]services.ReminderPreference, 0, len(entries))
	for _, entry := range entries {
		preferences = append(preferences, services.ReminderPreference{
			TimeSlotID: entry.TimeSlotID,
			Active:     entry.IsActive,
			Message:    entry.CustomMessage,
		})
	}
	return preferences, nil
}

// parseReminderBatchForm produces one preference per stored slot; an unchecked
// box is an inactive reminder.
func (handler *Handler) parseReminderBatchForm(c *fiber.Ctx) ([]services.ReminderPreference, error) {
	slots, err := handler.catalogService.ListTimeSlots()
	if err != nil {
		return nil, err
	}

	preferences := make([]services.ReminderPreference, 0, len(slots))
	for _, slot := range slots {
		id := strconv.FormatUint(uint64(slot.ID), 10)
		preferences = append(preferences, services.ReminderPreference{
			TimeSlotID: slot.ID,
			Active:     isCheckedFormValue(c.FormValue("reminder_" + id)),
			Message:    c.FormValue("message_" + id),
		})
	}
	return preferences, nil
}

func isCheckedFormValue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func (handler *Handler) reminderFailureMessage(c *fiber.Ctx, err error) string {
	if errors.Is(err, services.ErrNotFound) {
		return handler.translate(c, "error.not_found")
	}
	handler.requestLogger(c).Error().Err(err).Msg("reminder preference failed")
	return handler.translate(c, "error.internal")
}

// UpdateReminder sets the preference for one slot addressed by symbolic name.
func (handler *Handler) UpdateReminder(c *fiber.Ctx) error {
	slot, err := handler.catalogService.TimeSlotByName(c.Params("slot"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	input := singleReminderInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.bodyParseError(c, err)
	}

	reminder, outcome, err := handler.reminderService.SetPreference(currentIdentity(c), slot.ID, input.IsActive, input.CustomMessage)
	metrics.RecordReminderPreference(string(outcome))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"outcome":  outcome,
		"reminder": newReminderView(handler.labeler(c), reminder),
		"message":  handler.translate(c, "success.reminders_updated"),
	})
}
