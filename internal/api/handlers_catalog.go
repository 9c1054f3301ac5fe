package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Home(c *fiber.Ctx) error {
	overview, err := handler.catalogService.HomeOverview(handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	label := handler.labeler(c)
	payload := fiber.Map{
		"now":               overview.Now.Format(time.RFC3339),
		"time_slots":        newTimeSlotViews(label, overview.Slots),
		"current_time_slot": nil,
	}
	if overview.Current != nil {
		payload["current_time_slot"] = newTimeSlotView(label, *overview.Current)
	}
	return c.JSON(payload)
}

// CurrentTimeSlot answers 200 even when no slot covers the current time, with
// an error message in place of the slot fields.
func (handler *Handler) CurrentTimeSlot(c *fiber.Ctx) error {
	slot, found, err := handler.catalogService.CurrentTimeSlot(handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{"error": handler.translate(c, "error.current_slot_missing")})
	}

	return c.JSON(fiber.Map{
		"name":         slot.Name,
		"chinese_name": slot.ChineseName,
		"meridian":     slot.Meridian,
		"organ":        slot.Organ,
		"health_tips":  slot.HealthTips,
		"time_range":   slot.StartTime.Clock() + "-" + slot.EndTime.Clock(),
	})
}

func (handler *Handler) ListTimeSlots(c *fiber.Ctx) error {
	slots, err := handler.catalogService.ListTimeSlots()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"time_slots": newTimeSlotViews(handler.labeler(c), slots)})
}

func (handler *Handler) TimeSlotDetail(c *fiber.Ctx) error {
	detail, err := handler.catalogService.TimeSlotDetail(c.Params("name"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	label := handler.labeler(c)
	return c.JSON(fiber.Map{
		"time_slot":         newTimeSlotView(label, detail.Slot),
		"related_acupoints": newAcupointViews(label, detail.Acupoints),
	})
}

func (handler *Handler) ListAcupoints(c *fiber.Ctx) error {
	acupoints, err := handler.catalogService.ListAcupoints(c.Query("body_part"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"acupoints": newAcupointViews(handler.labeler(c), acupoints)})
}

func (handler *Handler) AcupointDetail(c *fiber.Ctx) error {
	acupointID, ok := parseUintParam(c.Params("id"))
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
	}

	acupoint, err := handler.catalogService.AcupointByID(acupointID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"acupoint": newAcupointView(handler.labeler(c), acupoint)})
}
