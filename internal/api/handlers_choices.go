package api

import (
	"fmt"
	"strconv"

	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Choices lists every closed enumeration with labels in the request language.
func (handler *Handler) Choices(c *fiber.Ctx) error {
	label := handler.labeler(c)

	severities := make([]choiceView, 0, len(models.Severities()))
	for _, severity := range models.Severities() {
		severities = append(severities, choiceView{Value: severity, Label: label("severity." + strconv.Itoa(int(severity)))})
	}

	frequencies := make([]choiceView, 0, len(models.Frequencies()))
	for _, frequency := range models.Frequencies() {
		frequencies = append(frequencies, choiceView{Value: frequency, Label: label("frequency." + string(frequency))})
	}

	bodyParts := make([]choiceView, 0, len(models.BodyParts()))
	for _, part := range models.BodyParts() {
		bodyParts = append(bodyParts, choiceView{Value: part, Label: label("body_part." + string(part))})
	}

	genders := make([]choiceView, 0, len(models.Genders()))
	for _, gender := range models.Genders() {
		genders = append(genders, choiceView{Value: gender, Label: label("gender." + string(gender))})
	}

	slots := make([]choiceView, 0, len(models.SlotNames()))
	for _, name := range models.SlotNames() {
		slots = append(slots, choiceView{Value: name, Label: label("slot." + string(name))})
	}

	sleepQuality := make([]choiceView, 0, models.MaxSleepQuality-models.MinSleepQuality+1)
	for score := models.MinSleepQuality; score <= models.MaxSleepQuality; score++ {
		sleepQuality = append(sleepQuality, choiceView{Value: score, Label: fmt.Sprintf(label("sleep_quality.score"), score)})
	}

	return c.JSON(fiber.Map{
		"language":      handler.currentLanguage(c),
		"severity":      severities,
		"frequency":     frequencies,
		"body_part":     bodyParts,
		"gender":        genders,
		"time_slot":     slots,
		"sleep_quality": sleepQuality,
	})
}
