package api

import (
	"strings"

	"github.com/IsaacSuo/Web-health/internal/metrics"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the caller's profile, creating an empty one on first access.
func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, created, err := handler.profileService.Get(currentIdentity(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"profile": newProfileView(handler.labeler(c), profile),
		"created": created,
	})
}

// UpdateProfile replaces every editable field; omitted fields are cleared.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.bodyParseError(c, err)
	}

	validation := &services.ValidationError{}
	birthDate, err := services.ParseDay(strings.TrimSpace(input.BirthDate))
	if err != nil {
		validation.Add("birth_date", "must be YYYY-MM-DD")
	}
	tinnitusStartDate, err := services.ParseDay(strings.TrimSpace(input.TinnitusStartDate))
	if err != nil {
		validation.Add("tinnitus_start_date", "must be YYYY-MM-DD")
	}
	if err := validation.OrNil(); err != nil {
		return handler.respondServiceError(c, err)
	}

	profile, err := handler.profileService.Update(currentIdentity(c), services.ProfileInput{
		Gender:             input.Gender,
		BirthDate:          birthDate,
		TinnitusStartDate:  tinnitusStartDate,
		ConstitutionType:   input.ConstitutionType,
		MedicalHistory:     input.MedicalHistory,
		CurrentMedications: input.CurrentMedications,
		LifestyleNotes:     input.LifestyleNotes,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	metrics.RecordProfileUpdate()

	return c.JSON(fiber.Map{
		"profile": newProfileView(handler.labeler(c), profile),
		"message": handler.translate(c, "success.profile_updated"),
	})
}
