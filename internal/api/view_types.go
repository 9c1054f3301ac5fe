package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// labeler resolves a message key in the request language.
type labeler func(key string) string

func (handler *Handler) labeler(c *fiber.Ctx) labeler {
	language := handler.currentLanguage(c)
	return func(key string) string {
		return handler.i18n.Translate(language, key)
	}
}

type slotRef struct {
	ID          uint            `json:"id"`
	Name        models.SlotName `json:"name"`
	ChineseName string          `json:"chinese_name"`
	Label       string          `json:"label"`
}

type timeSlotView struct {
	ID                  uint             `json:"id"`
	Name                models.SlotName  `json:"name"`
	ChineseName         string           `json:"chinese_name"`
	Label               string           `json:"label"`
	Meridian            string           `json:"meridian"`
	Organ               string           `json:"organ"`
	StartTime           models.TimeOfDay `json:"start_time"`
	EndTime             models.TimeOfDay `json:"end_time"`
	TimeRange           string           `json:"time_range"`
	Description         string           `json:"description"`
	HealthTips          string           `json:"health_tips"`
	CaseSuggestions     string           `json:"case_suggestions"`
	FoodRecommendations string           `json:"food_recommendations"`
}

type acupointView struct {
	ID                  uint            `json:"id"`
	Name                string          `json:"name"`
	BodyPart            models.BodyPart `json:"body_part"`
	BodyPartLabel       string          `json:"body_part_label"`
	LocationDescription string          `json:"location_description"`
	MassageMethod       string          `json:"massage_method"`
	Benefits            string          `json:"benefits"`
	Image               string          `json:"image,omitempty"`
	TimeSlots           []slotRef       `json:"time_slots,omitempty"`
}

type tinnitusLogView struct {
	ID                uint             `json:"id"`
	Date              string           `json:"date"`
	TimeSlot          *slotRef         `json:"time_slot"`
	Severity          models.Severity  `json:"severity"`
	SeverityLabel     string           `json:"severity_label"`
	Frequency         models.Frequency `json:"frequency"`
	FrequencyLabel    string           `json:"frequency_label"`
	DurationMinutes   int              `json:"duration_minutes"`
	Symptoms          string           `json:"symptoms"`
	Triggers          string           `json:"triggers"`
	MassagePoints     string           `json:"massage_points"`
	MassageEffect     string           `json:"massage_effect"`
	Mood              string           `json:"mood"`
	SleepQuality      *int             `json:"sleep_quality"`
	SleepQualityLabel string           `json:"sleep_quality_label,omitempty"`
	Notes             string           `json:"notes"`
	CreatedAt         time.Time        `json:"created_at"`
}

type reminderView struct {
	ID            uint      `json:"id"`
	TimeSlot      *slotRef  `json:"time_slot,omitempty"`
	IsActive      bool      `json:"is_active"`
	CustomMessage string    `json:"custom_message"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type reminderSettingView struct {
	TimeSlot timeSlotView  `json:"time_slot"`
	Reminder *reminderView `json:"reminder"`
}

type profileView struct {
	Gender             models.Gender `json:"gender"`
	GenderLabel        string        `json:"gender_label"`
	BirthDate          *string       `json:"birth_date"`
	TinnitusStartDate  *string       `json:"tinnitus_start_date"`
	ConstitutionType   string        `json:"constitution_type"`
	MedicalHistory     string        `json:"medical_history"`
	CurrentMedications string        `json:"current_medications"`
	LifestyleNotes     string        `json:"lifestyle_notes"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

type choiceView struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

func newSlotRef(label labeler, slot models.TimeSlot) slotRef {
	return slotRef{
		ID:          slot.ID,
		Name:        slot.Name,
		ChineseName: slot.ChineseName,
		Label:       label("slot." + string(slot.Name)),
	}
}

func newTimeSlotView(label labeler, slot models.TimeSlot) timeSlotView {
	return timeSlotView{
		ID:                  slot.ID,
		Name:                slot.Name,
		ChineseName:         slot.ChineseName,
		Label:               label("slot." + string(slot.Name)),
		Meridian:            slot.Meridian,
		Organ:               slot.Organ,
		StartTime:           slot.StartTime,
		EndTime:             slot.EndTime,
		TimeRange:           slot.StartTime.Clock() + "-" + slot.EndTime.Clock(),
		Description:         slot.Description,
		HealthTips:          slot.HealthTips,
		CaseSuggestions:     slot.CaseSuggestions,
		FoodRecommendations: slot.FoodRecommendations,
	}
}

func newTimeSlotViews(label labeler, slots []models.TimeSlot) []timeSlotView {
	views := make([]timeSlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, newTimeSlotView(label, slot))
	}
	return views
}

func newAcupointView(label labeler, acupoint models.AcupointMassage) acupointView {
	view := acupointView{
		ID:                  acupoint.ID,
		Name:                acupoint.Name,
		BodyPart:            acupoint.BodyPart,
		BodyPartLabel:       label("body_part." + string(acupoint.BodyPart)),
		LocationDescription: acupoint.LocationDescription,
		MassageMethod:       acupoint.MassageMethod,
		Benefits:            acupoint.Benefits,
		Image:               acupoint.Image,
	}
	for _, slot := range acupoint.TimeSlots {
		view.TimeSlots = append(view.TimeSlots, newSlotRef(label, slot))
	}
	return view
}

func newAcupointViews(label labeler, acupoints []models.AcupointMassage) []acupointView {
	views := make([]acupointView, 0, len(acupoints))
	for _, acupoint := range acupoints {
		views = append(views, newAcupointView(label, acupoint))
	}
	return views
}

func newTinnitusLogView(label labeler, entry models.TinnitusLog) tinnitusLogView {
	view := tinnitusLogView{
		ID:              entry.ID,
		Date:            entry.Date.Format(dateLayout),
		Severity:        entry.Severity,
		SeverityLabel:   label("severity." + strconv.Itoa(int(entry.Severity))),
		Frequency:       entry.Frequency,
		FrequencyLabel:  label("frequency." + string(entry.Frequency)),
		DurationMinutes: entry.DurationMinutes,
		Symptoms:        entry.Symptoms,
		Triggers:        entry.Triggers,
		MassagePoints:   entry.MassagePoints,
		MassageEffect:   entry.MassageEffect,
		Mood:            entry.Mood,
		SleepQuality:    entry.SleepQuality,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt,
	}
	if entry.TimeSlot != nil {
		ref := newSlotRef(label, *entry.TimeSlot)
		view.TimeSlot = &ref
	}
	if entry.SleepQuality != nil {
		view.SleepQualityLabel = fmt.Sprintf(label("sleep_quality.score"), *entry.SleepQuality)
	}
	return view
}

func newTinnitusLogViews(label labeler, entries []models.TinnitusLog) []tinnitusLogView {
	views := make([]tinnitusLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newTinnitusLogView(label, entry))
	}
	return views
}

func newReminderView(label labeler, reminder models.Reminder) reminderView {
	view := reminderView{
		ID:            reminder.ID,
		IsActive:      reminder.IsActive,
		CustomMessage: reminder.CustomMessage,
		UpdatedAt:     reminder.UpdatedAt,
	}
	if reminder.TimeSlot != nil {
		ref := newSlotRef(label, *reminder.TimeSlot)
		view.TimeSlot = &ref
	}
	return view
}

func newReminderViews(label labeler, reminders []models.Reminder) []reminderView {
	views := make([]reminderView, 0, len(reminders))
	for _, reminder := range reminders {
		views = append(views, newReminderView(label, reminder))
	}
	return views
}

func newProfileView(label labeler, profile models.UserProfile) profileView {
	view := profileView{
		Gender:             profile.Gender,
		BirthDate:          formatOptionalDate(profile.BirthDate),
		TinnitusStartDate:  formatOptionalDate(profile.TinnitusStartDate),
		ConstitutionType:   profile.ConstitutionType,
		MedicalHistory:     profile.MedicalHistory,
		CurrentMedications: profile.CurrentMedications,
		LifestyleNotes:     profile.LifestyleNotes,
		UpdatedAt:          profile.UpdatedAt,
	}
	if profile.Gender != models.GenderUnset {
		view.GenderLabel = label("gender." + string(profile.Gender))
	}
	return view
}

func formatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}
