package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IsaacSuo/Web-health/internal/models"
)

const HelperRecentLogLimit = 5

type TinnitusLogRepository interface {
	Create(entry *models.TinnitusLog) error
	List(userID uint, slotID *uint, from *time.Time, to *time.Time, limit int) ([]models.TinnitusLog, error)
	FindByIDForUser(userID uint, logID uint) (models.TinnitusLog, bool, error)
	CountByUser(userID uint) (int64, error)
}

type TinnitusTimeSlotRepository interface {
	FindByID(slotID uint) (models.TimeSlot, bool, error)
}

type ActiveReminderRepository interface {
	ListByUser(userID uint, activeOnly bool) ([]models.Reminder, error)
}

type TinnitusLogInput struct {
	Date            *time.Time
	TimeSlotID      *uint
	Severity        int
	Frequency       string
	DurationMinutes int
	Symptoms        string
	Triggers        string
	MassagePoints   string
	MassageEffect   string
	Mood            string
	SleepQuality    *int
	Notes           string
}

type TinnitusLogFilter struct {
	TimeSlotID *uint
	From       *time.Time
	To         *time.Time
	Limit      int
}

type TinnitusHelperOverview struct {
	Authenticated   bool
	RecentLogs      []models.TinnitusLog
	ActiveReminders []models.Reminder
	TotalLogs       int64
}

type TinnitusLogService struct {
	logs      TinnitusLogRepository
	slots     TinnitusTimeSlotRepository
	reminders ActiveReminderRepository
	location  *time.Location
}

func NewTinnitusLogService(logs TinnitusLogRepository, slots TinnitusTimeSlotRepository, reminders ActiveReminderRepository, location *time.Location) *TinnitusLogService {
	if location == nil {
		location = time.UTC
	}
	return &TinnitusLogService{
		logs:      logs,
		slots:     slots,
		reminders: reminders,
		location:  location,
	}
}

// Create validates input and stores a log owned by the identity. A missing
// date means today in the service location. Free-text fields are stored as
// submitted; only the frequency token is trimmed.
func (service *TinnitusLogService) Create(identity Identity, input TinnitusLogInput, now time.Time) (models.TinnitusLog, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return models.TinnitusLog{}, err
	}

	validation := validateTinnitusLogInput(input)
	var slot *models.TimeSlot
	if input.TimeSlotID != nil {
		found, ok, err := service.slots.FindByID(*input.TimeSlotID)
		if err != nil {
			return models.TinnitusLog{}, fmt.Errorf("load time slot %d: %w", *input.TimeSlotID, err)
		}
		if !ok {
			validation.Add("time_slot", "unknown time slot")
		} else {
			slot = &found
		}
	}
	if err := validation.OrNil(); err != nil {
		return models.TinnitusLog{}, err
	}

	day := DateAtLocation(now, service.location)
	if input.Date != nil {
		day = CalendarDay(*input.Date)
	}

	entry := models.TinnitusLog{
		UserID:          userID,
		Date:            day,
		TimeSlotID:      input.TimeSlotID,
		Severity:        models.Severity(input.Severity),
		Frequency:       models.Frequency(strings.TrimSpace(input.Frequency)),
		DurationMinutes: input.DurationMinutes,
		Symptoms:        input.Symptoms,
		Triggers:        input.Triggers,
		MassagePoints:   input.MassagePoints,
		MassageEffect:   input.MassageEffect,
		Mood:            input.Mood,
		SleepQuality:    input.SleepQuality,
		Notes:           input.Notes,
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.TinnitusLog{}, fmt.Errorf("create tinnitus log: %w", err)
	}
	entry.TimeSlot = slot
	return entry, nil
}

func validateTinnitusLogInput(input TinnitusLogInput) *ValidationError {
	validation := &ValidationError{}
	if !models.Severity(input.Severity).Valid() {
		validation.Add("severity", "must be between 1 and 5")
	}
	if !models.Frequency(strings.TrimSpace(input.Frequency)).Valid() {
		validation.Add("frequency", "must be continuous, intermittent or occasional")
	}
	if input.DurationMinutes <= 0 {
		validation.Add("duration_minutes", "must be greater than zero")
	}
	if input.SleepQuality != nil && (*input.SleepQuality < models.MinSleepQuality || *input.SleepQuality > models.MaxSleepQuality) {
		validation.Add("sleep_quality", "must be between 1 and 10")
	}
	if utf8.RuneCountInString(input.Mood) > models.MaxMoodLength {
		validation.Add("mood", "must be at most 100 characters")
	}
	return validation
}

// List returns the identity's logs newest first, narrowed by filter.
func (service *TinnitusLogService) List(identity Identity, filter TinnitusLogFilter) ([]models.TinnitusLog, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	var from, to *time.Time
	if filter.From != nil {
		day := CalendarDay(*filter.From)
		from = &day
	}
	if filter.To != nil {
		day := CalendarDay(*filter.To)
		to = &day
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, newFieldValidationError("date_to", "must not be before date_from")
	}
	if filter.Limit < 0 {
		return nil, newFieldValidationError("limit", "must not be negative")
	}

	logs, err := service.logs.List(userID, filter.TimeSlotID, from, to, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list tinnitus logs: %w", err)
	}
	return logs, nil
}

// Get returns one of the identity's logs. Another user's log is reported as ErrNotFound.
func (service *TinnitusLogService) Get(identity Identity, logID uint) (models.TinnitusLog, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return models.TinnitusLog{}, err
	}
	entry, found, err := service.logs.FindByIDForUser(userID, logID)
	if err != nil {
		return models.TinnitusLog{}, fmt.Errorf("load tinnitus log %d: %w", logID, err)
	}
	if !found {
		return models.TinnitusLog{}, ErrNotFound
	}
	return entry, nil
}

func (service *TinnitusLogService) Recent(identity Identity, limit int) ([]models.TinnitusLog, error) {
	return service.List(identity, TinnitusLogFilter{Limit: limit})
}

// HelperOverview is empty for anonymous callers.
func (service *TinnitusLogService) HelperOverview(identity Identity) (TinnitusHelperOverview, error) {
	overview := TinnitusHelperOverview{
		RecentLogs:      []models.TinnitusLog{},
		ActiveReminders: []models.Reminder{},
	}
	userID, err := requireIdentity(identity)
	if err != nil {
		return overview, nil
	}
	overview.Authenticated = true

	logs, err := service.Recent(identity, HelperRecentLogLimit)
	if err != nil {
		return overview, err
	}
	overview.RecentLogs = logs

	total, err := service.logs.CountByUser(userID)
	if err != nil {
		return overview, fmt.Errorf("count tinnitus logs: %w", err)
	}
	overview.TotalLogs = total

	reminders, err := service.reminders.ListByUser(userID, true)
	if err != nil {
		return overview, fmt.Errorf("list active reminders: %w", err)
	}
	overview.ActiveReminders = reminders
	return overview, nil
}
