package services

import (
	"fmt"

	"github.com/IsaacSuo/Web-health/internal/models"
)

type ReminderRepository interface {
	FindByUserAndSlot(userID uint, slotID uint) (models.Reminder, bool, error)
	Create(reminder *models.Reminder) error
	UpdatePreference(reminderID uint, active bool, message string) error
	ListByUser(userID uint, activeOnly bool) ([]models.Reminder, error)
}

type ReminderTimeSlotRepository interface {
	ListOrdered() ([]models.TimeSlot, error)
	FindByID(slotID uint) (models.TimeSlot, bool, error)
}

type ReminderOutcome string

const (
	ReminderCreated   ReminderOutcome = "created"
	ReminderUpdated   ReminderOutcome = "updated"
	ReminderRecovered ReminderOutcome = "recovered"
	ReminderFailed    ReminderOutcome = "failed"
)

type ReminderPreference struct {
	TimeSlotID uint
	Active     bool
	Message    string
}

// ReminderResult reports one slot of a batch; Err is set when that slot failed.
type ReminderResult struct {
	TimeSlotID uint
	Outcome    ReminderOutcome
	Reminder   models.Reminder
	Err        error
}

// ReminderSetting pairs a slot with the user's reminder for it, if any.
type ReminderSetting struct {
	Slot     models.TimeSlot
	Reminder *models.Reminder
}

type ReminderService struct {
	reminders ReminderRepository
	slots     ReminderTimeSlotRepository
}

func NewReminderService(reminders ReminderRepository, slots ReminderTimeSlotRepository) *ReminderService {
	return &ReminderService{reminders: reminders, slots: slots}
}

// SetPreference creates the (user, slot) reminder or overwrites its flag and
// message. The message is stored exactly as given. Losing an insert race to another writer falls back to an update.
func (service *ReminderService) SetPreference(identity Identity, slotID uint, active bool, message string) (models.Reminder, ReminderOutcome, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return models.Reminder{}, ReminderFailed, err
	}

	slot, found, err := service.slots.FindByID(slotID)
	if err != nil {
		return models.Reminder{}, ReminderFailed, fmt.Errorf("load time slot %d: %w", slotID, err)
	}
	if !found {
		return models.Reminder{}, ReminderFailed, ErrNotFound
	}

	existing, found, err := service.reminders.FindByUserAndSlot(userID, slotID)
	if err != nil {
		return models.Reminder{}, ReminderFailed, fmt.Errorf("load reminder: %w", err)
	}
	if found {
		reminder, err := service.overwrite(existing, active, message)
		if err != nil {
			return models.Reminder{}, ReminderFailed, err
		}
		reminder.TimeSlot = &slot
		return reminder, ReminderUpdated, nil
	}

	reminder := models.Reminder{
		UserID:        userID,
		TimeSlotID:    slotID,
		IsActive:      active,
		CustomMessage: message,
	}
	err = service.reminders.Create(&reminder)
	if err == nil {
		reminder.TimeSlot = &slot
		return reminder, ReminderCreated, nil
	}
	if !isDuplicateKey(err) {
		return models.Reminder{}, ReminderFailed, fmt.Errorf("create reminder: %w", err)
	}

	existing, found, err = service.reminders.FindByUserAndSlot(userID, slotID)
	if err != nil {
		return models.Reminder{}, ReminderFailed, fmt.Errorf("reload reminder: %w", err)
	}
	if !found {
		return models.Reminder{}, ReminderFailed, fmt.Errorf("%w: reminder vanished after duplicate insert", ErrConstraintViolation)
	}
	recovered, err := service.overwrite(existing, active, message)
	if err != nil {
		return models.Reminder{}, ReminderFailed, err
	}
	recovered.TimeSlot = &slot
	return recovered, ReminderRecovered, nil
}

func (service *ReminderService) overwrite(existing models.Reminder, active bool, message string) (models.Reminder, error) {
	if err := service.reminders.UpdatePreference(existing.ID, active, message); err != nil {
		return models.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}
	existing.IsActive = active
	existing.CustomMessage = message
	return existing, nil
}

// ApplyPreferences sets every submitted preference and returns one result per
// entry, in submission order. A failing slot does not stop the rest.
func (service *ReminderService) ApplyPreferences(identity Identity, preferences []ReminderPreference) ([]ReminderResult, error) {
	if _, err := requireIdentity(identity); err != nil {
		return nil, err
	}

	results := make([]ReminderResult, 0, len(preferences))
	for _, preference := range preferences {
		reminder, outcome, err := service.SetPreference(identity, preference.TimeSlotID, preference.Active, preference.Message)
		results = append(results, ReminderResult{
			TimeSlotID: preference.TimeSlotID,
			Outcome:    outcome,
			Reminder:   reminder,
			Err:        err,
		})
	}
	return results, nil
}

// Settings lists every slot in start order with the user's reminder for it.
func (service *ReminderService) Settings(identity Identity) ([]ReminderSetting, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	slots, err := service.slots.ListOrdered()
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	reminders, err := service.reminders.ListByUser(userID, false)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	bySlot := make(map[uint]models.Reminder, len(reminders))
	for _, reminder := range reminders {
		bySlot[reminder.TimeSlotID] = reminder
	}

	settings := make([]ReminderSetting, 0, len(slots))
	for _, slot := range slots {
		setting := ReminderSetting{Slot: slot}
		if reminder, ok := bySlot[slot.ID]; ok {
			setting.Reminder = &reminder
		}
		settings = append(settings, setting)
	}
	return settings, nil
}

func (service *ReminderService) ActiveReminders(identity Identity) ([]models.Reminder, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}
	reminders, err := service.reminders.ListByUser(userID, true)
	if err != nil {
		return nil, fmt.Errorf("list active reminders: %w", err)
	}
	return reminders, nil
}
