package db

import (
	"github.com/IsaacSuo/Web-health/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReminderRepository struct {
	database *gorm.DB
}

func NewReminderRepository(database *gorm.DB) *ReminderRepository {
	return &ReminderRepository{database: database}
}

func (repo *ReminderRepository) FindByUserAndSlot(userID uint, slotID uint) (models.Reminder, bool, error) {
	var reminder models.Reminder
	found, err := lookupResult(repo.database.
		Where("user_id = ? AND time_slot_id = ?", userID, slotID).
		First(&reminder).Error)
	return reminder, found, err
}

func (repo *ReminderRepository) Create(reminder *models.Reminder) error {
	return translateWriteError(repo.database.Omit(clause.Associations).Create(reminder).Error)
}

func (repo *ReminderRepository) UpdatePreference(reminderID uint, active bool, message string) error {
	return repo.database.Model(&models.Reminder{}).Where("id = ?", reminderID).Updates(map[string]any{
		"is_active":      active,
		"custom_message": message,
	}).Error
}

// ListByUser returns reminders with their slots, in slot start-time order.
func (repo *ReminderRepository) ListByUser(userID uint, activeOnly bool) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	query := repo.database.
		Preload("TimeSlot").
		Joins("JOIN time_slots ON time_slots.id = reminders.time_slot_id").
		Where("reminders.user_id = ?", userID)
	if activeOnly {
		query = query.Where("reminders.is_active = ?", true)
	}
	if err := query.Order("time_slots.start_time ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}
