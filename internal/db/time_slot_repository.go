package db

import (
	"github.com/IsaacSuo/Web-health/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimeSlotRepository struct {
	database *gorm.DB
}

func NewTimeSlotRepository(database *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{database: database}
}

func (repo *TimeSlotRepository) ListOrdered() ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, 12)
	if err := repo.database.Order("start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (repo *TimeSlotRepository) FindByID(slotID uint) (models.TimeSlot, bool, error) {
	var slot models.TimeSlot
	found, err := lookupResult(repo.database.First(&slot, slotID).Error)
	return slot, found, err
}

func (repo *TimeSlotRepository) FindByName(name models.SlotName) (models.TimeSlot, bool, error) {
	var slot models.TimeSlot
	found, err := lookupResult(repo.database.Where("name = ?", name).First(&slot).Error)
	return slot, found, err
}

func (repo *TimeSlotRepository) ListByNames(names []models.SlotName) ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(names))
	if len(names) == 0 {
		return slots, nil
	}
	if err := repo.database.Where("name IN ?", names).Order("start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (repo *TimeSlotRepository) Create(slot *models.TimeSlot) error {
	return translateWriteError(repo.database.Omit(clause.Associations).Create(slot).Error)
}

func (repo *TimeSlotRepository) UpdateFields(slotID uint, updates map[string]any) error {
	return repo.database.Model(&models.TimeSlot{}).Where("id = ?", slotID).Updates(updates).Error
}

// DeleteByID removes a slot: reminders for it go with it, log references are cleared.
func (repo *TimeSlotRepository) DeleteByID(slotID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("time_slot_id = ?", slotID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TinnitusLog{}).
			Where("time_slot_id = ?", slotID).
			Update("time_slot_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM acupoint_massage_time_slots WHERE time_slot_id = ?`, slotID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TimeSlot{}, slotID).Error
	})
}
