package db

import (
	"github.com/IsaacSuo/Web-health/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AcupointRepository struct {
	database *gorm.DB
}

func NewAcupointRepository(database *gorm.DB) *AcupointRepository {
	return &AcupointRepository{database: database}
}

// List returns acupoints ordered by body part then name; a nil part lists all of them.
func (repo *AcupointRepository) List(part *models.BodyPart) ([]models.AcupointMassage, error) {
	acupoints := make([]models.AcupointMassage, 0)
	query := repo.database.Order("body_part ASC, name ASC")
	if part != nil {
		query = query.Where("body_part = ?", *part)
	}
	if err := query.Find(&acupoints).Error; err != nil {
		return nil, err
	}
	return acupoints, nil
}

func (repo *AcupointRepository) FindByID(acupointID uint) (models.AcupointMassage, bool, error) {
	var acupoint models.AcupointMassage
	found, err := lookupResult(repo.database.
		Preload("TimeSlots", orderSlotsByStart).
		First(&acupoint, acupointID).Error)
	return acupoint, found, err
}

func (repo *AcupointRepository) FindByName(name string) (models.AcupointMassage, bool, error) {
	var acupoint models.AcupointMassage
	found, err := lookupResult(repo.database.
		Preload("TimeSlots", orderSlotsByStart).
		Where("name = ?", name).
		First(&acupoint).Error)
	return acupoint, found, err
}

func (repo *AcupointRepository) ListByTimeSlot(slotID uint) ([]models.AcupointMassage, error) {
	acupoints := make([]models.AcupointMassage, 0)
	if err := repo.database.
		Joins("JOIN acupoint_massage_time_slots links ON links.acupoint_massage_id = acupoint_massages.id").
		Where("links.time_slot_id = ?", slotID).
		Order("acupoint_massages.body_part ASC, acupoint_massages.name ASC").
		Find(&acupoints).Error; err != nil {
		return nil, err
	}
	return acupoints, nil
}

func (repo *AcupointRepository) Create(acupoint *models.AcupointMassage) error {
	return translateWriteError(repo.database.Omit(clause.Associations).Create(acupoint).Error)
}

func (repo *AcupointRepository) UpdateFields(acupointID uint, updates map[string]any) error {
	return repo.database.Model(&models.AcupointMassage{}).Where("id = ?", acupointID).Updates(updates).Error
}

func orderSlotsByStart(tx *gorm.DB) *gorm.DB {
	return tx.Order("start_time ASC")
}

func (repo *AcupointRepository) ReplaceTimeSlots(acupoint *models.AcupointMassage, slots []models.TimeSlot) error {
	return repo.database.Model(acupoint).Association("TimeSlots").Replace(slots)
}
