package db

import (
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TinnitusLogRepository struct {
	database *gorm.DB
}

func NewTinnitusLogRepository(database *gorm.DB) *TinnitusLogRepository {
	return &TinnitusLogRepository{database: database}
}

func (repo *TinnitusLogRepository) Create(entry *models.TinnitusLog) error {
	return translateWriteError(repo.database.Omit(clause.Associations).Create(entry).Error)
}

func (repo *TinnitusLogRepository) FindByIDForUser(userID uint, logID uint) (models.TinnitusLog, bool, error) {
	var entry models.TinnitusLog
	found, err := lookupResult(repo.database.
		Preload("TimeSlot").
		Where("id = ? AND user_id = ?", logID, userID).
		First(&entry).Error)
	return entry, found, err
}

// List returns the user's logs newest first. Nil bounds are ignored, to is inclusive,
// and a non-positive limit returns every match.
func (repo *TinnitusLogRepository) List(userID uint, slotID *uint, from *time.Time, to *time.Time, limit int) ([]models.TinnitusLog, error) {
	entries := make([]models.TinnitusLog, 0)
	query := repo.database.
		Preload("TimeSlot").
		Where("user_id = ?", userID)
	if slotID != nil {
		query = query.Where("time_slot_id = ?", *slotID)
	}
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", to.AddDate(0, 0, 1))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("date DESC, created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *TinnitusLogRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.TinnitusLog{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
