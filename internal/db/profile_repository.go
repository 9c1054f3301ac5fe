package db

import (
	"github.com/IsaacSuo/Web-health/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUser(userID uint) (models.UserProfile, bool, error) {
	var profile models.UserProfile
	found, err := lookupResult(repo.database.Where("user_id = ?", userID).First(&profile).Error)
	return profile, found, err
}

func (repo *ProfileRepository) Create(profile *models.UserProfile) error {
	return translateWriteError(repo.database.Omit(clause.Associations).Create(profile).Error)
}

// Replace overwrites every editable column, including ones being cleared.
func (repo *ProfileRepository) Replace(profile *models.UserProfile) error {
	return repo.database.Model(&models.UserProfile{}).Where("id = ?", profile.ID).Updates(map[string]any{
		"gender":              profile.Gender,
		"birth_date":          profile.BirthDate,
		"tinnitus_start_date": profile.TinnitusStartDate,
		"constitution_type":   profile.ConstitutionType,
		"medical_history":     profile.MedicalHistory,
		"current_medications": profile.CurrentMedications,
		"lifestyle_notes":     profile.LifestyleNotes,
	}).Error
}
