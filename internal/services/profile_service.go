package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IsaacSuo/Web-health/internal/models"
)

type ProfileRepository interface {
	FindByUser(userID uint) (models.UserProfile, bool, error)
	Create(profile *models.UserProfile) error
	Replace(profile *models.UserProfile) error
}

// ProfileInput is the full editable field set; absent values clear the field.
type ProfileInput struct {
	Gender             string
	BirthDate          *time.Time
	TinnitusStartDate  *time.Time
	ConstitutionType   string
	MedicalHistory     string
	CurrentMedications string
	LifestyleNotes     string
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the identity's profile, creating an empty one on first access.
// created reports whether this call inserted it.
func (service *ProfileService) Get(identity Identity) (models.UserProfile, bool, error) {
	userID, err := requireIdentity(identity)
	if err != nil {
		return models.UserProfile{}, false, err
	}

	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("load profile: %w", err)
	}
	if found {
		return profile, false, nil
	}

	profile = models.UserProfile{UserID: userID}
	err = service.profiles.Create(&profile)
	if err == nil {
		return profile, true, nil
	}
	if !isDuplicateKey(err) {
		return models.UserProfile{}, false, fmt.Errorf("create profile: %w", err)
	}

	profile, found, err = service.profiles.FindByUser(userID)
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("reload profile: %w", err)
	}
	if !found {
		return models.UserProfile{}, false, fmt.Errorf("%w: profile vanished after duplicate insert", ErrConstraintViolation)
	}
	return profile, false, nil
}

// Update replaces the whole editable field set of the identity's profile.
func (service *ProfileService) Update(identity Identity, input ProfileInput) (models.UserProfile, error) {
	if _, err := requireIdentity(identity); err != nil {
		return models.UserProfile{}, err
	}

	gender := models.Gender(strings.ToUpper(strings.TrimSpace(input.Gender)))
	constitution := strings.TrimSpace(input.ConstitutionType)

	validation := &ValidationError{}
	if !gender.Valid() {
		validation.Add("gender", "must be M, F or O")
	}
	if utf8.RuneCountInString(constitution) > models.MaxConstitutionTypeLength {
		validation.Add("constitution_type", "must be at most 50 characters")
	}
	if input.BirthDate != nil && input.TinnitusStartDate != nil && input.TinnitusStartDate.Before(*input.BirthDate) {
		validation.Add("tinnitus_start_date", "must not be before birth_date")
	}
	if err := validation.OrNil(); err != nil {
		return models.UserProfile{}, err
	}

	profile, _, err := service.Get(identity)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile.Gender = gender
	profile.BirthDate = calendarDayPointer(input.BirthDate)
	profile.TinnitusStartDate = calendarDayPointer(input.TinnitusStartDate)
	profile.ConstitutionType = constitution
	profile.MedicalHistory = input.MedicalHistory
	profile.CurrentMedications = input.CurrentMedications
	profile.LifestyleNotes = input.LifestyleNotes

	if err := service.profiles.Replace(&profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

func calendarDayPointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	day := CalendarDay(*value)
	return &day
}
