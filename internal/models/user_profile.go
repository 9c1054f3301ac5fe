package models

import "time"

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Valid accepts the unset value as well as the three closed choices.
func (gender Gender) Valid() bool {
	switch gender {
	case GenderUnset, GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

const MaxConstitutionTypeLength = 50

type UserProfile struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	User               *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Gender             Gender     `gorm:"not null;default:'';size:1" json:"gender"`
	BirthDate          *time.Time `gorm:"type:date" json:"birth_date"`
	TinnitusStartDate  *time.Time `gorm:"type:date" json:"tinnitus_start_date"`
	ConstitutionType   string     `gorm:"not null;default:'';size:50" json:"constitution_type"`
	MedicalHistory     string     `gorm:"type:text;not null;default:''" json:"medical_history"`
	CurrentMedications string     `gorm:"type:text;not null;default:''" json:"current_medications"`
	LifestyleNotes     string     `gorm:"type:text;not null;default:''" json:"lifestyle_notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
