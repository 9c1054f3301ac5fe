package models

import "time"

type BodyPart string

const (
	BodyPartEar      BodyPart = "ear"
	BodyPartHead     BodyPart = "head"
	BodyPartNeck     BodyPart = "neck"
	BodyPartShoulder BodyPart = "shoulder"
	BodyPartHand     BodyPart = "hand"
	BodyPartFoot     BodyPart = "foot"
)

func BodyParts() []BodyPart {
	return []BodyPart{BodyPartEar, BodyPartHead, BodyPartNeck, BodyPartShoulder, BodyPartHand, BodyPartFoot}
}

func (part BodyPart) Valid() bool {
	for _, candidate := range BodyParts() {
		if part == candidate {
			return true
		}
	}
	return false
}

type AcupointMassage struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"uniqueIndex;not null;size:50" json:"name"`
	BodyPart            BodyPart   `gorm:"not null;size:20;index" json:"body_part"`
	LocationDescription string     `gorm:"type:text;not null;default:''" json:"location_description"`
	MassageMethod       string     `gorm:"type:text;not null;default:''" json:"massage_method"`
	Benefits            string     `gorm:"type:text;not null;default:''" json:"benefits"`
	Image               string     `gorm:"not null;default:'';size:255" json:"image,omitempty"`
	TimeSlots           []TimeSlot `gorm:"many2many:acupoint_massage_time_slots;constraint:OnDelete:CASCADE" json:"time_slots,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}
