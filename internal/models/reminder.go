package models

import "time"

type Reminder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:uidx_reminders_user_slot" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TimeSlotID    uint      `gorm:"not null;uniqueIndex:uidx_reminders_user_slot" json:"time_slot_id"`
	TimeSlot      *TimeSlot `gorm:"constraint:OnDelete:CASCADE" json:"time_slot,omitempty"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	CustomMessage string    `gorm:"type:text;not null;default:''" json:"custom_message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
