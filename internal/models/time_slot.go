package models

import "time"

type SlotName string

const (
	SlotZi   SlotName = "zi"
	SlotChou SlotName = "chou"
	SlotYin  SlotName = "yin"
	SlotMao  SlotName = "mao"
	SlotChen SlotName = "chen"
	SlotSi   SlotName = "si"
	SlotWu   SlotName = "wu"
	SlotWei  SlotName = "wei"
	SlotShen SlotName = "shen"
	SlotYou  SlotName = "you"
	SlotXu   SlotName = "xu"
	SlotHai  SlotName = "hai"
)

// SlotNames lists the twelve double-hours starting from zi.
func SlotNames() []SlotName {
	return []SlotName{
		SlotZi, SlotChou, SlotYin, SlotMao, SlotChen, SlotSi,
		SlotWu, SlotWei, SlotShen, SlotYou, SlotXu, SlotHai,
	}
}

func (name SlotName) Valid() bool {
	for _, candidate := range SlotNames() {
		if name == candidate {
			return true
		}
	}
	return false
}

type TimeSlot struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                SlotName  `gorm:"uniqueIndex;not null;size:10" json:"name"`
	ChineseName         string    `gorm:"not null;size:10" json:"chinese_name"`
	Meridian            string    `gorm:"not null;size:50" json:"meridian"`
	Organ               string    `gorm:"not null;size:20" json:"organ"`
	StartTime           TimeOfDay `gorm:"type:varchar(8);not null;index" json:"start_time"`
	EndTime             TimeOfDay `gorm:"type:varchar(8);not null" json:"end_time"`
	Description         string    `gorm:"type:text;not null;default:''" json:"description"`
	HealthTips          string    `gorm:"type:text;not null;default:''" json:"health_tips"`
	CaseSuggestions     string    `gorm:"type:text;not null;default:''" json:"case_suggestions"`
	FoodRecommendations string    `gorm:"type:text;not null;default:''" json:"food_recommendations"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// WrapsMidnight reports whether the interval crosses 00:00.
func (slot TimeSlot) WrapsMidnight() bool {
	return slot.StartTime > slot.EndTime
}

// Contains applies the half-open [start, end) membership rule, honouring wraparound.
func (slot TimeSlot) Contains(at TimeOfDay) bool {
	if slot.WrapsMidnight() {
		return at >= slot.StartTime || at < slot.EndTime
	}
	return slot.StartTime <= at && at < slot.EndTime
}

// Duration returns the interval length in seconds.
func (slot TimeSlot) Duration() int {
	if slot.WrapsMidnight() {
		return secondsPerDay - int(slot.StartTime) + int(slot.EndTime)
	}
	return int(slot.EndTime) - int(slot.StartTime)
}
