package models

import "time"

type Severity int

const (
	SeverityMild     Severity = 1
	SeverityLight    Severity = 2
	SeverityModerate Severity = 3
	SeveritySevere   Severity = 4
	SeverityExtreme  Severity = 5
)

func Severities() []Severity {
	return []Severity{SeverityMild, SeverityLight, SeverityModerate, SeveritySevere, SeverityExtreme}
}

func (severity Severity) Valid() bool {
	return severity >= SeverityMild && severity <= SeverityExtreme
}

type Frequency string

const (
	FrequencyContinuous   Frequency = "continuous"
	FrequencyIntermittent Frequency = "intermittent"
	FrequencyOccasional   Frequency = "occasional"
)

func Frequencies() []Frequency {
	return []Frequency{FrequencyContinuous, FrequencyIntermittent, FrequencyOccasional}
}

func (frequency Frequency) Valid() bool {
	switch frequency {
	case FrequencyContinuous, FrequencyIntermittent, FrequencyOccasional:
		return true
	default:
		return false
	}
}

const (
	MinSleepQuality = 1
	MaxSleepQuality = 10
	MaxMoodLength   = 100
)

type TinnitusLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_tinnitus_logs_user_date" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date            time.Time `gorm:"type:date;not null;index:idx_tinnitus_logs_user_date" json:"date"`
	TimeSlotID      *uint     `gorm:"index" json:"time_slot_id"`
	TimeSlot        *TimeSlot `gorm:"constraint:OnDelete:SET NULL" json:"time_slot,omitempty"`
	Severity        Severity  `gorm:"not null" json:"severity"`
	Frequency       Frequency `gorm:"not null;size:20" json:"frequency"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Symptoms        string    `gorm:"type:text;not null;default:''" json:"symptoms"`
	Triggers        string    `gorm:"type:text;not null;default:''" json:"triggers"`
	MassagePoints   string    `gorm:"type:text;not null;default:''" json:"massage_points"`
	MassageEffect   string    `gorm:"type:text;not null;default:''" json:"massage_effect"`
	Mood            string    `gorm:"not null;default:'';size:100" json:"mood"`
	SleepQuality    *int      `json:"sleep_quality"`
	Notes           string    `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
