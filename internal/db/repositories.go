package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	TimeSlots    *TimeSlotRepository
	Acupoints    *AcupointRepository
	TinnitusLogs *TinnitusLogRepository
	Reminders    *ReminderRepository
	Profiles     *ProfileRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		TimeSlots:    NewTimeSlotRepository(database),
		Acupoints:    NewAcupointRepository(database),
		TinnitusLogs: NewTinnitusLogRepository(database),
		Reminders:    NewReminderRepository(database),
		Profiles:     NewProfileRepository(database),
	}
}
