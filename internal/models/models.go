package models

// All returns every persisted entity in dependency order, for AutoMigrate on non-SQLite stores.
func All() []any {
	return []any{
		&User{},
		&TimeSlot{},
		&AcupointMassage{},
		&TinnitusLog{},
		&Reminder{},
		&UserProfile{},
	}
}
