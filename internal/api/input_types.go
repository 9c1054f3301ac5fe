package api

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

type tinnitusLogInput struct {
	Date            string `json:"date"`
	TimeSlotID      *uint  `json:"time_slot_id"`
	Severity        int    `json:"severity"`
	Frequency       string `json:"frequency"`
	DurationMinutes int    `json:"duration_minutes"`
	Symptoms        string `json:"symptoms"`
	Triggers        string `json:"triggers"`
	MassagePoints   string `json:"massage_points"`
	MassageEffect   string `json:"massage_effect"`
	Mood            string `json:"mood"`
	SleepQuality    *int   `json:"sleep_quality"`
	Notes           string `json:"notes"`
}

// tinnitusLogFormInput keeps numeric form values as text so a blank select
// stays distinguishable from zero.
type tinnitusLogFormInput struct {
	Date            string `form:"date"`
	TimeSlotID      string `form:"time_slot_id"`
	Severity        string `form:"severity"`
	Frequency       string `form:"frequency"`
	DurationMinutes string `form:"duration_minutes"`
	Symptoms        string `form:"symptoms"`
	Triggers        string `form:"triggers"`
	MassagePoints   string `form:"massage_points"`
	MassageEffect   string `form:"massage_effect"`
	Mood            string `form:"mood"`
	SleepQuality    string `form:"sleep_quality"`
	Notes           string `form:"notes"`
}

type reminderInput struct {
	TimeSlotID    uint   `json:"time_slot_id"`
	IsActive      bool   `json:"is_active"`
	CustomMessage string `json:"custom_message"`
}

type reminderBatchInput struct {
	Reminders []reminderInput `json:"reminders"`
}

type singleReminderInput struct {
	IsActive      bool   `json:"is_active" form:"is_active"`
	CustomMessage string `json:"custom_message" form:"custom_message"`
}

type profileInput struct {
	Gender             string `json:"gender" form:"gender"`
	BirthDate          string `json:"birth_date" form:"birth_date"`
	TinnitusStartDate  string `json:"tinnitus_start_date" form:"tinnitus_start_date"`
	ConstitutionType   string `json:"constitution_type" form:"constitution_type"`
	MedicalHistory     string `json:"medical_history" form:"medical_history"`
	CurrentMedications string `json:"current_medications" form:"current_medications"`
	LifestyleNotes     string `json:"lifestyle_notes" form:"lifestyle_notes"`
}
