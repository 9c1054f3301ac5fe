package api

import (
	"errors"
	"time"

	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/i18n"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	I18n         *i18n.Manager
	Logger       zerolog.Logger
	// Now overrides the wall clock; nil uses time.Now.
	Now func() time.Time
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	handler := &Handler{
		secretKey:    []byte(options.SecretKey),
		location:     options.Location,
		cookieSecure: options.CookieSecure,
		i18n:         options.I18n,
		logger:       options.Logger,
		now:          options.Now,
		loginLimiter: newAttemptLimiter(loginAttemptRate, loginAttemptBurst),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.authService = services.NewAuthService(repositories.Users)
	handler.accountService = services.NewAccountService(repositories.Users)
	handler.catalogService = services.NewCatalogService(repositories.TimeSlots, repositories.Acupoints, handler.location)
	handler.tinnitusService = services.NewTinnitusLogService(repositories.TinnitusLogs, repositories.TimeSlots, repositories.Reminders, handler.location)
	handler.reminderService = services.NewReminderService(repositories.Reminders, repositories.TimeSlots)
	handler.profileService = services.NewProfileService(repositories.Profiles)
	return handler
}
