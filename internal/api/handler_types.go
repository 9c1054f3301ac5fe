package api

import (
	"time"

	"github.com/IsaacSuo/Web-health/internal/i18n"
	"github.com/IsaacSuo/Web-health/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       zerolog.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter

	authService     *services.AuthService
	accountService  *services.AccountService
	catalogService  *services.CatalogService
	tinnitusService *services.TinnitusLogService
	reminderService *services.ReminderService
	profileService  *services.ProfileService
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
