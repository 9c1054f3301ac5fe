package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrAdminBootstrapFailed = errors.New("admin bootstrap failed")

type SetupUserRepository interface {
	CountUsers() (int64, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	Create(user *models.User) error
	UpdateRole(userID uint, role string) error
}

type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

func (service *SetupService) RequiresInitialSetup() (bool, error) {
	usersCount, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	return usersCount == 0, nil
}

// EnsureAdmin creates an admin account for email, or promotes the existing
// account with that email. The password is only used when creating.
func (service *SetupService) EnsureAdmin(rawEmail string, rawPassword string, now time.Time) (models.User, bool, error) {
	email := NormalizeAuthEmail(rawEmail)
	if email == "" {
		return models.User{}, false, newFieldValidationError("email", "invalid email address")
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, false, fmt.Errorf("%w: %v", ErrAdminBootstrapFailed, err)
	}
	if exists {
		user, err := service.users.FindByNormalizedEmail(email)
		if err != nil {
			return models.User{}, false, fmt.Errorf("%w: %v", ErrAdminBootstrapFailed, err)
		}
		if user.Role != models.RoleAdmin {
			if err := service.users.UpdateRole(user.ID, models.RoleAdmin); err != nil {
				return models.User{}, false, fmt.Errorf("%w: %v", ErrAdminBootstrapFailed, err)
			}
			user.Role = models.RoleAdmin
		}
		return user, false, nil
	}

	if err := ValidatePasswordStrength(rawPassword); err != nil {
		return models.User{}, false, newFieldValidationError("password", "must be at least 8 characters with upper-case, lower-case and a digit")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false, fmt.Errorf("%w: %v", ErrAdminBootstrapFailed, err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, false, fmt.Errorf("%w: %v", ErrAdminBootstrapFailed, err)
	}
	return user, true, nil
}
