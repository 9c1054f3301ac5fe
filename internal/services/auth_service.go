package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/IsaacSuo/Web-health/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthEmailTaken       = errors.New("auth email already registered")
	ErrAuthUserLoadFailed   = errors.New("auth user load failed")
	ErrAuthUserCreateFailed = errors.New("auth user create failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates an owner account. A taken email yields ErrAuthEmailTaken,
// which also matches ErrConstraintViolation.
func (service *AuthService) Register(rawEmail string, rawPassword string, now time.Time) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(rawEmail, rawPassword)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthUserLoadFailed, err)
	}
	if exists {
		return models.User{}, fmt.Errorf("%w: %w", ErrConstraintViolation, ErrAuthEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if isDuplicateKey(err) {
			return models.User{}, fmt.Errorf("%w: %w", ErrConstraintViolation, ErrAuthEmailTaken)
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthUserCreateFailed, err)
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for an unknown email and a
// wrong password alike.
func (service *AuthService) Authenticate(rawEmail string, rawPassword string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(rawEmail, rawPassword)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthUserLoadFailed, err)
	}
	if !exists {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthUserLoadFailed, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
