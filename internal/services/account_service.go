package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordChangeInvalidInput = errors.New("password change invalid input")
	ErrPasswordMismatch           = errors.New("password confirmation mismatch")
	ErrInvalidCurrentPassword     = errors.New("invalid current password")
	ErrNewPasswordMustDiffer      = errors.New("new password must differ")
	ErrPasswordUpdateFailed       = errors.New("password update failed")
	ErrAccountPasswordMissing     = errors.New("account password missing")
	ErrAccountPasswordInvalid     = errors.New("account password invalid")
	ErrAccountDeleteFailed        = errors.New("account delete failed")
)

type AccountUserRepository interface {
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	DeleteAccountAndRelatedData(userID uint) error
}

// AccountService changes credentials and removes accounts.
type AccountService struct {
	users AccountUserRepository
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users}
}

func (service *AccountService) ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCurrentPassword
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}

func (service *AccountService) ChangePassword(userID uint, passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	if err := service.ValidatePasswordChange(passwordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(hash), false); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	return nil
}

// SetTemporaryPassword stores password and forces a change on next login.
func (service *AccountService) SetTemporaryPassword(userID uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(hash), true); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	return nil
}

func (service *AccountService) ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrAccountPasswordInvalid
	}
	return nil
}

// DeleteAccount removes the user along with their logs, reminders and profile.
func (service *AccountService) DeleteAccount(identity Identity, passwordHash string, rawPassword string) error {
	userID, err := requireIdentity(identity)
	if err != nil {
		return err
	}
	if err := service.ValidateDeleteAccountPassword(passwordHash, rawPassword); err != nil {
		return err
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountDeleteFailed, err)
	}
	return nil
}
