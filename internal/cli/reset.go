package cli

import (
	"errors"
	"fmt"

	"github.com/IsaacSuo/Web-health/internal/db"
	"github.com/IsaacSuo/Web-health/internal/security"
	"github.com/IsaacSuo/Web-health/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

type ResetPasswordCmd struct {
	Email string `arg:"" help:"Account email."`
}

func (cmd *ResetPasswordCmd) Run(ctx *Context) error {
	email := services.NormalizeAuthEmail(cmd.Email)
	if email == "" {
		return fmt.Errorf("invalid email address %q", cmd.Email)
	}

	cfg, logger, err := ctx.load()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close(database)
	}()

	temporaryPassword, err := resetPassword(database, email)
	if err != nil {
		return err
	}

	ctx.printf("Password reset for %s\n", email)
	ctx.printf("Temporary password: %s\n", temporaryPassword)
	ctx.printf("User must change password on next login.\n")
	return nil
}

func resetPassword(database *gorm.DB, email string) (string, error) {
	users := db.NewRepositories(database).Users
	user, err := users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user %s not found", email)
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	if err := services.NewAccountService(users).SetTemporaryPassword(user.ID, temporaryPassword); err != nil {
		return "", err
	}
	return temporaryPassword, nil
}

// generateTemporaryPassword redraws until the result passes ValidatePasswordStrength.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for {
		password, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
}
