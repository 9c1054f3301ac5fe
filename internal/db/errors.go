package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err came from a unique constraint in any supported store.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key") ||
		strings.Contains(message, "duplicate entry")
}

// translateWriteError normalises unique violations to gorm.ErrDuplicatedKey for
// dialects that do not translate them themselves.
func translateWriteError(err error) error {
	if err == nil || errors.Is(err, gorm.ErrDuplicatedKey) || !IsUniqueViolation(err) {
		return err
	}
	return fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
}

// lookupResult folds a missing row into found=false.
func lookupResult(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
