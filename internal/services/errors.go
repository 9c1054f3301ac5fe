package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrConstraintViolation = errors.New("constraint violation")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every offending field of one write request.
type ValidationError struct {
	Fields []FieldError
}

func (validation *ValidationError) Error() string {
	if validation == nil || len(validation.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(validation.Fields))
	for _, field := range validation.Fields {
		parts = append(parts, field.Field+": "+field.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (validation *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (validation *ValidationError) Add(field string, message string) {
	validation.Fields = append(validation.Fields, FieldError{Field: field, Message: message})
}

func (validation *ValidationError) HasField(field string) bool {
	if validation == nil {
		return false
	}
	for _, candidate := range validation.Fields {
		if candidate.Field == field {
			return true
		}
	}
	return false
}

// FieldMap returns field -> message, keeping the first message per field.
func (validation *ValidationError) FieldMap() map[string]string {
	fields := make(map[string]string, len(validation.Fields))
	for _, field := range validation.Fields {
		if _, exists := fields[field.Field]; !exists {
			fields[field.Field] = field.Message
		}
	}
	return fields
}

// FieldNames returns the sorted distinct field names.
func (validation *ValidationError) FieldNames() []string {
	fields := validation.FieldMap()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OrNil returns nil when nothing was recorded so callers can return it directly.
func (validation *ValidationError) OrNil() error {
	if validation == nil || len(validation.Fields) == 0 {
		return nil
	}
	return validation
}

func newFieldValidationError(field string, message string) *ValidationError {
	validation := &ValidationError{}
	validation.Add(field, message)
	return validation
}

// isDuplicateKey reports a unique constraint violation surfaced by the store layer.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
