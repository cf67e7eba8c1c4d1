package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("not found")
	ErrReflectionNotFound = fmt.Errorf("reflection %w", ErrNotFound)
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrNoData             = &ValidationError{Message: "No data provided"}

	// ErrStorageUnreadable marks a backing document that exists but cannot
	// be parsed. The store recovers from it and never returns it to callers.
	ErrStorageUnreadable = errors.New("storage document unreadable")
)

// ValidationError reports missing or malformed input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingField builds the error returned for an absent required field
func MissingField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Missing required field: %s", field),
	}
}

// NullField builds the error returned when a non-nullable field is set to null
func NullField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Field %s cannot be null", field),
	}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DateLayout is the format used for reflection creation dates ("Mon Jan 13 2025")
const DateLayout = "Mon Jan 02 2006"

// Reflection is a weekly learning journal entry
type Reflection struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Reflection string `json:"reflection"`
	Week       *int   `json:"week"`
}

// RecordID implements the collection record contract
func (r Reflection) RecordID() string { return r.ID }

// Project is a portfolio entry
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	ImageURL     *string  `json:"imageUrl"`
	DemoURL      *string  `json:"demoUrl"`
	GithubURL    *string  `json:"githubUrl"`
	Date         string   `json:"date"`
}

// RecordID implements the collection record contract
func (p Project) RecordID() string { return p.ID }

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v
func StringPtr(v string) *string { return &v }
