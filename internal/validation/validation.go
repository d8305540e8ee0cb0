// Package validation holds the field-level input checks shared by the
// auth and survey services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldError represents a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every invalid field of one request so a form can show
// all problems at once
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Add appends a field error
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// OrNil returns the collected errors, or nil if every field was valid
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateEmail checks if an email address is valid. Empty is allowed;
// the field is optional at signup.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return FieldError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return FieldError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return FieldError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return FieldError{Field: "username", Message: "username is required"}
	}
	if len(username) < 2 {
		return FieldError{Field: "username", Message: "username must be at least 2 characters"}
	}
	return nil
}
