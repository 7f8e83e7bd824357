package validation

import (
	"regexp"
	"strconv"
	"strings"

	"skill-quest/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEmail validates an email lookup parameter.
func (v *Validator) ValidateEmail(field, email string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	email = strings.TrimSpace(email)
	if email == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !emailPattern.MatchString(email) {
		errors = append(errors, domain.NewInvalidFormatError(field, email))
	}
	return errors
}

// ValidateNextLessonQuery validates the getNextLesson query and returns the parsed lesson order.
func (v *Validator) ValidateNextLessonQuery(moduleID, order string) (int, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if strings.TrimSpace(moduleID) == "" {
		errors = append(errors, domain.NewMissingFieldError("moduleId"))
	}

	parsed := 0
	if strings.TrimSpace(order) == "" {
		errors = append(errors, domain.NewMissingFieldError("order"))
	} else if n, err := strconv.Atoi(strings.TrimSpace(order)); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("order", order))
	} else {
		parsed = n
	}

	return parsed, errors
}

// ValidatePathID validates a required path identifier.
func (v *Validator) ValidatePathID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	}
	return errors
}
