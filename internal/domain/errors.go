package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Entity specific errors
	CodeUserNotFound   ErrorCode = "USER_NOT_FOUND"
	CodeQuizNotFound   ErrorCode = "QUIZ_NOT_FOUND"
	CodeLessonNotFound ErrorCode = "LESSON_NOT_FOUND"
	CodeModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// IsNotFound reports whether code is one of the not-found codes.
func (c ErrorCode) IsNotFound() bool {
	switch c {
	case CodeNotFound, CodeUserNotFound, CodeQuizNotFound, CodeLessonNotFound, CodeModuleNotFound:
		return true
	}
	return false
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewUserNotFoundError(identifier string) *DomainError {
	return NewError(CodeUserNotFound, fmt.Sprintf("User not found: %s", identifier), nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewLessonNotFoundError(lessonID string) *DomainError {
	return NewError(CodeLessonNotFound, fmt.Sprintf("Lesson not found with ID: %s", lessonID), nil)
}

func NewModuleNotFoundError(moduleID string) *DomainError {
	return NewError(CodeModuleNotFound, fmt.Sprintf("Module not found with ID: %s", moduleID), nil)
}
