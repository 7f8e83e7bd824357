package service

import (
	"errors"

	"skill-quest/internal/domain"
)

// internalUnlessDomain passes domain and validation errors through and wraps
// anything else as an internal error.
func internalUnlessDomain(message string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return domain.NewInternalError(message, err)
}
