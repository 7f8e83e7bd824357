package middleware

import (
	"skill-quest/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedOrderKey = "validated_order"
	ValidatedEmailKey = "validated_email"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateNextLessonParams validates the moduleId and order query parameters of the
// next-lesson lookup and stores the parsed order.
func (vm *ValidationMiddleware) ValidateNextLessonParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, errors := vm.validator.ValidateNextLessonQuery(c.Query("moduleId"), c.Query("order"))
		if len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedOrderKey, order)
		return c.Next()
	}
}

// ValidateEmailQuery validates the email query parameter of a user lookup.
func (vm *ValidationMiddleware) ValidateEmailQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Query("email")
		if errors := vm.validator.ValidateEmail("email", email); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedEmailKey, email)
		return c.Next()
	}
}

// ValidatePathID rejects requests whose path parameter param is blank.
func (vm *ValidationMiddleware) ValidatePathID(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errors := vm.validator.ValidatePathID(param, c.Params(param)); len(errors) > 0 {
			return errors
		}
		return c.Next()
	}
}
