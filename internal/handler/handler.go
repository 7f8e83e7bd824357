package handler

import (
	"skill-quest/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON request body into dest.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	return nil
}
