package middleware_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"skill-quest/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fiber.New()
	app.Post("/submit", middleware.RateLimiter(ctx, 2, time.Hour), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil), -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, statuses)
}

func TestRateLimiter_Disabled(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.RateLimiter(context.Background(), 0, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
}
