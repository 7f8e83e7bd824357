package handler

import (
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/middleware"
	"skill-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user record, leaderboard and achievement requests.
type UserHandler struct {
	userService        service.UserService
	achievementService service.AchievementService
}

func NewUserHandler(userService service.UserService, achievementService service.AchievementService) *UserHandler {
	return &UserHandler{userService: userService, achievementService: achievementService}
}

// CreateUser godoc
// @Summary Create a user
// @Description Registers a learner. An already registered email returns the existing id.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.IDResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetUser godoc
// @Summary Find a user by email
// @Tags users
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} dto.UserResponse "null when no user has the email"
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /users [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	email, _ := c.Locals(middleware.ValidatedEmailKey).(string)
	if email == "" {
		email = c.Query("email")
	}
	user, err := h.userService.GetUser(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetUserByID godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse "null when the user does not exist"
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetMe godoc
// @Summary Profile of the authenticated user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	email := middleware.CallerEmail(c)
	user, err := h.userService.GetUser(c.UserContext(), email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewUserNotFoundError(email)
	}
	return c.JSON(user)
}

// GetLeaderboard godoc
// @Summary Top learners
// @Description Returns at most 10 users ordered by total score, highest first.
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /leaderboard [get]
func (h *UserHandler) GetLeaderboard(c *fiber.Ctx) error {
	board, err := h.userService.GetLeaderboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(board)
}

// UpdateUserProgress godoc
// @Summary Add XP and bump the streak
// @Tags users
// @Accept json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserProgressRequest true "Progress delta"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/{id}/progress [post]
func (h *UserHandler) UpdateUserProgress(c *fiber.Ctx) error {
	var req dto.UpdateUserProgressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.userService.UpdateUserProgress(c.UserContext(), c.Params("id"), req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserAchievements godoc
// @Summary List achievements of a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.AchievementResponse
// @Router /users/{id}/achievements [get]
func (h *UserHandler) GetUserAchievements(c *fiber.Ctx) error {
	achievements, err := h.achievementService.GetUserAchievements(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(achievements)
}

// CreateSampleUsers godoc
// @Summary Seed sample users (development only)
// @Tags dev
// @Produce json
// @Success 201 {array} string
// @Router /dev/sample-users [post]
func (h *UserHandler) CreateSampleUsers(c *fiber.Ctx) error {
	ids, err := h.userService.CreateSampleUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ids)
}

// GetSampleUser godoc
// @Summary Get the first sample user (development only)
// @Tags dev
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /dev/sample-user [get]
func (h *UserHandler) GetSampleUser(c *fiber.Ctx) error {
	user, err := h.userService.GetSampleUser(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(user)
}
