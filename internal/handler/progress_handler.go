package handler

import (
	"skill-quest/internal/dto"
	"skill-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler handles lesson progress requests.
type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// CreateProgress godoc
// @Summary Record a lesson attempt
// @Description Upserts the progress record of (userId, lessonId), keeping the best score.
// @Tags progress
// @Accept json
// @Produce json
// @Param request body dto.CreateProgressRequest true "Progress"
// @Success 200 {object} dto.IDResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /progress [post]
func (h *ProgressHandler) CreateProgress(c *fiber.Ctx) error {
	var req dto.CreateProgressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.progressService.CreateProgress(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetUserProgress godoc
// @Summary List progress records of a user
// @Tags progress
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.ProgressResponse
// @Router /users/{id}/progress [get]
func (h *ProgressHandler) GetUserProgress(c *fiber.Ctx) error {
	records, err := h.progressService.GetUserProgress(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// GetLessonProgress godoc
// @Summary Get the progress of a user on a lesson
// @Tags progress
// @Produce json
// @Param id path string true "User ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.ProgressResponse "null when no attempt was recorded"
// @Router /users/{id}/progress/{lessonId} [get]
func (h *ProgressHandler) GetLessonProgress(c *fiber.Ctx) error {
	p, err := h.progressService.GetLessonProgress(c.UserContext(), c.Params("id"), c.Params("lessonId"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}
