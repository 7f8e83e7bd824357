package handler

import (
	"strconv"

	"skill-quest/internal/dto"
	"skill-quest/internal/middleware"
	"skill-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles module and lesson requests.
type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// CreateModule godoc
// @Summary Create a module
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateModuleRequest true "Module"
// @Success 201 {object} dto.IDResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /modules [post]
func (h *ContentHandler) CreateModule(c *fiber.Ctx) error {
	var req dto.CreateModuleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.contentService.CreateModule(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetModules godoc
// @Summary List active modules
// @Tags content
// @Produce json
// @Success 200 {array} dto.ModuleResponse
// @Router /modules [get]
func (h *ContentHandler) GetModules(c *fiber.Ctx) error {
	modules, err := h.contentService.GetModules(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(modules)
}

// GetModule godoc
// @Summary Get a module
// @Tags content
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} dto.ModuleResponse "null when the module does not exist"
// @Router /modules/{id} [get]
func (h *ContentHandler) GetModule(c *fiber.Ctx) error {
	module, err := h.contentService.GetModuleByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(module)
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateLessonRequest true "Lesson"
// @Success 201 {object} dto.IDResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.contentService.CreateLesson(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetLessonsByModule godoc
// @Summary List the lessons of a module in order
// @Tags content
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {array} dto.LessonResponse
// @Router /modules/{id}/lessons [get]
func (h *ContentHandler) GetLessonsByModule(c *fiber.Ctx) error {
	lessons, err := h.contentService.GetLessonsByModule(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(lessons)
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags content
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} dto.LessonResponse "null when the lesson does not exist"
// @Router /lessons/{id} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	lesson, err := h.contentService.GetLessonByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}

// GetNextLesson godoc
// @Summary Next lesson in reading order
// @Description Returns the following lesson of the module, or the first lesson of the next module.
// @Tags content
// @Produce json
// @Param userId query string false "User ID (unused)"
// @Param moduleId query string true "Current module ID"
// @Param order query int true "Current lesson order"
// @Success 200 {object} dto.LessonResponse "null at the end of the curriculum"
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /lessons/next [get]
func (h *ContentHandler) GetNextLesson(c *fiber.Ctx) error {
	order, ok := c.Locals(middleware.ValidatedOrderKey).(int)
	if !ok {
		order, _ = strconv.Atoi(c.Query("order"))
	}
	lesson, err := h.contentService.GetNextLesson(c.UserContext(), c.Query("userId"), c.Query("moduleId"), order)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}
