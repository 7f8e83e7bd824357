package handler

import (
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/middleware"
	"skill-quest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// CreateQuiz godoc
// @Summary Create the quiz of a module
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} dto.IDResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateQuiz(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuizByModule godoc
// @Summary Get the quiz of a module
// @Tags quiz
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} dto.QuizResponse "null when the module has no quiz"
// @Router /modules/{id}/quiz [get]
func (h *QuizHandler) GetQuizByModule(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuizByModule(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the answers of the authenticated user, records the attempt and awards XP on a pass.
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	// Answers are not validated: unknown or blank question ids grade as 0 points.
	if middleware.CallerEmail(c) == "" {
		return domain.NewUnauthorizedError("authentication required to submit a quiz")
	}
	var req dto.SubmitQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	quizID := c.Params("id")

	result, err := h.service.SubmitQuiz(c.UserContext(), middleware.CallerEmail(c), quizID, req.Answers)
	if err != nil {
		logger.Get().Debug("Quiz submission rejected", zap.String("quizID", quizID), zap.Error(err))
		return err
	}
	return c.JSON(result)
}

// GetUserQuizAttempts godoc
// @Summary List the caller's attempts for a quiz
// @Description Newest first. Anonymous callers get an empty list.
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {array} dto.QuizAttemptResponse
// @Router /quizzes/{id}/attempts [get]
func (h *QuizHandler) GetUserQuizAttempts(c *fiber.Ctx) error {
	attempts, err := h.service.GetUserQuizAttempts(c.UserContext(), middleware.CallerEmail(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}
