package handler

import (
	"context"

	"skill-quest/internal/config"
	"skill-quest/internal/middleware"
	"skill-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Services groups the services exposed over HTTP.
type Services struct {
	Users        service.UserService
	Content      service.ContentService
	Progress     service.ProgressService
	Quizzes      service.QuizService
	Achievements service.AchievementService
	Auth         service.AuthService
}

// RegisterRoutes mounts every API route on router (the /api group).
func RegisterRoutes(ctx context.Context, router fiber.Router, svcs Services, cfg *config.Config) {
	userHandler := NewUserHandler(svcs.Users, svcs.Achievements)
	contentHandler := NewContentHandler(svcs.Content)
	progressHandler := NewProgressHandler(svcs.Progress)
	quizHandler := NewQuizHandler(svcs.Quizzes)
	validate := middleware.NewValidationMiddleware()
	optionalAuth := middleware.OptionalAuth(svcs.Auth)

	// User routes
	router.Post("/users", userHandler.CreateUser)
	router.Get("/users", validate.ValidateEmailQuery(), userHandler.GetUser)
	router.Get("/users/:id", userHandler.GetUserByID)
	router.Post("/users/:id/progress", validate.ValidatePathID("id"), userHandler.UpdateUserProgress)
	router.Get("/users/:id/achievements", userHandler.GetUserAchievements)
	router.Get("/leaderboard", userHandler.GetLeaderboard)
	router.Get("/me", middleware.Protected(svcs.Auth), userHandler.GetMe)

	// Content routes
	router.Post("/modules", contentHandler.CreateModule)
	router.Get("/modules", contentHandler.GetModules)
	router.Get("/modules/:id", contentHandler.GetModule)
	router.Get("/modules/:id/lessons", contentHandler.GetLessonsByModule)
	router.Get("/modules/:id/quiz", quizHandler.GetQuizByModule)
	router.Post("/lessons", contentHandler.CreateLesson)
	// Registered before /lessons/:id so "next" is not taken as an id.
	router.Get("/lessons/next", validate.ValidateNextLessonParams(), contentHandler.GetNextLesson)
	router.Get("/lessons/:id", contentHandler.GetLesson)

	// Progress routes
	router.Post("/progress", progressHandler.CreateProgress)
	router.Get("/users/:id/progress", progressHandler.GetUserProgress)
	router.Get("/users/:id/progress/:lessonId", progressHandler.GetLessonProgress)

	// Quiz routes
	router.Post("/quizzes", quizHandler.CreateQuiz)
	router.Post("/quizzes/:id/submit",
		optionalAuth,
		middleware.RateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		quizHandler.SubmitQuiz,
	)
	router.Get("/quizzes/:id/attempts", optionalAuth, quizHandler.GetUserQuizAttempts)

	if cfg.App.EnableDevRoutes {
		authHandler := NewAuthHandler(svcs.Auth, svcs.Users)
		dev := router.Group("/dev")
		dev.Post("/sample-users", userHandler.CreateSampleUsers)
		dev.Get("/sample-user", userHandler.GetSampleUser)
		dev.Post("/token", authHandler.IssueDevToken)
	}
}
