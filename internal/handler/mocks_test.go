package handler_test

import (
	"context"

	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/service"
)

// --- Manual Mocks ---

// MockUserService
type MockUserService struct {
	CreateUserFunc         func(ctx context.Context, req dto.CreateUserRequest) (*dto.IDResponse, error)
	GetUserFunc            func(ctx context.Context, email string) (*dto.UserResponse, error)
	GetUserByIDFunc        func(ctx context.Context, userID string) (*dto.UserResponse, error)
	GetLeaderboardFunc     func(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUserProgressFunc func(ctx context.Context, userID string, req dto.UpdateUserProgressRequest) error
	CreateSampleUsersFunc  func(ctx context.Context) ([]string, error)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.IDResponse, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	panic("MockUserService.CreateUserFunc not implemented")
}
func (m *MockUserService) GetUser(ctx context.Context, email string) (*dto.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, email)
	}
	panic("MockUserService.GetUserFunc not implemented")
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, userID)
	}
	panic("MockUserService.GetUserByIDFunc not implemented")
}
func (m *MockUserService) GetLeaderboard(ctx context.Context) ([]dto.UserResponse, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx)
	}
	panic("MockUserService.GetLeaderboardFunc not implemented")
}
func (m *MockUserService) RefreshLeaderboard(ctx context.Context) error {
	panic("MockUserService.RefreshLeaderboard not implemented")
}
func (m *MockUserService) UpdateUserProgress(ctx context.Context, userID string, req dto.UpdateUserProgressRequest) error {
	if m.UpdateUserProgressFunc != nil {
		return m.UpdateUserProgressFunc(ctx, userID, req)
	}
	panic("MockUserService.UpdateUserProgressFunc not implemented")
}
func (m *MockUserService) CreateSampleUsers(ctx context.Context) ([]string, error) {
	if m.CreateSampleUsersFunc != nil {
		return m.CreateSampleUsersFunc(ctx)
	}
	panic("MockUserService.CreateSampleUsersFunc not implemented")
}
func (m *MockUserService) GetSampleUser(ctx context.Context) (*dto.UserResponse, error) {
	return m.GetUser(ctx, "alex.chen@example.com")
}

// MockContentService
type MockContentService struct {
	GetModulesFunc         func(ctx context.Context) ([]dto.ModuleResponse, error)
	GetModuleByIDFunc      func(ctx context.Context, moduleID string) (*dto.ModuleResponse, error)
	CreateLessonFunc       func(ctx context.Context, req dto.CreateLessonRequest) (*dto.IDResponse, error)
	GetLessonsByModuleFunc func(ctx context.Context, moduleID string) ([]dto.LessonResponse, error)
	GetLessonByIDFunc      func(ctx context.Context, lessonID string) (*dto.LessonResponse, error)
	GetNextLessonFunc      func(ctx context.Context, userID, moduleID string, order int) (*dto.LessonResponse, error)
}

func (m *MockContentService) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*dto.IDResponse, error) {
	panic("MockContentService.CreateModule not implemented")
}
func (m *MockContentService) GetModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	if m.GetModulesFunc != nil {
		return m.GetModulesFunc(ctx)
	}
	panic("MockContentService.GetModulesFunc not implemented")
}
func (m *MockContentService) GetAllModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	panic("MockContentService.GetAllModules not implemented")
}
func (m *MockContentService) GetModuleByID(ctx context.Context, moduleID string) (*dto.ModuleResponse, error) {
	if m.GetModuleByIDFunc != nil {
		return m.GetModuleByIDFunc(ctx, moduleID)
	}
	panic("MockContentService.GetModuleByIDFunc not implemented")
}
func (m *MockContentService) CreateLesson(ctx context.Context, req dto.CreateLessonRequest) (*dto.IDResponse, error) {
	if m.CreateLessonFunc != nil {
		return m.CreateLessonFunc(ctx, req)
	}
	panic("MockContentService.CreateLessonFunc not implemented")
}
func (m *MockContentService) GetLessonsByModule(ctx context.Context, moduleID string) ([]dto.LessonResponse, error) {
	if m.GetLessonsByModuleFunc != nil {
		return m.GetLessonsByModuleFunc(ctx, moduleID)
	}
	panic("MockContentService.GetLessonsByModuleFunc not implemented")
}
func (m *MockContentService) GetLessonByID(ctx context.Context, lessonID string) (*dto.LessonResponse, error) {
	if m.GetLessonByIDFunc != nil {
		return m.GetLessonByIDFunc(ctx, lessonID)
	}
	panic("MockContentService.GetLessonByIDFunc not implemented")
}
func (m *MockContentService) GetNextLesson(ctx context.Context, userID, moduleID string, order int) (*dto.LessonResponse, error) {
	if m.GetNextLessonFunc != nil {
		return m.GetNextLessonFunc(ctx, userID, moduleID, order)
	}
	panic("MockContentService.GetNextLessonFunc not implemented")
}

// MockProgressService
type MockProgressService struct {
	CreateProgressFunc    func(ctx context.Context, req dto.CreateProgressRequest) (*dto.IDResponse, error)
	GetUserProgressFunc   func(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
	GetLessonProgressFunc func(ctx context.Context, userID, lessonID string) (*dto.ProgressResponse, error)
}

func (m *MockProgressService) CreateProgress(ctx context.Context, req dto.CreateProgressRequest) (*dto.IDResponse, error) {
	if m.CreateProgressFunc != nil {
		return m.CreateProgressFunc(ctx, req)
	}
	panic("MockProgressService.CreateProgressFunc not implemented")
}
func (m *MockProgressService) GetUserProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	if m.GetUserProgressFunc != nil {
		return m.GetUserProgressFunc(ctx, userID)
	}
	panic("MockProgressService.GetUserProgressFunc not implemented")
}
func (m *MockProgressService) GetLessonProgress(ctx context.Context, userID, lessonID string) (*dto.ProgressResponse, error) {
	if m.GetLessonProgressFunc != nil {
		return m.GetLessonProgressFunc(ctx, userID, lessonID)
	}
	panic("MockProgressService.GetLessonProgressFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	GetQuizByModuleFunc     func(ctx context.Context, moduleID string) (*dto.QuizResponse, error)
	SubmitQuizFunc          func(ctx context.Context, identity, quizID string, answers []domain.SubmittedAnswer) (*dto.QuizResultResponse, error)
	GetUserQuizAttemptsFunc func(ctx context.Context, identity, quizID string) ([]dto.QuizAttemptResponse, error)
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.IDResponse, error) {
	panic("MockQuizService.CreateQuiz not implemented")
}
func (m *MockQuizService) GetQuizByModule(ctx context.Context, moduleID string) (*dto.QuizResponse, error) {
	if m.GetQuizByModuleFunc != nil {
		return m.GetQuizByModuleFunc(ctx, moduleID)
	}
	panic("MockQuizService.GetQuizByModuleFunc not implemented")
}
func (m *MockQuizService) SubmitQuiz(ctx context.Context, identity, quizID string, answers []domain.SubmittedAnswer) (*dto.QuizResultResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, identity, quizID, answers)
	}
	panic("MockQuizService.SubmitQuizFunc not implemented")
}
func (m *MockQuizService) GetUserQuizAttempts(ctx context.Context, identity, quizID string) ([]dto.QuizAttemptResponse, error) {
	if m.GetUserQuizAttemptsFunc != nil {
		return m.GetUserQuizAttemptsFunc(ctx, identity, quizID)
	}
	panic("MockQuizService.GetUserQuizAttemptsFunc not implemented")
}

// MockAchievementService
type MockAchievementService struct {
	GetUserAchievementsFunc func(ctx context.Context, userID string) ([]dto.AchievementResponse, error)
}

func (m *MockAchievementService) Award(ctx context.Context, userID string, achievementType domain.AchievementType, title, description string, metadata map[string]interface{}) (*domain.Achievement, error) {
	panic("MockAchievementService.Award not implemented")
}
func (m *MockAchievementService) GetUserAchievements(ctx context.Context, userID string) ([]dto.AchievementResponse, error) {
	if m.GetUserAchievementsFunc != nil {
		return m.GetUserAchievementsFunc(ctx, userID)
	}
	panic("MockAchievementService.GetUserAchievementsFunc not implemented")
}

// MockAuthService accepts "Bearer <email>" tokens for any non-empty email.
type MockAuthService struct{}

func (m *MockAuthService) IssueAccessToken(email string) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: email, ExpiresIn: 3600}, nil
}
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString == "" || tokenString == "invalid" {
		return nil, service.ErrInvalidJWTToken
	}
	return &dto.AuthClaims{Email: tokenString}, nil
}

var (
	_ service.UserService        = (*MockUserService)(nil)
	_ service.ContentService     = (*MockContentService)(nil)
	_ service.ProgressService    = (*MockProgressService)(nil)
	_ service.QuizService        = (*MockQuizService)(nil)
	_ service.AchievementService = (*MockAchievementService)(nil)
	_ service.AuthService        = (*MockAuthService)(nil)
)
