package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/monitoring"
	"skill-quest/internal/tracing"
	"skill-quest/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuizService manages module quizzes and grades submissions.
type QuizService interface {
	CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.IDResponse, error)
	GetQuizByModule(ctx context.Context, moduleID string) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, identity, quizID string, answers []domain.SubmittedAnswer) (*dto.QuizResultResponse, error)
	GetUserQuizAttempts(ctx context.Context, identity, quizID string) ([]dto.QuizAttemptResponse, error)
}

type quizService struct {
	quizRepo     domain.QuizRepository
	attemptRepo  domain.QuizAttemptRepository
	userRepo     domain.UserRepository
	moduleRepo   domain.ModuleRepository
	lessonRepo   domain.LessonRepository
	progressRepo domain.ProgressRepository
	achievements AchievementService
	txManager    domain.TransactionManager
	leaderboard  *Leaderboard
	now          func() time.Time
}

// QuizServiceDeps groups the collaborators of the quiz service. Leaderboard may be nil.
type QuizServiceDeps struct {
	QuizRepo     domain.QuizRepository
	AttemptRepo  domain.QuizAttemptRepository
	UserRepo     domain.UserRepository
	ModuleRepo   domain.ModuleRepository
	LessonRepo   domain.LessonRepository
	ProgressRepo domain.ProgressRepository
	Achievements AchievementService
	TxManager    domain.TransactionManager
	Leaderboard  *Leaderboard
}

func NewQuizService(deps QuizServiceDeps) QuizService {
	return &quizService{
		quizRepo:     deps.QuizRepo,
		attemptRepo:  deps.AttemptRepo,
		userRepo:     deps.UserRepo,
		moduleRepo:   deps.ModuleRepo,
		lessonRepo:   deps.LessonRepo,
		progressRepo: deps.ProgressRepo,
		achievements: deps.Achievements,
		txManager:    deps.TxManager,
		leaderboard:  deps.Leaderboard,
		now:          time.Now,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.IDResponse, error) {
	now := s.now()
	quiz := &domain.Quiz{
		ModuleID:     strings.TrimSpace(req.ModuleID),
		Title:        strings.TrimSpace(req.Title),
		Questions:    req.Questions,
		PassingScore: req.PassingScore,
		XPReward:     req.XPReward,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	module, err := s.moduleRepo.GetModuleByID(ctx, quiz.ModuleID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get module", err)
	}
	if module == nil {
		return nil, domain.NewModuleNotFoundError(quiz.ModuleID)
	}

	if err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to create quiz", err)
	}
	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("moduleID", quiz.ModuleID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("maxScore", quiz.MaxScore()),
	)
	return &dto.IDResponse{ID: quiz.ID}, nil
}

// GetQuizByModule returns the quiz of the module, or nil.
func (s *quizService) GetQuizByModule(ctx context.Context, moduleID string) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByModule(ctx, moduleID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	return dto.NewQuizResponse(quiz), nil
}

// SubmitQuiz grades answers for the user identified by identity (an email) and persists the
// attempt. On a pass the quiz XP is added and perfect score and module completion are
// checked. All writes share one transaction.
func (s *quizService) SubmitQuiz(ctx context.Context, identity, quizID string, answers []domain.SubmittedAnswer) (_ *dto.QuizResultResponse, err error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, domain.NewUnauthorizedError("authentication required to submit a quiz")
	}

	ctx, span := tracing.StartSpan(ctx, "QuizService.SubmitQuiz",
		attribute.String("quiz.id", quizID),
		attribute.Int("answers", len(answers)),
	)
	defer func() { tracing.End(span, err) }()

	var result domain.QuizResult
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		quiz, err := s.quizRepo.GetQuizByID(txCtx, quizID)
		if err != nil {
			return domain.NewInternalError("failed to get quiz", err)
		}
		if quiz == nil {
			return domain.NewQuizNotFoundError(quizID)
		}
		user, err := s.userRepo.GetUserByEmail(txCtx, identity)
		if err != nil {
			return domain.NewInternalError("failed to get user", err)
		}
		if user == nil {
			return domain.NewUserNotFoundError(identity)
		}

		result = domain.GradeQuiz(quiz, answers)

		attempt := &domain.QuizAttempt{
			UserID:      user.ID,
			QuizID:      quiz.ID,
			Answers:     result.GradedAnswers,
			TotalScore:  result.TotalScore,
			Passed:      result.Passed,
			CompletedAt: s.now(),
		}
		if err := s.attemptRepo.CreateAttempt(txCtx, attempt); err != nil {
			return domain.NewInternalError("failed to save quiz attempt", err)
		}

		if !result.Passed {
			return nil
		}
		return s.applyPass(txCtx, user, quiz, result)
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordQuizSubmission(result.Passed)
	span.SetAttributes(
		attribute.Bool("quiz.passed", result.Passed),
		attribute.Int("quiz.score", result.TotalScore),
	)
	logger.Get().Info("Quiz graded",
		zap.String("quizID", quizID),
		zap.Bool("passed", result.Passed),
		zap.Int("totalScore", result.TotalScore),
		zap.Int("maxScore", result.MaxScore),
	)
	if result.Passed && result.XPEarned != 0 {
		s.leaderboard.invalidate(ctx)
	}
	return dto.NewQuizResultResponse(result), nil
}

func (s *quizService) applyPass(ctx context.Context, user *domain.User, quiz *domain.Quiz, result domain.QuizResult) error {
	oldLevel := user.Level
	user.AddXP(int64(quiz.XPReward))
	user.UpdatedAt = s.now()
	if err := s.userRepo.UpdateUserStats(ctx, user); err != nil {
		return internalUnlessDomain("failed to update user", err)
	}
	if err := awardLevelUp(ctx, s.achievements, user.ID, oldLevel, user.Level); err != nil {
		return err
	}

	if result.Perfect() {
		_, err := s.achievements.Award(ctx, user.ID, domain.AchievementPerfectQuiz,
			"Perfect Score!",
			fmt.Sprintf("Got %d%% on %s", util.Percent(result.TotalScore, result.MaxScore), quiz.Title),
			map[string]interface{}{"quizId": quiz.ID, "score": result.TotalScore},
		)
		if err != nil {
			return err
		}
	}

	complete, err := s.moduleCompleted(ctx, user.ID, quiz.ModuleID)
	if err != nil {
		return err
	}
	if !complete {
		return nil
	}

	moduleTitle := quiz.ModuleID
	module, err := s.moduleRepo.GetModuleByID(ctx, quiz.ModuleID)
	if err != nil {
		return domain.NewInternalError("failed to get module", err)
	}
	if module != nil {
		moduleTitle = module.Title
	}
	_, err = s.achievements.Award(ctx, user.ID, domain.AchievementModuleComplete,
		"Module Master",
		"Completed all lessons in "+moduleTitle,
		map[string]interface{}{"moduleId": quiz.ModuleID},
	)
	return err
}

// moduleCompleted reports whether every lesson of the module has a completed progress
// record for the user. A module without lessons counts as completed.
func (s *quizService) moduleCompleted(ctx context.Context, userID, moduleID string) (bool, error) {
	lessons, err := s.lessonRepo.GetLessonsByModule(ctx, moduleID)
	if err != nil {
		return false, domain.NewInternalError("failed to get module lessons", err)
	}
	completed, err := s.progressRepo.GetCompletedProgressByUser(ctx, userID)
	if err != nil {
		return false, domain.NewInternalError("failed to get completed progress", err)
	}

	done := make(map[string]bool, len(completed))
	for _, p := range completed {
		done[p.LessonID] = true
	}
	count := 0
	for _, l := range lessons {
		if done[l.ID] {
			count++
		}
	}
	return count == len(lessons), nil
}

// GetUserQuizAttempts returns the caller's attempts for quizID, newest first. An
// unauthenticated or unknown caller gets an empty list.
func (s *quizService) GetUserQuizAttempts(ctx context.Context, identity, quizID string) ([]dto.QuizAttemptResponse, error) {
	out := []dto.QuizAttemptResponse{}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return out, nil
	}

	user, err := s.userRepo.GetUserByEmail(ctx, identity)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return out, nil
	}

	attempts, err := s.attemptRepo.GetAttemptsByUserAndQuiz(ctx, user.ID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz attempts", err)
	}
	for _, a := range attempts {
		out = append(out, dto.NewQuizAttemptResponse(a))
	}
	return out, nil
}
