package service

import (
	"context"
	"strings"
	"time"

	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProgressService records lesson completion attempts, one logical record per (user, lesson).
type ProgressService interface {
	CreateProgress(ctx context.Context, req dto.CreateProgressRequest) (*dto.IDResponse, error)
	GetUserProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
	GetLessonProgress(ctx context.Context, userID, lessonID string) (*dto.ProgressResponse, error)
}

type progressServiceImpl struct {
	progressRepo domain.ProgressRepository
	userRepo     domain.UserRepository
	lessonRepo   domain.LessonRepository
	achievements AchievementService
	txManager    domain.TransactionManager
	now          func() time.Time
}

func NewProgressService(
	progressRepo domain.ProgressRepository,
	userRepo domain.UserRepository,
	lessonRepo domain.LessonRepository,
	achievements AchievementService,
	txManager domain.TransactionManager,
) ProgressService {
	return &progressServiceImpl{
		progressRepo: progressRepo,
		userRepo:     userRepo,
		lessonRepo:   lessonRepo,
		achievements: achievements,
		txManager:    txManager,
		now:          time.Now,
	}
}

// CreateProgress upserts the record for (userID, lessonID): an existing record keeps its best
// score, takes the new completed flag and counts one more attempt.
func (s *progressServiceImpl) CreateProgress(ctx context.Context, req dto.CreateProgressRequest) (_ *dto.IDResponse, err error) {
	userID := strings.TrimSpace(req.UserID)
	lessonID := strings.TrimSpace(req.LessonID)

	var errs domain.ValidationErrors
	if userID == "" {
		errs = append(errs, domain.NewMissingFieldError("userId"))
	}
	if lessonID == "" {
		errs = append(errs, domain.NewMissingFieldError("lessonId"))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	ctx, span := tracing.StartSpan(ctx, "ProgressService.CreateProgress",
		attribute.String("user.id", userID),
		attribute.String("lesson.id", lessonID),
		attribute.Bool("completed", req.Completed),
	)
	defer func() { tracing.End(span, err) }()

	var id string
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetUserByID(txCtx, userID)
		if err != nil {
			return domain.NewInternalError("failed to get user", err)
		}
		if user == nil {
			return domain.NewUserNotFoundError(userID)
		}
		lesson, err := s.lessonRepo.GetLessonByID(txCtx, lessonID)
		if err != nil {
			return domain.NewInternalError("failed to get lesson", err)
		}
		if lesson == nil {
			return domain.NewLessonNotFoundError(lessonID)
		}

		firstCompletion := false
		if req.Completed {
			completed, err := s.progressRepo.GetCompletedProgressByUser(txCtx, userID)
			if err != nil {
				return domain.NewInternalError("failed to get completed progress", err)
			}
			firstCompletion = len(completed) == 0
		}

		now := s.now()
		existing, err := s.progressRepo.GetProgress(txCtx, userID, lessonID)
		if err != nil {
			return domain.NewInternalError("failed to get progress", err)
		}
		if existing != nil {
			existing.RecordAttempt(req.Completed, req.Score, now)
			if err := s.progressRepo.UpdateProgress(txCtx, existing); err != nil {
				return internalUnlessDomain("failed to update progress", err)
			}
			id = existing.ID
		} else {
			progress := domain.NewProgress(userID, lessonID, req.Completed, req.Score, now)
			if err := s.progressRepo.CreateProgress(txCtx, progress); err != nil {
				return domain.NewInternalError("failed to create progress", err)
			}
			id = progress.ID
		}

		if firstCompletion {
			_, err := s.achievements.Award(txCtx, userID, domain.AchievementFirstLesson,
				"First Steps",
				"Completed "+lesson.Title,
				map[string]interface{}{"lessonId": lessonID},
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Debug("Progress recorded",
		zap.String("userID", userID),
		zap.String("lessonID", lessonID),
		zap.Bool("completed", req.Completed),
		zap.Int("score", req.Score),
	)
	return &dto.IDResponse{ID: id}, nil
}

func (s *progressServiceImpl) GetUserProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	records, err := s.progressRepo.GetProgressByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get progress", err)
	}
	out := make([]dto.ProgressResponse, 0, len(records))
	for _, p := range records {
		out = append(out, *dto.NewProgressResponse(p))
	}
	return out, nil
}

// GetLessonProgress returns the record for (userID, lessonID), or nil.
func (s *progressServiceImpl) GetLessonProgress(ctx context.Context, userID, lessonID string) (*dto.ProgressResponse, error) {
	p, err := s.progressRepo.GetProgress(ctx, userID, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get progress", err)
	}
	return dto.NewProgressResponse(p), nil
}
