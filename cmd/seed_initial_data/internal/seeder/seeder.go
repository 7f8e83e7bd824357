// Package seeder loads curriculum seed modules through the services.
package seeder

import (
	"context"
	"fmt"

	"skill-quest/cmd/seed_initial_data/internal/seedmodels"
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/service"

	"go.uber.org/zap"
)

// Seeder creates seed modules with their lessons and quiz.
type Seeder struct {
	content   service.ContentService
	quizzes   service.QuizService
	txManager domain.TransactionManager
}

func New(content service.ContentService, quizzes service.QuizService, txManager domain.TransactionManager) *Seeder {
	return &Seeder{content: content, quizzes: quizzes, txManager: txManager}
}

// SeedModule creates the module, its lessons and its quiz in one transaction, so a
// failed module leaves nothing behind and is retried on the next run.
func (s *Seeder) SeedModule(ctx context.Context, sm seedmodels.SeedModule) (string, error) {
	log := logger.Get()
	var moduleID string
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		module, err := s.content.CreateModule(txCtx, dto.CreateModuleRequest{
			Title:       sm.Title,
			Description: sm.Description,
			Order:       sm.Order,
		})
		if err != nil {
			return fmt.Errorf("failed to create module: %w", err)
		}

		for _, sl := range sm.Lessons {
			lesson, err := s.content.CreateLesson(txCtx, dto.CreateLessonRequest{
				ModuleID:   module.ID,
				Title:      sl.Title,
				Order:      sl.Order,
				Content:    sl.Content,
				XPReward:   sl.XPReward,
				Difficulty: sl.Difficulty,
			})
			if err != nil {
				return fmt.Errorf("failed to create lesson %q: %w", sl.Title, err)
			}
			log.Debug("Created lesson.", zap.String("id", lesson.ID), zap.String("title", sl.Title))
		}

		if sm.Quiz != nil {
			quiz, err := s.quizzes.CreateQuiz(txCtx, dto.CreateQuizRequest{
				ModuleID:     module.ID,
				Title:        sm.Quiz.Title,
				Questions:    sm.Quiz.Questions,
				PassingScore: sm.Quiz.PassingScore,
				XPReward:     sm.Quiz.XPReward,
			})
			if err != nil {
				return fmt.Errorf("failed to create quiz %q: %w", sm.Quiz.Title, err)
			}
			log.Debug("Created quiz.", zap.String("id", quiz.ID), zap.Int("questions", len(sm.Quiz.Questions)))
		}

		moduleID = module.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Info("Seeded module.", zap.String("id", moduleID), zap.String("title", sm.Title), zap.Int("lessons", len(sm.Lessons)))
	return moduleID, nil
}
