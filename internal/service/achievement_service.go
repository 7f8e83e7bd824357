package service

import (
	"context"
	"fmt"
	"time"

	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/monitoring"

	"go.uber.org/zap"
)

// streakMilestones maps a streak length to the achievement awarded on reaching it.
var streakMilestones = map[int]domain.AchievementType{
	3:  domain.AchievementStreak3,
	7:  domain.AchievementStreak7,
	30: domain.AchievementStreak30,
}

// AchievementService appends achievement records. Awards are not deduplicated.
type AchievementService interface {
	Award(ctx context.Context, userID string, achievementType domain.AchievementType, title, description string, metadata map[string]interface{}) (*domain.Achievement, error)
	GetUserAchievements(ctx context.Context, userID string) ([]dto.AchievementResponse, error)
}

type achievementServiceImpl struct {
	repo domain.AchievementRepository
	now  func() time.Time
}

func NewAchievementService(repo domain.AchievementRepository) AchievementService {
	return &achievementServiceImpl{repo: repo, now: time.Now}
}

func (s *achievementServiceImpl) Award(ctx context.Context, userID string, achievementType domain.AchievementType, title, description string, metadata map[string]interface{}) (*domain.Achievement, error) {
	if !achievementType.Valid() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown achievement type %q", achievementType))
	}
	achievement := &domain.Achievement{
		UserID:      userID,
		Type:        achievementType,
		Title:       title,
		Description: description,
		EarnedAt:    s.now(),
		Metadata:    metadata,
	}
	if err := s.repo.CreateAchievement(ctx, achievement); err != nil {
		return nil, domain.NewInternalError("failed to save achievement", err)
	}

	monitoring.RecordAchievement(string(achievementType))
	logger.Get().Info("Achievement awarded",
		zap.String("userID", userID),
		zap.String("type", string(achievementType)),
		zap.String("achievementID", achievement.ID),
	)
	return achievement, nil
}

func (s *achievementServiceImpl) GetUserAchievements(ctx context.Context, userID string) ([]dto.AchievementResponse, error) {
	achievements, err := s.repo.GetAchievementsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get achievements", err)
	}
	out := make([]dto.AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, dto.NewAchievementResponse(a))
	}
	return out, nil
}

// awardLevelUp appends a level_up record when newLevel is above oldLevel.
func awardLevelUp(ctx context.Context, achievements AchievementService, userID string, oldLevel, newLevel int) error {
	if newLevel <= oldLevel {
		return nil
	}
	_, err := achievements.Award(ctx, userID, domain.AchievementLevelUp,
		"Level Up!",
		fmt.Sprintf("Reached level %d", newLevel),
		map[string]interface{}{"level": newLevel},
	)
	return err
}

// awardStreakMilestone appends a streak achievement when streak hits a milestone exactly.
func awardStreakMilestone(ctx context.Context, achievements AchievementService, userID string, streak int) error {
	achievementType, ok := streakMilestones[streak]
	if !ok {
		return nil
	}
	_, err := achievements.Award(ctx, userID, achievementType,
		fmt.Sprintf("%d-Day Streak", streak),
		fmt.Sprintf("Learned %d days in a row", streak),
		map[string]interface{}{"streak": streak},
	)
	return err
}
