package domain

import (
	"context"
	"time"
)

// AchievementType identifies the milestone an achievement was awarded for.
type AchievementType string

const (
	AchievementFirstLesson    AchievementType = "first_lesson"
	AchievementStreak3        AchievementType = "streak_3"
	AchievementStreak7        AchievementType = "streak_7"
	AchievementStreak30       AchievementType = "streak_30"
	AchievementModuleComplete AchievementType = "module_complete"
	AchievementPerfectQuiz    AchievementType = "perfect_quiz"
	AchievementLevelUp        AchievementType = "level_up"
)

func (t AchievementType) Valid() bool {
	switch t {
	case AchievementFirstLesson, AchievementStreak3, AchievementStreak7, AchievementStreak30,
		AchievementModuleComplete, AchievementPerfectQuiz, AchievementLevelUp:
		return true
	}
	return false
}

// Achievement is an append-only award record. Duplicates for the same milestone are possible.
type Achievement struct {
	ID          string
	UserID      string
	Type        AchievementType
	Title       string
	Description string
	EarnedAt    time.Time
	Metadata    map[string]interface{}
}

// AchievementRepository defines the interface for achievement persistence.
type AchievementRepository interface {
	CreateAchievement(ctx context.Context, achievement *Achievement) error
	GetAchievementsByUser(ctx context.Context, userID string) ([]*Achievement, error)
}
