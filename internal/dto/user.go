package dto

import (
	"time"

	"skill-quest/internal/domain"
)

// IDResponse carries the id of a created or upserted record.
// @Description Identifier of the affected record
type IDResponse struct {
	ID string `json:"id"`
}

// CreateUserRequest is the body of POST /users.
// @Description Request body for creating a user
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UpdateUserProgressRequest is the body of POST /users/:id/progress.
// @Description XP delta and optional streak increment
type UpdateUserProgressRequest struct {
	XPGained     int64 `json:"xpGained"`
	StreakUpdate bool  `json:"streakUpdate"`
}

// UserResponse represents a learner in API responses.
// @Description User information
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	TotalScore     int64     `json:"totalScore"`
	Level          int       `json:"level"`
	CurrentStreak  int       `json:"currentStreak"`
	LongestStreak  int       `json:"longestStreak"`
	LastActiveDate string    `json:"lastActiveDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		TotalScore:     u.TotalScore,
		Level:          u.Level,
		CurrentStreak:  u.CurrentStreak,
		LongestStreak:  u.LongestStreak,
		LastActiveDate: u.LastActiveDate,
		CreatedAt:      u.CreatedAt,
	}
}

// AchievementResponse represents an awarded achievement.
// @Description Achievement record
type AchievementResponse struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"userId"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	EarnedAt    time.Time              `json:"earnedAt"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func NewAchievementResponse(a *domain.Achievement) AchievementResponse {
	return AchievementResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        string(a.Type),
		Title:       a.Title,
		Description: a.Description,
		EarnedAt:    a.EarnedAt,
		Metadata:    a.Metadata,
	}
}
