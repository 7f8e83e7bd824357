package models

import "time"

// User is a row of the users table.
type User struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	Name           string    `db:"name"`
	TotalScore     int64     `db:"total_score"`
	Level          int       `db:"level"`
	CurrentStreak  int       `db:"current_streak"`
	LongestStreak  int       `db:"longest_streak"`
	LastActiveDate string    `db:"last_active_date"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Achievement is a row of the achievements table.
type Achievement struct {
	ID          string                             `db:"id"`
	UserID      string                             `db:"user_id"`
	Type        string                             `db:"type"`
	Title       string                             `db:"title"`
	Description string                             `db:"description"`
	EarnedAt    time.Time                          `db:"earned_at"`
	Metadata    JSONColumn[map[string]interface{}] `db:"metadata"`
}
