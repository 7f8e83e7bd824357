package domain

import (
	"context"
	"strings"
	"time"
)

const (
	// XPPerLevel is the flat number of XP needed for each level.
	XPPerLevel = 1000

	// LastActiveDateLayout is the date-only layout used for User.LastActiveDate.
	LastActiveDateLayout = "2006-01-02"

	// LeaderboardSize is the number of users returned by the leaderboard.
	LeaderboardSize = 10
)

// User represents a learner.
type User struct {
	ID             string
	Email          string
	Name           string
	TotalScore     int64
	Level          int
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates a new User starting at level 1 with no XP or streak.
// lastActiveDate is the caller's current date, see FormatActiveDate.
func NewUser(email, name, lastActiveDate string) *User {
	now := time.Now()
	return &User{
		Email:          email,
		Name:           name,
		TotalScore:     0,
		Level:          1,
		LastActiveDate: lastActiveDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, NewMissingFieldError("email"))
	} else if !strings.Contains(u.Email, "@") {
		errs = append(errs, NewInvalidFormatError("email", u.Email))
	}
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LevelForScore returns the 1-indexed level for a total score: floor(total/1000)+1.
// Negative totals are clamped to level 1.
func LevelForScore(totalScore int64) int {
	if totalScore < 0 {
		return 1
	}
	return int(totalScore/XPPerLevel) + 1
}

// AddXP adds xp to the total score and recomputes the level.
func (u *User) AddXP(xp int64) {
	u.TotalScore += xp
	u.Level = LevelForScore(u.TotalScore)
}

// IncrementStreak bumps the current streak, keeps the longest streak in sync and
// stamps the active date. No gap detection is done: the streak only ever grows.
func (u *User) IncrementStreak(today string) {
	u.CurrentStreak++
	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
	u.LastActiveDate = today
}

// FormatActiveDate truncates t to a date string in loc.
func FormatActiveDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(LastActiveDateLayout)
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUserStats(ctx context.Context, user *User) error
	GetTopUsersByScore(ctx context.Context, limit int) ([]*User, error)
}
