package models

import (
	"database/sql"
	"time"

	"skill-quest/internal/domain"
)

// Quiz is a row of the quizzes table. Questions are stored as a JSON document.
type Quiz struct {
	ID           string                        `db:"id"`
	ModuleID     string                        `db:"module_id"`
	Title        string                        `db:"title"`
	Questions    JSONColumn[[]domain.Question] `db:"questions"`
	PassingScore int                           `db:"passing_score"`
	XPReward     int                           `db:"xp_reward"`
	CreatedAt    time.Time                     `db:"created_at"`
	UpdatedAt    time.Time                     `db:"updated_at"`
}

// QuizAttempt is a row of the quiz_attempts table.
type QuizAttempt struct {
	ID          string                            `db:"id"`
	UserID      string                            `db:"user_id"`
	QuizID      string                            `db:"quiz_id"`
	Answers     JSONColumn[[]domain.GradedAnswer] `db:"answers"`
	TotalScore  int                               `db:"total_score"`
	Passed      bool                              `db:"passed"`
	CompletedAt time.Time                         `db:"completed_at"`
}

// Progress is a row of the progress table.
type Progress struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	LessonID    string       `db:"lesson_id"`
	Completed   bool         `db:"completed"`
	Score       int          `db:"score"`
	CompletedAt sql.NullTime `db:"completed_at"`
	Attempts    int          `db:"attempts"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}
