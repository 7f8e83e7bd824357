package models

import (
	"time"

	"skill-quest/internal/domain"
)

// Module is a row of the modules table.
type Module struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	SortOrder   int       `db:"sort_order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Lesson is a row of the lessons table.
type Lesson struct {
	ID         string                           `db:"id"`
	ModuleID   string                           `db:"module_id"`
	Title      string                           `db:"title"`
	SortOrder  int                              `db:"sort_order"`
	Content    JSONColumn[domain.LessonContent] `db:"content"`
	XPReward   int                              `db:"xp_reward"`
	Difficulty string                           `db:"difficulty"`
	CreatedAt  time.Time                        `db:"created_at"`
	UpdatedAt  time.Time                        `db:"updated_at"`
}
