package dto

import (
	"time"

	"skill-quest/internal/domain"
)

// CreateProgressRequest is the body of POST /progress.
// @Description One completion attempt for a lesson
type CreateProgressRequest struct {
	UserID    string `json:"userId"`
	LessonID  string `json:"lessonId"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
}

// ProgressResponse represents a lesson progress record.
// @Description Progress record
type ProgressResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	LessonID    string     `json:"lessonId"`
	Completed   bool       `json:"completed"`
	Score       int        `json:"score"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Attempts    int        `json:"attempts"`
}

func NewProgressResponse(p *domain.Progress) *ProgressResponse {
	if p == nil {
		return nil
	}
	return &ProgressResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		LessonID:    p.LessonID,
		Completed:   p.Completed,
		Score:       p.Score,
		CompletedAt: p.CompletedAt,
		Attempts:    p.Attempts,
	}
}
