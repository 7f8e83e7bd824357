package domain

import (
	"context"
	"time"
)

// Progress is the completion record of one user for one lesson.
type Progress struct {
	ID          string
	UserID      string
	LessonID    string
	Completed   bool
	Score       int
	CompletedAt *time.Time
	Attempts    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProgress creates the first attempt record for (userID, lessonID).
func NewProgress(userID, lessonID string, completed bool, score int, now time.Time) *Progress {
	p := &Progress{
		UserID:    userID,
		LessonID:  lessonID,
		Completed: completed,
		Score:     score,
		Attempts:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if completed {
		p.CompletedAt = &now
	}
	return p
}

// RecordAttempt applies another attempt to an existing record. completed is overwritten,
// the best score is kept and the attempt counter is incremented.
func (p *Progress) RecordAttempt(completed bool, score int, now time.Time) {
	p.Completed = completed
	if score > p.Score {
		p.Score = score
	}
	if completed {
		p.CompletedAt = &now
	} else {
		p.CompletedAt = nil
	}
	p.Attempts++
	p.UpdatedAt = now
}

// ProgressRepository defines the interface for progress persistence.
type ProgressRepository interface {
	CreateProgress(ctx context.Context, progress *Progress) error
	UpdateProgress(ctx context.Context, progress *Progress) error
	GetProgress(ctx context.Context, userID, lessonID string) (*Progress, error)
	GetProgressByUser(ctx context.Context, userID string) ([]*Progress, error)
	GetCompletedProgressByUser(ctx context.Context, userID string) ([]*Progress, error)
}
