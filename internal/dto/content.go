package dto

import (
	"time"

	"skill-quest/internal/domain"
)

// CreateModuleRequest is the body of POST /modules. IsActive defaults to true.
// @Description Request body for creating a module
type CreateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// ModuleResponse represents a module in API responses.
// @Description Module information
type ModuleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewModuleResponse(m *domain.Module) *ModuleResponse {
	if m == nil {
		return nil
	}
	return &ModuleResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Order:       m.Order,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// CreateLessonRequest is the full lesson shape accepted by POST /lessons.
// @Description Request body for creating a lesson
type CreateLessonRequest struct {
	ModuleID   string               `json:"moduleId"`
	Title      string               `json:"title"`
	Order      int                  `json:"order"`
	Content    domain.LessonContent `json:"content"`
	XPReward   int                  `json:"xpReward"`
	Difficulty string               `json:"difficulty"`
}

// LessonResponse represents a lesson in API responses.
// @Description Lesson information
type LessonResponse struct {
	ID         string               `json:"id"`
	ModuleID   string               `json:"moduleId"`
	Title      string               `json:"title"`
	Order      int                  `json:"order"`
	Content    domain.LessonContent `json:"content"`
	XPReward   int                  `json:"xpReward"`
	Difficulty string               `json:"difficulty"`
	CreatedAt  time.Time            `json:"createdAt"`
}

func NewLessonResponse(l *domain.Lesson) *LessonResponse {
	if l == nil {
		return nil
	}
	return &LessonResponse{
		ID:         l.ID,
		ModuleID:   l.ModuleID,
		Title:      l.Title,
		Order:      l.Order,
		Content:    l.Content,
		XPReward:   l.XPReward,
		Difficulty: string(l.Difficulty),
		CreatedAt:  l.CreatedAt,
	}
}
