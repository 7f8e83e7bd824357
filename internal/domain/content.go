package domain

import (
	"context"
	"strings"
	"time"
)

// Difficulty of a lesson.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Module is an ordered grouping of lessons, optionally terminated by a quiz.
type Module struct {
	ID          string
	Title       string
	Description string
	Order       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewModule creates an active module.
func NewModule(title, description string, order int) *Module {
	now := time.Now()
	return &Module{
		Title:       title,
		Description: description,
		Order:       order,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (m *Module) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ValidationErrors{NewMissingFieldError("title")}
	}
	return nil
}

// LessonSection is one titled block of lesson text.
type LessonSection struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Code    string   `json:"code,omitempty"`
	Tips    []string `json:"tips,omitempty"`
}

// LessonContent is the structured body of a lesson.
type LessonContent struct {
	Introduction string          `json:"introduction"`
	Sections     []LessonSection `json:"sections"`
	KeyTakeaways []string        `json:"keyTakeaways"`
}

// Lesson belongs to a module and is ordered within it by Order.
type Lesson struct {
	ID         string
	ModuleID   string
	Title      string
	Order      int
	Content    LessonContent
	XPReward   int
	Difficulty Difficulty
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l *Lesson) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(l.ModuleID) == "" {
		errs = append(errs, NewMissingFieldError("moduleId"))
	}
	if strings.TrimSpace(l.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if !l.Difficulty.Valid() {
		errs = append(errs, NewInvalidValueError("difficulty", l.Difficulty,
			string(DifficultyBeginner), string(DifficultyIntermediate), string(DifficultyAdvanced)))
	}
	if l.XPReward < 0 {
		errs = append(errs, NewInvalidFormatError("xpReward", l.XPReward))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ModuleRepository defines the interface for module persistence.
type ModuleRepository interface {
	CreateModule(ctx context.Context, module *Module) error
	GetModuleByID(ctx context.Context, id string) (*Module, error)
	GetActiveModules(ctx context.Context) ([]*Module, error)
	// GetAllModules includes inactive modules.
	GetAllModules(ctx context.Context) ([]*Module, error)
	// GetNextModule returns the module with the smallest order strictly greater than order.
	GetNextModule(ctx context.Context, order int) (*Module, error)
}

// LessonRepository defines the interface for lesson persistence.
type LessonRepository interface {
	CreateLesson(ctx context.Context, lesson *Lesson) error
	GetLessonByID(ctx context.Context, id string) (*Lesson, error)
	// GetLessonsByModule returns lessons of a module in ascending order.
	GetLessonsByModule(ctx context.Context, moduleID string) ([]*Lesson, error)
	// GetNextLessonInModule returns the lesson with the smallest order strictly greater than order.
	GetNextLessonInModule(ctx context.Context, moduleID string, order int) (*Lesson, error)
	// GetFirstLessonInModule returns the lowest-order lesson of the module.
	GetFirstLessonInModule(ctx context.Context, moduleID string) (*Lesson, error)
}
