package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skill-quest/internal/domain"
	"skill-quest/internal/repository/models"
	"skill-quest/internal/util"
)

const (
	moduleColumns = `id, title, description, sort_order, is_active, created_at, updated_at`
	lessonColumns = `id, module_id, title, sort_order, content, xp_reward, difficulty, created_at, updated_at`
)

type sqlxModuleRepository struct {
	db DBTX
}

// NewSQLXModuleRepository creates a domain.ModuleRepository backed by sqlx.
func NewSQLXModuleRepository(db DBTX) domain.ModuleRepository {
	return &sqlxModuleRepository{db: db}
}

func toDomainModule(m *models.Module) *domain.Module {
	if m == nil {
		return nil
	}
	return &domain.Module{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Order:       m.SortOrder,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainModule(m *domain.Module) *models.Module {
	if m == nil {
		return nil
	}
	return &models.Module{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		SortOrder:   m.Order,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *sqlxModuleRepository) CreateModule(ctx context.Context, module *domain.Module) error {
	if module.ID == "" {
		module.ID = util.NewULID()
	}
	query := `INSERT INTO modules (` + moduleColumns + `)
	          VALUES (:id, :title, :description, :sort_order, :is_active, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainModule(module)); err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

func (r *sqlxModuleRepository) getOne(ctx context.Context, tail string, args ...interface{}) (*domain.Module, error) {
	ex := GetExecutor(ctx, r.db)
	var m models.Module
	if err := ex.GetContext(ctx, &m, ex.Rebind(`SELECT `+moduleColumns+` FROM modules `+tail), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModule(&m), nil
}

func (r *sqlxModuleRepository) GetModuleByID(ctx context.Context, id string) (*domain.Module, error) {
	module, err := r.getOne(ctx, `WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get module by id: %w", err)
	}
	return module, nil
}

// GetActiveModules returns active modules ordered by sort order.
func (r *sqlxModuleRepository) GetActiveModules(ctx context.Context) ([]*domain.Module, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.Module
	query := ex.Rebind(`SELECT ` + moduleColumns + ` FROM modules WHERE is_active = ? ORDER BY sort_order ASC, id ASC`)
	if err := ex.SelectContext(ctx, &rows, query, true); err != nil {
		return nil, fmt.Errorf("failed to get active modules: %w", err)
	}
	modules := make([]*domain.Module, 0, len(rows))
	for i := range rows {
		modules = append(modules, toDomainModule(&rows[i]))
	}
	return modules, nil
}

// GetAllModules returns every module, active or not, ordered by sort order.
func (r *sqlxModuleRepository) GetAllModules(ctx context.Context) ([]*domain.Module, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.Module
	if err := ex.SelectContext(ctx, &rows, `SELECT `+moduleColumns+` FROM modules ORDER BY sort_order ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}
	modules := make([]*domain.Module, 0, len(rows))
	for i := range rows {
		modules = append(modules, toDomainModule(&rows[i]))
	}
	return modules, nil
}

func (r *sqlxModuleRepository) GetNextModule(ctx context.Context, order int) (*domain.Module, error) {
	module, err := r.getOne(ctx, `WHERE sort_order > ? ORDER BY sort_order ASC, id ASC LIMIT 1`, order)
	if err != nil {
		return nil, fmt.Errorf("failed to get next module: %w", err)
	}
	return module, nil
}

type sqlxLessonRepository struct {
	db DBTX
}

// NewSQLXLessonRepository creates a domain.LessonRepository backed by sqlx.
func NewSQLXLessonRepository(db DBTX) domain.LessonRepository {
	return &sqlxLessonRepository{db: db}
}

func toDomainLesson(m *models.Lesson) *domain.Lesson {
	if m == nil {
		return nil
	}
	return &domain.Lesson{
		ID:         m.ID,
		ModuleID:   m.ModuleID,
		Title:      m.Title,
		Order:      m.SortOrder,
		Content:    m.Content.V,
		XPReward:   m.XPReward,
		Difficulty: domain.Difficulty(m.Difficulty),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func fromDomainLesson(l *domain.Lesson) *models.Lesson {
	if l == nil {
		return nil
	}
	return &models.Lesson{
		ID:         l.ID,
		ModuleID:   l.ModuleID,
		Title:      l.Title,
		SortOrder:  l.Order,
		Content:    models.JSONColumn[domain.LessonContent]{V: l.Content},
		XPReward:   l.XPReward,
		Difficulty: string(l.Difficulty),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func (r *sqlxLessonRepository) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = util.NewULID()
	}
	query := `INSERT INTO lessons (` + lessonColumns + `)
	          VALUES (:id, :module_id, :title, :sort_order, :content, :xp_reward, :difficulty, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainLesson(lesson)); err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (r *sqlxLessonRepository) getOne(ctx context.Context, tail string, args ...interface{}) (*domain.Lesson, error) {
	ex := GetExecutor(ctx, r.db)
	var m models.Lesson
	if err := ex.GetContext(ctx, &m, ex.Rebind(`SELECT `+lessonColumns+` FROM lessons `+tail), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainLesson(&m), nil
}

func (r *sqlxLessonRepository) GetLessonByID(ctx context.Context, id string) (*domain.Lesson, error) {
	lesson, err := r.getOne(ctx, `WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}
	return lesson, nil
}

func (r *sqlxLessonRepository) GetLessonsByModule(ctx context.Context, moduleID string) ([]*domain.Lesson, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.Lesson
	query := ex.Rebind(`SELECT ` + lessonColumns + ` FROM lessons WHERE module_id = ? ORDER BY sort_order ASC, id ASC`)
	if err := ex.SelectContext(ctx, &rows, query, moduleID); err != nil {
		return nil, fmt.Errorf("failed to get lessons by module: %w", err)
	}
	lessons := make([]*domain.Lesson, 0, len(rows))
	for i := range rows {
		lessons = append(lessons, toDomainLesson(&rows[i]))
	}
	return lessons, nil
}

func (r *sqlxLessonRepository) GetNextLessonInModule(ctx context.Context, moduleID string, order int) (*domain.Lesson, error) {
	lesson, err := r.getOne(ctx, `WHERE module_id = ? AND sort_order > ? ORDER BY sort_order ASC, id ASC LIMIT 1`, moduleID, order)
	if err != nil {
		return nil, fmt.Errorf("failed to get next lesson: %w", err)
	}
	return lesson, nil
}

func (r *sqlxLessonRepository) GetFirstLessonInModule(ctx context.Context, moduleID string) (*domain.Lesson, error) {
	lesson, err := r.getOne(ctx, `WHERE module_id = ? ORDER BY sort_order ASC, id ASC LIMIT 1`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get first lesson: %w", err)
	}
	return lesson, nil
}
