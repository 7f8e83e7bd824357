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

const progressColumns = `id, user_id, lesson_id, completed, score, completed_at, attempts, created_at, updated_at`

type sqlxProgressRepository struct {
	db DBTX
}

// NewSQLXProgressRepository creates a domain.ProgressRepository backed by sqlx.
func NewSQLXProgressRepository(db DBTX) domain.ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

func toDomainProgress(m *models.Progress) *domain.Progress {
	if m == nil {
		return nil
	}
	p := &domain.Progress{
		ID:        m.ID,
		UserID:    m.UserID,
		LessonID:  m.LessonID,
		Completed: m.Completed,
		Score:     m.Score,
		Attempts:  m.Attempts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.CompletedAt.Valid {
		completedAt := m.CompletedAt.Time
		p.CompletedAt = &completedAt
	}
	return p
}

func fromDomainProgress(p *domain.Progress) *models.Progress {
	if p == nil {
		return nil
	}
	m := &models.Progress{
		ID:        p.ID,
		UserID:    p.UserID,
		LessonID:  p.LessonID,
		Completed: p.Completed,
		Score:     p.Score,
		Attempts:  p.Attempts,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CompletedAt != nil {
		m.CompletedAt = util.TimeToNullTime(*p.CompletedAt)
	}
	return m
}

func (r *sqlxProgressRepository) CreateProgress(ctx context.Context, progress *domain.Progress) error {
	if progress.ID == "" {
		progress.ID = util.NewULID()
	}
	query := `INSERT INTO progress (` + progressColumns + `)
	          VALUES (:id, :user_id, :lesson_id, :completed, :score, :completed_at, :attempts, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainProgress(progress)); err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}

func (r *sqlxProgressRepository) UpdateProgress(ctx context.Context, progress *domain.Progress) error {
	query := `UPDATE progress SET
	            completed = :completed,
	            score = :score,
	            completed_at = :completed_at,
	            attempts = :attempts,
	            updated_at = :updated_at
	          WHERE id = :id`
	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainProgress(progress))
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("progress %s not found", progress.ID))
	}
	return nil
}

// GetProgress returns the record for (userID, lessonID), or (nil, nil).
func (r *sqlxProgressRepository) GetProgress(ctx context.Context, userID, lessonID string) (*domain.Progress, error) {
	ex := GetExecutor(ctx, r.db)
	var m models.Progress
	query := ex.Rebind(`SELECT ` + progressColumns + ` FROM progress WHERE user_id = ? AND lesson_id = ? ORDER BY created_at ASC, id ASC LIMIT 1`)
	if err := ex.GetContext(ctx, &m, query, userID, lessonID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return toDomainProgress(&m), nil
}

func (r *sqlxProgressRepository) selectMany(ctx context.Context, where string, args ...interface{}) ([]*domain.Progress, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.Progress
	query := ex.Rebind(`SELECT ` + progressColumns + ` FROM progress WHERE ` + where + ` ORDER BY created_at ASC, id ASC`)
	if err := ex.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]*domain.Progress, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainProgress(&rows[i]))
	}
	return out, nil
}

func (r *sqlxProgressRepository) GetProgressByUser(ctx context.Context, userID string) ([]*domain.Progress, error) {
	out, err := r.selectMany(ctx, `user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress by user: %w", err)
	}
	return out, nil
}

// GetCompletedProgressByUser returns only records whose completed flag is set.
func (r *sqlxProgressRepository) GetCompletedProgressByUser(ctx context.Context, userID string) ([]*domain.Progress, error) {
	out, err := r.selectMany(ctx, `user_id = ? AND completed = ?`, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed progress by user: %w", err)
	}
	return out, nil
}
