package repository

import (
	"context"
	"fmt"

	"skill-quest/internal/domain"
	"skill-quest/internal/repository/models"
	"skill-quest/internal/util"
)

const achievementColumns = `id, user_id, type, title, description, earned_at, metadata`

type sqlxAchievementRepository struct {
	db DBTX
}

// NewSQLXAchievementRepository creates a domain.AchievementRepository backed by sqlx.
func NewSQLXAchievementRepository(db DBTX) domain.AchievementRepository {
	return &sqlxAchievementRepository{db: db}
}

func toDomainAchievement(m *models.Achievement) *domain.Achievement {
	if m == nil {
		return nil
	}
	return &domain.Achievement{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        domain.AchievementType(m.Type),
		Title:       m.Title,
		Description: m.Description,
		EarnedAt:    m.EarnedAt,
		Metadata:    m.Metadata.V,
	}
}

func fromDomainAchievement(a *domain.Achievement) *models.Achievement {
	if a == nil {
		return nil
	}
	return &models.Achievement{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        string(a.Type),
		Title:       a.Title,
		Description: a.Description,
		EarnedAt:    a.EarnedAt,
		Metadata:    models.JSONColumn[map[string]interface{}]{V: a.Metadata},
	}
}

func (r *sqlxAchievementRepository) CreateAchievement(ctx context.Context, achievement *domain.Achievement) error {
	if achievement.ID == "" {
		achievement.ID = util.NewULID()
	}
	query := `INSERT INTO achievements (` + achievementColumns + `)
	          VALUES (:id, :user_id, :type, :title, :description, :earned_at, :metadata)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainAchievement(achievement)); err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}
	return nil
}

// GetAchievementsByUser returns achievements newest first.
func (r *sqlxAchievementRepository) GetAchievementsByUser(ctx context.Context, userID string) ([]*domain.Achievement, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.Achievement
	query := ex.Rebind(`SELECT ` + achievementColumns + ` FROM achievements WHERE user_id = ? ORDER BY earned_at DESC, id DESC`)
	if err := ex.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	out := make([]*domain.Achievement, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainAchievement(&rows[i]))
	}
	return out, nil
}
