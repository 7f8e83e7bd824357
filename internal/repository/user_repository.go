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

const userColumns = `id, email, name, total_score, level, current_streak, longest_streak, last_active_date, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db DBTX
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db DBTX) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:             m.ID,
		Email:          m.Email,
		Name:           m.Name,
		TotalScore:     m.TotalScore,
		Level:          m.Level,
		CurrentStreak:  m.CurrentStreak,
		LongestStreak:  m.LongestStreak,
		LastActiveDate: m.LastActiveDate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		TotalScore:     u.TotalScore,
		Level:          u.Level,
		CurrentStreak:  u.CurrentStreak,
		LongestStreak:  u.LongestStreak,
		LastActiveDate: u.LastActiveDate,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// CreateUser inserts a new user. An empty ID is filled with a fresh ULID.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	query := `INSERT INTO users (` + userColumns + `)
	          VALUES (:id, :email, :name, :total_score, :level, :current_streak, :longest_streak, :last_active_date, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	ex := GetExecutor(ctx, r.db)
	var m models.User
	query := ex.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + where)
	if err := ex.GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by ID. A missing user yields (nil, nil).
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := r.getOne(ctx, "id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. A missing user yields (nil, nil).
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.getOne(ctx, "email = ?", email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateUserStats persists the gamification fields of user.
func (r *sqlxUserRepository) UpdateUserStats(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
	            total_score = :total_score,
	            level = :level,
	            current_streak = :current_streak,
	            longest_streak = :longest_streak,
	            last_active_date = :last_active_date,
	            updated_at = :updated_at
	          WHERE id = :id`

	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user))
	if err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(user.ID)
	}
	return nil
}

// GetTopUsersByScore returns up to limit users ordered by total score, highest first.
func (r *sqlxUserRepository) GetTopUsersByScore(ctx context.Context, limit int) ([]*domain.User, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.User
	query := ex.Rebind(`SELECT ` + userColumns + ` FROM users ORDER BY total_score DESC, created_at ASC, id ASC LIMIT ?`)
	if err := ex.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, toDomainUser(&rows[i]))
	}
	return users, nil
}
