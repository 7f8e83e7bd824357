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
	quizColumns    = `id, module_id, title, questions, passing_score, xp_reward, created_at, updated_at`
	attemptColumns = `id, user_id, quiz_id, answers, total_score, passed, completed_at`
)

type sqlxQuizRepository struct {
	db DBTX
}

// NewSQLXQuizRepository creates a domain.QuizRepository backed by sqlx.
func NewSQLXQuizRepository(db DBTX) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	questions := m.Questions.V
	if questions == nil {
		questions = []domain.Question{}
	}
	return &domain.Quiz{
		ID:           m.ID,
		ModuleID:     m.ModuleID,
		Title:        m.Title,
		Questions:    questions,
		PassingScore: m.PassingScore,
		XPReward:     m.XPReward,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:           q.ID,
		ModuleID:     q.ModuleID,
		Title:        q.Title,
		Questions:    models.JSONColumn[[]domain.Question]{V: q.Questions},
		PassingScore: q.PassingScore,
		XPReward:     q.XPReward,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	query := `INSERT INTO quizzes (` + quizColumns + `)
	          VALUES (:id, :module_id, :title, :questions, :passing_score, :xp_reward, :created_at, :updated_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainQuiz(quiz)); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *sqlxQuizRepository) getOne(ctx context.Context, tail string, args ...interface{}) (*domain.Quiz, error) {
	ex := GetExecutor(ctx, r.db)
	var m models.Quiz
	if err := ex.GetContext(ctx, &m, ex.Rebind(`SELECT `+quizColumns+` FROM quizzes `+tail), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainQuiz(&m), nil
}

func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := r.getOne(ctx, `WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return quiz, nil
}

// GetQuizByModule returns the oldest quiz of the module.
func (r *sqlxQuizRepository) GetQuizByModule(ctx context.Context, moduleID string) (*domain.Quiz, error) {
	quiz, err := r.getOne(ctx, `WHERE module_id = ? ORDER BY created_at ASC, id ASC LIMIT 1`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by module: %w", err)
	}
	return quiz, nil
}

type sqlxQuizAttemptRepository struct {
	db DBTX
}

// NewSQLXQuizAttemptRepository creates a domain.QuizAttemptRepository backed by sqlx.
func NewSQLXQuizAttemptRepository(db DBTX) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainQuizAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	answers := m.Answers.V
	if answers == nil {
		answers = []domain.GradedAnswer{}
	}
	return &domain.QuizAttempt{
		ID:          m.ID,
		UserID:      m.UserID,
		QuizID:      m.QuizID,
		Answers:     answers,
		TotalScore:  m.TotalScore,
		Passed:      m.Passed,
		CompletedAt: m.CompletedAt,
	}
}

func fromDomainQuizAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	answers := a.Answers
	if answers == nil {
		answers = []domain.GradedAnswer{}
	}
	return &models.QuizAttempt{
		ID:          a.ID,
		UserID:      a.UserID,
		QuizID:      a.QuizID,
		Answers:     models.JSONColumn[[]domain.GradedAnswer]{V: answers},
		TotalScore:  a.TotalScore,
		Passed:      a.Passed,
		CompletedAt: a.CompletedAt,
	}
}

func (r *sqlxQuizAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	query := `INSERT INTO quiz_attempts (` + attemptColumns + `)
	          VALUES (:id, :user_id, :quiz_id, :answers, :total_score, :passed, :completed_at)`
	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainQuizAttempt(attempt)); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

// GetAttemptsByUserAndQuiz returns attempts newest first.
func (r *sqlxQuizAttemptRepository) GetAttemptsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]*domain.QuizAttempt, error) {
	ex := GetExecutor(ctx, r.db)
	var rows []models.QuizAttempt
	query := ex.Rebind(`SELECT ` + attemptColumns + ` FROM quiz_attempts WHERE user_id = ? AND quiz_id = ? ORDER BY completed_at DESC, id DESC`)
	if err := ex.SelectContext(ctx, &rows, query, userID, quizID); err != nil {
		return nil, fmt.Errorf("failed to get quiz attempts: %w", err)
	}
	attempts := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainQuizAttempt(&rows[i]))
	}
	return attempts, nil
}
