package dto

import (
	"time"

	"skill-quest/internal/domain"
)

// CreateQuizRequest is the full quiz shape accepted by POST /quizzes.
// @Description Request body for creating a quiz
type CreateQuizRequest struct {
	ModuleID     string            `json:"moduleId"`
	Title        string            `json:"title"`
	Questions    []domain.Question `json:"questions"`
	PassingScore int               `json:"passingScore"`
	XPReward     int               `json:"xpReward"`
}

// QuizResponse represents a quiz in API responses.
// @Description Quiz information
type QuizResponse struct {
	ID           string            `json:"id"`
	ModuleID     string            `json:"moduleId"`
	Title        string            `json:"title"`
	Questions    []domain.Question `json:"questions"`
	PassingScore int               `json:"passingScore"`
	XPReward     int               `json:"xpReward"`
	MaxScore     int               `json:"maxScore"`
}

func NewQuizResponse(q *domain.Quiz) *QuizResponse {
	if q == nil {
		return nil
	}
	return &QuizResponse{
		ID:           q.ID,
		ModuleID:     q.ModuleID,
		Title:        q.Title,
		Questions:    q.Questions,
		PassingScore: q.PassingScore,
		XPReward:     q.XPReward,
		MaxScore:     q.MaxScore(),
	}
}

// SubmitQuizRequest is the body of POST /quizzes/:id/submit.
// @Description Ordered answers of one submission
type SubmitQuizRequest struct {
	Answers []domain.SubmittedAnswer `json:"answers"`
}

// QuizResultResponse is the graded outcome of a submission.
// @Description Quiz grading result
type QuizResultResponse struct {
	Passed        bool                  `json:"passed"`
	TotalScore    int                   `json:"totalScore"`
	MaxScore      int                   `json:"maxScore"`
	GradedAnswers []domain.GradedAnswer `json:"gradedAnswers"`
	XPEarned      int                   `json:"xpEarned"`
}

func NewQuizResultResponse(r domain.QuizResult) *QuizResultResponse {
	graded := r.GradedAnswers
	if graded == nil {
		graded = []domain.GradedAnswer{}
	}
	return &QuizResultResponse{
		Passed:        r.Passed,
		TotalScore:    r.TotalScore,
		MaxScore:      r.MaxScore,
		GradedAnswers: graded,
		XPEarned:      r.XPEarned,
	}
}

// QuizAttemptResponse is one stored submission.
// @Description Quiz attempt record
type QuizAttemptResponse struct {
	ID          string                `json:"id"`
	QuizID      string                `json:"quizId"`
	Answers     []domain.GradedAnswer `json:"answers"`
	TotalScore  int                   `json:"totalScore"`
	Passed      bool                  `json:"passed"`
	CompletedAt time.Time             `json:"completedAt"`
}

func NewQuizAttemptResponse(a *domain.QuizAttempt) QuizAttemptResponse {
	return QuizAttemptResponse{
		ID:          a.ID,
		QuizID:      a.QuizID,
		Answers:     a.Answers,
		TotalScore:  a.TotalScore,
		Passed:      a.Passed,
		CompletedAt: a.CompletedAt,
	}
}
