package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuestionType is the presentation type of a quiz question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionTextInput      QuestionType = "text_input"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionTextInput:
		return true
	}
	return false
}

type answerKind uint8

const (
	answerUnset answerKind = iota
	answerText
	answerNumber
	answerBool
)

// AnswerValue is a JSON scalar answer: a string, a number or a boolean.
// Two values are equal only when both kind and value match exactly, so "5" never equals 5.
type AnswerValue struct {
	kind    answerKind
	text    string
	number  float64
	boolean bool
}

func TextAnswer(s string) AnswerValue    { return AnswerValue{kind: answerText, text: s} }
func NumberAnswer(n float64) AnswerValue { return AnswerValue{kind: answerNumber, number: n} }
func BoolAnswer(b bool) AnswerValue      { return AnswerValue{kind: answerBool, boolean: b} }

// IsZero reports whether no value was provided (absent or JSON null).
func (a AnswerValue) IsZero() bool {
	return a.kind == answerUnset
}

// Equal is strict equality: no trimming, no case folding, no cross-type coercion.
func (a AnswerValue) Equal(b AnswerValue) bool {
	if a.kind == answerUnset || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case answerText:
		return a.text == b.text
	case answerNumber:
		return a.number == b.number
	case answerBool:
		return a.boolean == b.boolean
	}
	return false
}

func (a AnswerValue) String() string {
	switch a.kind {
	case answerText:
		return a.text
	case answerNumber:
		return strconv.FormatFloat(a.number, 'f', -1, 64)
	case answerBool:
		return strconv.FormatBool(a.boolean)
	}
	return ""
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case answerText:
		return json.Marshal(a.text)
	case answerNumber:
		return json.Marshal(a.number)
	case answerBool:
		return json.Marshal(a.boolean)
	}
	return []byte("null"), nil
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*a = BoolAnswer(b)
	case '{', '[':
		return fmt.Errorf("answer must be a string, number or boolean, got %s", data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*a = NumberAnswer(n)
	}
	return nil
}

// Question is one question of a quiz.
type Question struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer AnswerValue  `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Points        int          `json:"points"`
}

// Quiz terminates a module. One quiz per module is expected but not enforced.
type Quiz struct {
	ID           string
	ModuleID     string
	Title        string
	Questions    []Question
	PassingScore int
	XPReward     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MaxScore is the sum of the points of all questions.
func (q *Quiz) MaxScore() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.ModuleID) == "" {
		errs = append(errs, NewMissingFieldError("moduleId"))
	}
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if len(q.Questions) == 0 {
		errs = append(errs, NewMissingFieldError("questions"))
	}
	if q.PassingScore < 0 {
		errs = append(errs, NewInvalidFormatError("passingScore", q.PassingScore))
	}
	if q.XPReward < 0 {
		errs = append(errs, NewInvalidFormatError("xpReward", q.XPReward))
	}
	seen := make(map[string]bool, len(q.Questions))
	for i, question := range q.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(question.ID) == "" {
			errs = append(errs, NewMissingFieldError(field+".id"))
		} else if seen[question.ID] {
			errs = append(errs, NewInvalidFormatError(field+".id", "duplicate "+question.ID))
		}
		seen[question.ID] = true
		if !question.Type.Valid() {
			errs = append(errs, NewInvalidValueError(field+".type", question.Type,
				string(QuestionMultipleChoice), string(QuestionTrueFalse), string(QuestionTextInput)))
		}
		if question.CorrectAnswer.IsZero() {
			errs = append(errs, NewMissingFieldError(field+".correctAnswer"))
		}
		if question.Points < 0 {
			errs = append(errs, NewInvalidFormatError(field+".points", question.Points))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmittedAnswer is the caller's answer to one question.
type SubmittedAnswer struct {
	QuestionID string      `json:"questionId"`
	UserAnswer AnswerValue `json:"userAnswer"`
}

// GradedAnswer is a submitted answer with its grade.
type GradedAnswer struct {
	QuestionID string      `json:"questionId"`
	UserAnswer AnswerValue `json:"userAnswer"`
	IsCorrect  bool        `json:"isCorrect"`
	Points     int         `json:"points"`
}

// QuizResult is the outcome of grading a submission.
type QuizResult struct {
	Passed        bool
	TotalScore    int
	MaxScore      int
	GradedAnswers []GradedAnswer
	XPEarned      int
}

// Perfect reports whether every available point was earned.
func (r QuizResult) Perfect() bool {
	return r.TotalScore == r.MaxScore
}

// GradeQuiz grades answers against quiz. It is a pure function of its inputs.
// Answers to unknown questions earn zero points; questions without an answer are simply
// absent from the graded list.
func GradeQuiz(quiz *Quiz, answers []SubmittedAnswer) QuizResult {
	byID := make(map[string]*Question, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if _, dup := byID[q.ID]; !dup {
			byID[q.ID] = q
		}
	}

	graded := make([]GradedAnswer, 0, len(answers))
	total := 0
	for _, answer := range answers {
		g := GradedAnswer{QuestionID: answer.QuestionID, UserAnswer: answer.UserAnswer}
		if question, ok := byID[answer.QuestionID]; ok && question.CorrectAnswer.Equal(answer.UserAnswer) {
			g.IsCorrect = true
			g.Points = question.Points
		}
		total += g.Points
		graded = append(graded, g)
	}

	result := QuizResult{
		Passed:        total >= quiz.PassingScore,
		TotalScore:    total,
		MaxScore:      quiz.MaxScore(),
		GradedAnswers: graded,
	}
	if result.Passed {
		result.XPEarned = quiz.XPReward
	}
	return result
}

// QuizAttempt is an append-only record of one submission.
type QuizAttempt struct {
	ID          string
	UserID      string
	QuizID      string
	Answers     []GradedAnswer
	TotalScore  int
	Passed      bool
	CompletedAt time.Time
}

// QuizRepository defines the interface for quiz persistence.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	GetQuizByModule(ctx context.Context, moduleID string) (*Quiz, error)
}

// QuizAttemptRepository defines the interface for quiz attempt persistence.
type QuizAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetAttemptsByUserAndQuiz(ctx context.Context, userID, quizID string) ([]*QuizAttempt, error)
}
