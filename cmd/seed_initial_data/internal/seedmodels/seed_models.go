package seedmodels

import (
	"encoding/json"
	"fmt"
	"strings"

	"skill-quest/internal/domain"
)

// SeedLesson defines the structure for a lesson in the JSON seed file.
type SeedLesson struct {
	Title      string               `json:"title"`
	Order      int                  `json:"order"`
	Difficulty string               `json:"difficulty"`
	XPReward   int                  `json:"xp_reward"`
	Content    domain.LessonContent `json:"content"`
}

// SeedQuiz defines the structure for the quiz closing a module.
type SeedQuiz struct {
	Title        string            `json:"title"`
	PassingScore int               `json:"passing_score"`
	XPReward     int               `json:"xp_reward"`
	Questions    []domain.Question `json:"questions"`
}

// SeedModule defines the structure for a module in the JSON seed file.
type SeedModule struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Order       int          `json:"order"`
	Lessons     []SeedLesson `json:"lessons"`
	Quiz        *SeedQuiz    `json:"quiz,omitempty"`
}

// Parse decodes a seed file and checks module titles are unique.
func Parse(data []byte) ([]SeedModule, error) {
	var modules []SeedModule
	if err := json.Unmarshal(data, &modules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		key := strings.ToLower(strings.TrimSpace(m.Title))
		if key == "" {
			return nil, fmt.Errorf("seed module without title")
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate seed module %q", m.Title)
		}
		seen[key] = true
	}
	return modules, nil
}
