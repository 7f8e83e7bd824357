package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"skill-quest/internal/config"
	"skill-quest/internal/domain"
	"skill-quest/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory implementation of every repository port, used to
// exercise services end to end without a database.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*domain.User
	modules      map[string]*domain.Module
	lessons      map[string]*domain.Lesson
	progress     []*domain.Progress
	quizzes      []*domain.Quiz
	attempts     []*domain.QuizAttempt
	achievements []*domain.Achievement
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*domain.User{},
		modules: map[string]*domain.Module{},
		lessons: map[string]*domain.Lesson{},
	}
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// users

func (s *memStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *memStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.users[id]), nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (s *memStore) UpdateUserStats(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.NewUserNotFoundError(user.ID)
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *memStore) GetTopUsersByScore(_ context.Context, limit int) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, clone(u))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].TotalScore != all[j].TotalScore {
			return all[i].TotalScore > all[j].TotalScore
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// modules

func (s *memStore) CreateModule(_ context.Context, module *domain.Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if module.ID == "" {
		module.ID = util.NewULID()
	}
	s.modules[module.ID] = clone(module)
	return nil
}

func (s *memStore) GetModuleByID(_ context.Context, id string) (*domain.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.modules[id]), nil
}

func (s *memStore) sortedModules() []*domain.Module {
	all := make([]*domain.Module, 0, len(s.modules))
	for _, m := range s.modules {
		all = append(all, clone(m))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Order != all[j].Order {
			return all[i].Order < all[j].Order
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func (s *memStore) GetActiveModules(_ context.Context) ([]*domain.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Module
	for _, m := range s.sortedModules() {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) GetAllModules(_ context.Context) ([]*domain.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedModules(), nil
}

func (s *memStore) GetNextModule(_ context.Context, order int) (*domain.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.sortedModules() {
		if m.Order > order {
			return m, nil
		}
	}
	return nil, nil
}

// lessons

func (s *memStore) CreateLesson(_ context.Context, lesson *domain.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lesson.ID == "" {
		lesson.ID = util.NewULID()
	}
	s.lessons[lesson.ID] = clone(lesson)
	return nil
}

func (s *memStore) GetLessonByID(_ context.Context, id string) (*domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.lessons[id]), nil
}

func (s *memStore) lessonsOf(moduleID string) []*domain.Lesson {
	var out []*domain.Lesson
	for _, l := range s.lessons {
		if l.ModuleID == moduleID {
			out = append(out, clone(l))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memStore) GetLessonsByModule(_ context.Context, moduleID string) ([]*domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonsOf(moduleID), nil
}

func (s *memStore) GetNextLessonInModule(_ context.Context, moduleID string, order int) (*domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lessonsOf(moduleID) {
		if l.Order > order {
			return l, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetFirstLessonInModule(_ context.Context, moduleID string) (*domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lessons := s.lessonsOf(moduleID)
	if len(lessons) == 0 {
		return nil, nil
	}
	return lessons[0], nil
}

// progress

func (s *memStore) CreateProgress(_ context.Context, progress *domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress.ID == "" {
		progress.ID = util.NewULID()
	}
	s.progress = append(s.progress, clone(progress))
	return nil
}

func (s *memStore) UpdateProgress(_ context.Context, progress *domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.progress {
		if p.ID == progress.ID {
			s.progress[i] = clone(progress)
			return nil
		}
	}
	return domain.NewNotFoundError("progress not found")
}

func (s *memStore) GetProgress(_ context.Context, userID, lessonID string) (*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.progress {
		if p.UserID == userID && p.LessonID == lessonID {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (s *memStore) GetProgressByUser(_ context.Context, userID string) ([]*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Progress
	for _, p := range s.progress {
		if p.UserID == userID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s *memStore) GetCompletedProgressByUser(_ context.Context, userID string) ([]*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Progress
	for _, p := range s.progress {
		if p.UserID == userID && p.Completed {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

// quizzes and attempts

func (s *memStore) CreateQuiz(_ context.Context, quiz *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	s.quizzes = append(s.quizzes, clone(quiz))
	return nil
}

func (s *memStore) GetQuizByID(_ context.Context, id string) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quizzes {
		if q.ID == id {
			return clone(q), nil
		}
	}
	return nil, nil
}

func (s *memStore) GetQuizByModule(_ context.Context, moduleID string) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quizzes {
		if q.ModuleID == moduleID {
			return clone(q), nil
		}
	}
	return nil, nil
}

func (s *memStore) CreateAttempt(_ context.Context, attempt *domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	s.attempts = append(s.attempts, clone(attempt))
	return nil
}

func (s *memStore) GetAttemptsByUserAndQuiz(_ context.Context, userID, quizID string) ([]*domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.QuizAttempt
	for i := len(s.attempts) - 1; i >= 0; i-- {
		a := s.attempts[i]
		if a.UserID == userID && a.QuizID == quizID {
			out = append(out, clone(a))
		}
	}
	return out, nil
}

// achievements

func (s *memStore) CreateAchievement(_ context.Context, achievement *domain.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if achievement.ID == "" {
		achievement.ID = util.NewULID()
	}
	s.achievements = append(s.achievements, clone(achievement))
	return nil
}

func (s *memStore) GetAchievementsByUser(_ context.Context, userID string) ([]*domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Achievement
	for i := len(s.achievements) - 1; i >= 0; i-- {
		if a := s.achievements[i]; a.UserID == userID {
			out = append(out, clone(a))
		}
	}
	return out, nil
}

func (s *memStore) achievementsOfType(userID string, t domain.AchievementType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.achievements {
		if a.UserID == userID && a.Type == t {
			n++
		}
	}
	return n
}

// services wires every service on top of one memStore.
type services struct {
	store        *memStore
	users        UserService
	content      ContentService
	progress     ProgressService
	quizzes      QuizService
	achievements AchievementService
}

func newServices(cache domain.Cache) *services {
	store := newMemStore()
	cfg := testConfig()
	achievements := NewAchievementService(store)
	leaderboard := NewLeaderboard(store, cache, cfg)
	return &services{
		store:        store,
		users:        NewUserService(store, achievements, store, leaderboard, cfg),
		content:      NewContentService(store, store, cache, cfg),
		progress:     NewProgressService(store, store, store, achievements, store),
		achievements: achievements,
		quizzes: NewQuizService(QuizServiceDeps{
			QuizRepo:     store,
			AttemptRepo:  store,
			UserRepo:     store,
			ModuleRepo:   store,
			LessonRepo:   store,
			ProgressRepo: store,
			Achievements: achievements,
			TxManager:    store,
			Leaderboard:  leaderboard,
		}),
	}
}

var (
	_ domain.UserRepository        = (*memStore)(nil)
	_ domain.ModuleRepository      = (*memStore)(nil)
	_ domain.LessonRepository      = (*memStore)(nil)
	_ domain.ProgressRepository    = (*memStore)(nil)
	_ domain.QuizRepository        = (*memStore)(nil)
	_ domain.QuizAttemptRepository = (*memStore)(nil)
	_ domain.AchievementRepository = (*memStore)(nil)
	_ domain.TransactionManager    = (*memStore)(nil)
)

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", Timezone: "UTC"},
		CacheTTLs: config.CacheTTLConfig{Leaderboard: "1m", Lessons: "10m"},
	}
}

// requireCode asserts that err is a *domain.DomainError carrying code.
func requireCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
