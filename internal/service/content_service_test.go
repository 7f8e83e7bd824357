package service

import (
	"context"
	"encoding/json"
	"testing"

	"skill-quest/internal/cache"
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestModule(t *testing.T, svc *services, title string, order int) string {
	t.Helper()
	resp, err := svc.content.CreateModule(context.Background(), dto.CreateModuleRequest{Title: title, Order: order})
	require.NoError(t, err)
	return resp.ID
}

func createTestLesson(t *testing.T, svc *services, moduleID, title string, order int) string {
	t.Helper()
	resp, err := svc.content.CreateLesson(context.Background(), dto.CreateLessonRequest{
		ModuleID:   moduleID,
		Title:      title,
		Order:      order,
		XPReward:   50,
		Difficulty: string(domain.DifficultyBeginner),
		Content: domain.LessonContent{
			Introduction: "Intro to " + title,
			Sections:     []domain.LessonSection{{Title: "Basics", Content: "Text"}},
		},
	})
	require.NoError(t, err)
	return resp.ID
}

func TestContentService_GetModules(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)

	second := createTestModule(t, svc, "Prompt Engineering", 2)
	first := createTestModule(t, svc, "AI Fundamentals", 1)
	inactive := false
	_, err := svc.content.CreateModule(ctx, dto.CreateModuleRequest{Title: "Draft", Order: 0, IsActive: &inactive})
	require.NoError(t, err)

	modules, err := svc.content.GetModules(ctx)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, first, modules[0].ID)
	assert.Equal(t, second, modules[1].ID)
	assert.True(t, modules[0].IsActive)
}

func TestContentService_GetAllModules(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)

	active := createTestModule(t, svc, "AI Fundamentals", 1)
	inactive := false
	draft, err := svc.content.CreateModule(ctx, dto.CreateModuleRequest{Title: "Draft", Order: 2, IsActive: &inactive})
	require.NoError(t, err)

	modules, err := svc.content.GetAllModules(ctx)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, active, modules[0].ID)
	assert.Equal(t, draft.ID, modules[1].ID)
	assert.False(t, modules[1].IsActive)
}

func TestContentService_CreateModule_Validation(t *testing.T) {
	svc := newServices(nil)
	_, err := svc.content.CreateModule(context.Background(), dto.CreateModuleRequest{Title: "  "})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "title", verrs[0].Field)
}

func TestContentService_CreateLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownModule", func(t *testing.T) {
		svc := newServices(nil)
		_, err := svc.content.CreateLesson(ctx, dto.CreateLessonRequest{
			ModuleID:   "missing",
			Title:      "Orphan",
			Difficulty: "beginner",
		})
		requireCode(t, err, domain.CodeModuleNotFound)
	})

	t.Run("InvalidDifficulty", func(t *testing.T) {
		svc := newServices(nil)
		moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
		_, err := svc.content.CreateLesson(ctx, dto.CreateLessonRequest{
			ModuleID:   moduleID,
			Title:      "What is AI?",
			Difficulty: "expert",
		})
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "difficulty", verrs[0].Field)
	})

	t.Run("NilContentSlicesAreNormalized", func(t *testing.T) {
		svc := newServices(nil)
		moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
		resp, err := svc.content.CreateLesson(ctx, dto.CreateLessonRequest{
			ModuleID:   moduleID,
			Title:      "What is AI?",
			Difficulty: "beginner",
		})
		require.NoError(t, err)

		lesson, err := svc.content.GetLessonByID(ctx, resp.ID)
		require.NoError(t, err)
		require.NotNil(t, lesson)
		assert.NotNil(t, lesson.Content.Sections)
		assert.NotNil(t, lesson.Content.KeyTakeaways)
	})
}

func TestContentService_GetLessonsByModule(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)
	moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
	l2 := createTestLesson(t, svc, moduleID, "Neural Networks", 2)
	l1 := createTestLesson(t, svc, moduleID, "What is AI?", 1)

	lessons, err := svc.content.GetLessonsByModule(ctx, moduleID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, l1, lessons[0].ID)
	assert.Equal(t, l2, lessons[1].ID)

	empty, err := svc.content.GetLessonsByModule(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestContentService_GetLessonsByModule_CacheHit(t *testing.T) {
	mockCache := new(MockCache)
	store := newMemStore()
	svc := NewContentService(store, store, mockCache, testConfig())

	cached, err := json.Marshal([]dto.LessonResponse{{ID: "l1", ModuleID: "m1", Title: "Cached"}})
	require.NoError(t, err)
	mockCache.On("Get", mock.Anything, cache.ModuleLessonsKey("m1")).Return(string(cached), nil).Once()

	lessons, err := svc.GetLessonsByModule(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Cached", lessons[0].Title)
	mockCache.AssertExpectations(t)
}

func TestContentService_CreateLesson_InvalidatesModuleLessons(t *testing.T) {
	ctx := context.Background()
	mockCache := new(MockCache)
	store := newMemStore()
	svc := NewContentService(store, store, mockCache, testConfig())

	mockCache.On("Delete", mock.Anything, []string{cache.ActiveModulesKey()}).Return(nil).Once()
	module, err := svc.CreateModule(ctx, dto.CreateModuleRequest{Title: "AI Fundamentals", Order: 1})
	require.NoError(t, err)

	mockCache.On("Delete", mock.Anything, []string{cache.ModuleLessonsKey(module.ID)}).Return(nil).Once()
	_, err = svc.CreateLesson(ctx, dto.CreateLessonRequest{ModuleID: module.ID, Title: "What is AI?", Difficulty: "beginner"})
	require.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestContentService_GetNextLesson(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)

	modA := createTestModule(t, svc, "AI Fundamentals", 1)
	modB := createTestModule(t, svc, "Prompt Engineering", 2)
	modEmpty := createTestModule(t, svc, "Coming Soon", 3)
	a1 := createTestLesson(t, svc, modA, "What is AI?", 1)
	a2 := createTestLesson(t, svc, modA, "Machine Learning", 2)
	b1 := createTestLesson(t, svc, modB, "Writing Prompts", 1)

	tests := []struct {
		name     string
		moduleID string
		order    int
		wantID   string
	}{
		{name: "NextInSameModule", moduleID: modA, order: 1, wantID: a2},
		{name: "CrossesToNextModule", moduleID: modA, order: 2, wantID: b1},
		{name: "GapInOrdersUsesNextGreater", moduleID: modA, order: 0, wantID: a1},
		{name: "NextModuleWithoutLessons", moduleID: modB, order: 1, wantID: ""},
		{name: "EndOfCurriculum", moduleID: modEmpty, order: 0, wantID: ""},
		{name: "UnknownModule", moduleID: "missing", order: 1, wantID: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := svc.content.GetNextLesson(ctx, "any-user", tt.moduleID, tt.order)
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, next)
				return
			}
			require.NotNil(t, next)
			assert.Equal(t, tt.wantID, next.ID)
		})
	}
}

func TestContentService_GetModuleByID(t *testing.T) {
	svc := newServices(nil)
	id := createTestModule(t, svc, "AI Fundamentals", 1)

	module, err := svc.content.GetModuleByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, module)
	assert.Equal(t, "AI Fundamentals", module.Title)

	missing, err := svc.content.GetModuleByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
