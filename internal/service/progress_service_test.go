package service

import (
	"context"
	"testing"

	"skill-quest/internal/domain"
	"skill-quest/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressService_CreateProgress_Upsert(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)
	userID := createTestUser(t, svc, "learner@example.com")
	moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
	lessonID := createTestLesson(t, svc, moduleID, "What is AI?", 1)

	first, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: lessonID, Completed: false, Score: 80})
	require.NoError(t, err)
	second, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: lessonID, Completed: true, Score: 60})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	p, err := svc.progress.GetLessonProgress(ctx, userID, lessonID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 80, p.Score)
	assert.Equal(t, 2, p.Attempts)
	assert.True(t, p.Completed)
	assert.NotNil(t, p.CompletedAt)

	all, err := svc.progress.GetUserProgress(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProgressService_CreateProgress_Uncomplete(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)
	userID := createTestUser(t, svc, "learner@example.com")
	moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
	lessonID := createTestLesson(t, svc, moduleID, "What is AI?", 1)

	_, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: lessonID, Completed: true, Score: 90})
	require.NoError(t, err)
	_, err = svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: lessonID, Completed: false, Score: 10})
	require.NoError(t, err)

	p, err := svc.progress.GetLessonProgress(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.False(t, p.Completed)
	assert.Nil(t, p.CompletedAt)
	assert.Equal(t, 90, p.Score)
}

func TestProgressService_CreateProgress_FirstLessonAchievement(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)
	userID := createTestUser(t, svc, "learner@example.com")
	moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
	l1 := createTestLesson(t, svc, moduleID, "What is AI?", 1)
	l2 := createTestLesson(t, svc, moduleID, "Machine Learning", 2)

	_, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: l1, Completed: false})
	require.NoError(t, err)
	assert.Equal(t, 0, svc.store.achievementsOfType(userID, domain.AchievementFirstLesson))

	_, err = svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: l1, Completed: true})
	require.NoError(t, err)
	_, err = svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: l2, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.store.achievementsOfType(userID, domain.AchievementFirstLesson))

	achievements, err := svc.achievements.GetUserAchievements(ctx, userID)
	require.NoError(t, err)
	require.Len(t, achievements, 1)
	assert.Equal(t, "First Steps", achievements[0].Title)
	assert.Equal(t, "Completed What is AI?", achievements[0].Description)
	assert.Equal(t, l1, achievements[0].Metadata["lessonId"])
}

func TestProgressService_CreateProgress_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newServices(nil)
	userID := createTestUser(t, svc, "learner@example.com")
	moduleID := createTestModule(t, svc, "AI Fundamentals", 1)
	lessonID := createTestLesson(t, svc, moduleID, "What is AI?", 1)

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{})
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: "missing", LessonID: lessonID})
		requireCode(t, err, domain.CodeUserNotFound)
	})

	t.Run("UnknownLesson", func(t *testing.T) {
		_, err := svc.progress.CreateProgress(ctx, dto.CreateProgressRequest{UserID: userID, LessonID: "missing"})
		requireCode(t, err, domain.CodeLessonNotFound)
	})

	assert.Empty(t, svc.store.progress)
}

func TestProgressService_GetLessonProgress_Missing(t *testing.T) {
	svc := newServices(nil)
	p, err := svc.progress.GetLessonProgress(context.Background(), "u", "l")
	require.NoError(t, err)
	assert.Nil(t, p)

	all, err := svc.progress.GetUserProgress(context.Background(), "u")
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
