package service

import (
	"context"
	"strings"
	"time"

	"skill-quest/internal/cache"
	"skill-quest/internal/config"
	"skill-quest/internal/domain"
	"skill-quest/internal/dto"
	"skill-quest/internal/logger"
	"skill-quest/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ContentService manages modules and lessons and walks the curriculum in reading order.
type ContentService interface {
	CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*dto.IDResponse, error)
	GetModules(ctx context.Context) ([]dto.ModuleResponse, error)
	GetAllModules(ctx context.Context) ([]dto.ModuleResponse, error)
	GetModuleByID(ctx context.Context, moduleID string) (*dto.ModuleResponse, error)
	CreateLesson(ctx context.Context, req dto.CreateLessonRequest) (*dto.IDResponse, error)
	GetLessonsByModule(ctx context.Context, moduleID string) ([]dto.LessonResponse, error)
	GetLessonByID(ctx context.Context, lessonID string) (*dto.LessonResponse, error)
	GetNextLesson(ctx context.Context, userID, currentModuleID string, currentLessonOrder int) (*dto.LessonResponse, error)
}

type contentServiceImpl struct {
	moduleRepo domain.ModuleRepository
	lessonRepo domain.LessonRepository
	lessons    *jsonCache
	modules    *jsonCache
	now        func() time.Time
}

// NewContentService creates a ContentService. cache may be nil.
func NewContentService(
	moduleRepo domain.ModuleRepository,
	lessonRepo domain.LessonRepository,
	cache domain.Cache,
	appConfig *config.Config,
) ContentService {
	ttl := appConfig.ParseTTLStringOrDefault(appConfig.CacheTTLs.Lessons, 10*time.Minute)
	return &contentServiceImpl{
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
		lessons:    newJSONCache(cache, "lessons", ttl),
		modules:    newJSONCache(cache, "modules", ttl),
		now:        time.Now,
	}
}

func (s *contentServiceImpl) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*dto.IDResponse, error) {
	module := domain.NewModule(strings.TrimSpace(req.Title), req.Description, req.Order)
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}
	if err := module.Validate(); err != nil {
		return nil, err
	}
	if err := s.moduleRepo.CreateModule(ctx, module); err != nil {
		return nil, domain.NewInternalError("failed to create module", err)
	}
	s.modules.invalidate(ctx, cache.ActiveModulesKey())

	logger.Get().Info("Module created", zap.String("moduleID", module.ID), zap.Int("order", module.Order))
	return &dto.IDResponse{ID: module.ID}, nil
}

// GetModules returns the active modules in ascending order.
func (s *contentServiceImpl) GetModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	var cached []dto.ModuleResponse
	if s.modules.get(ctx, cache.ActiveModulesKey(), &cached) {
		return cached, nil
	}

	modules, err := s.moduleRepo.GetActiveModules(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to get modules", err)
	}
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, *dto.NewModuleResponse(m))
	}
	s.modules.set(ctx, cache.ActiveModulesKey(), out)
	return out, nil
}

// GetAllModules returns every module including inactive ones. It is not cached.
func (s *contentServiceImpl) GetAllModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := s.moduleRepo.GetAllModules(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to get modules", err)
	}
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, *dto.NewModuleResponse(m))
	}
	return out, nil
}

func (s *contentServiceImpl) GetModuleByID(ctx context.Context, moduleID string) (*dto.ModuleResponse, error) {
	module, err := s.moduleRepo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get module", err)
	}
	return dto.NewModuleResponse(module), nil
}

func (s *contentServiceImpl) CreateLesson(ctx context.Context, req dto.CreateLessonRequest) (*dto.IDResponse, error) {
	now := s.now()
	lesson := &domain.Lesson{
		ModuleID:   strings.TrimSpace(req.ModuleID),
		Title:      strings.TrimSpace(req.Title),
		Order:      req.Order,
		Content:    req.Content,
		XPReward:   req.XPReward,
		Difficulty: domain.Difficulty(req.Difficulty),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	if lesson.Content.Sections == nil {
		lesson.Content.Sections = []domain.LessonSection{}
	}
	if lesson.Content.KeyTakeaways == nil {
		lesson.Content.KeyTakeaways = []string{}
	}

	module, err := s.moduleRepo.GetModuleByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get module", err)
	}
	if module == nil {
		return nil, domain.NewModuleNotFoundError(lesson.ModuleID)
	}

	if err := s.lessonRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, domain.NewInternalError("failed to create lesson", err)
	}
	s.lessons.invalidate(ctx, cache.ModuleLessonsKey(lesson.ModuleID))

	logger.Get().Info("Lesson created",
		zap.String("lessonID", lesson.ID),
		zap.String("moduleID", lesson.ModuleID),
		zap.Int("order", lesson.Order),
	)
	return &dto.IDResponse{ID: lesson.ID}, nil
}

// GetLessonsByModule returns the lessons of a module in ascending order. An unknown
// module yields an empty list.
func (s *contentServiceImpl) GetLessonsByModule(ctx context.Context, moduleID string) ([]dto.LessonResponse, error) {
	var cached []dto.LessonResponse
	if s.lessons.get(ctx, cache.ModuleLessonsKey(moduleID), &cached) {
		return cached, nil
	}

	lessons, err := s.lessonRepo.GetLessonsByModule(ctx, moduleID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get lessons", err)
	}
	out := make([]dto.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, *dto.NewLessonResponse(l))
	}
	s.lessons.set(ctx, cache.ModuleLessonsKey(moduleID), out)
	return out, nil
}

func (s *contentServiceImpl) GetLessonByID(ctx context.Context, lessonID string) (*dto.LessonResponse, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get lesson", err)
	}
	return dto.NewLessonResponse(lesson), nil
}

// GetNextLesson returns the lesson after currentLessonOrder in the current module, or
// the first lesson of the following module. userID does not influence the result.
// nil means the end of the curriculum or an unknown module.
func (s *contentServiceImpl) GetNextLesson(ctx context.Context, userID, currentModuleID string, currentLessonOrder int) (_ *dto.LessonResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "ContentService.GetNextLesson",
		attribute.String("module.id", currentModuleID),
		attribute.Int("lesson.order", currentLessonOrder),
	)
	defer func() { tracing.End(span, err) }()

	next, err := s.lessonRepo.GetNextLessonInModule(ctx, currentModuleID, currentLessonOrder)
	if err != nil {
		return nil, domain.NewInternalError("failed to get next lesson", err)
	}
	if next != nil {
		return dto.NewLessonResponse(next), nil
	}

	current, err := s.moduleRepo.GetModuleByID(ctx, currentModuleID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get module", err)
	}
	if current == nil {
		return nil, nil
	}

	nextModule, err := s.moduleRepo.GetNextModule(ctx, current.Order)
	if err != nil {
		return nil, domain.NewInternalError("failed to get next module", err)
	}
	if nextModule == nil {
		return nil, nil
	}

	first, err := s.lessonRepo.GetFirstLessonInModule(ctx, nextModule.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get first lesson", err)
	}
	return dto.NewLessonResponse(first), nil
}
