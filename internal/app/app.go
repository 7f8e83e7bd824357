// Package app wires repositories, cache and services for the binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"skill-quest/internal/adapter"
	"skill-quest/internal/cache"
	"skill-quest/internal/config"
	"skill-quest/internal/database"
	"skill-quest/internal/domain"
	"skill-quest/internal/handler"
	"skill-quest/internal/logger"
	"skill-quest/internal/repository"
	"skill-quest/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds the process-wide dependencies.
type Container struct {
	DB        *sqlx.DB
	Redis     *redis.Client
	Cache     domain.Cache
	TxManager domain.TransactionManager
	Services  handler.Services
}

// OpenDatabase connects to the configured database, creating the sqlite data
// directory when needed.
func OpenDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.DB.Driver == database.DriverSQLite {
		if err := database.EnsureSQLiteDir(cfg.DB.Path); err != nil {
			return nil, err
		}
	}
	return database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
}

// New builds a Container on db. Redis is optional: when it is not configured or not
// reachable the services run without a cache.
func New(cfg *config.Config, db *sqlx.DB) (*Container, error) {
	c := &Container{DB: db, TxManager: repository.NewTransactionManagerAdapter(db)}

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Get().Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			c.Redis = client
			c.Cache = adapter.NewRedisCacheAdapter(client)
			logger.Get().Info("Redis cache enabled", zap.String("address", cfg.Redis.Address))
		}
	}

	svcs, err := NewServices(cfg, db, c.Cache)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Services = svcs
	return c, nil
}

// NewServices wires every service on the sqlx repositories. c may be nil.
func NewServices(cfg *config.Config, db *sqlx.DB, c domain.Cache) (handler.Services, error) {
	userRepo := repository.NewSQLXUserRepository(db)
	moduleRepo := repository.NewSQLXModuleRepository(db)
	lessonRepo := repository.NewSQLXLessonRepository(db)
	progressRepo := repository.NewSQLXProgressRepository(db)
	quizRepo := repository.NewSQLXQuizRepository(db)
	attemptRepo := repository.NewSQLXQuizAttemptRepository(db)
	achievementRepo := repository.NewSQLXAchievementRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		return handler.Services{}, fmt.Errorf("failed to create auth service: %w", err)
	}

	achievements := service.NewAchievementService(achievementRepo)
	leaderboard := service.NewLeaderboard(userRepo, c, cfg)
	return handler.Services{
		Users:    service.NewUserService(userRepo, achievements, txManager, leaderboard, cfg),
		Content:  service.NewContentService(moduleRepo, lessonRepo, c, cfg),
		Progress: service.NewProgressService(progressRepo, userRepo, lessonRepo, achievements, txManager),
		Quizzes: service.NewQuizService(service.QuizServiceDeps{
			QuizRepo:     quizRepo,
			AttemptRepo:  attemptRepo,
			UserRepo:     userRepo,
			ModuleRepo:   moduleRepo,
			LessonRepo:   lessonRepo,
			ProgressRepo: progressRepo,
			Achievements: achievements,
			TxManager:    txManager,
			Leaderboard:  leaderboard,
		}),
		Achievements: achievements,
		Auth:         authService,
	}, nil
}

// Ping checks the database and, when enabled, the cache.
func (c *Container) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.Cache != nil {
		if err := c.Cache.Ping(ctx); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return nil
}

// Close releases the redis client and the database.
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Get().Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}
}
