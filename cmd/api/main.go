// @title Skill Quest API
// @version 1.0
// @description Gamified AI-skills learning backend: users, modules, lessons, progress, quizzes and achievements.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to attribute quiz submissions to a user.
package main

import (
	"context"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "skill-quest/cmd/api/docs"
	"skill-quest/internal/app"
	"skill-quest/internal/config"
	"skill-quest/internal/database"
	"skill-quest/internal/handler"
	"skill-quest/internal/logger"
	"skill-quest/internal/middleware"
	"skill-quest/internal/monitoring"
	"skill-quest/internal/scheduler"
	"skill-quest/internal/tracing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.App.Env)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	monitoring.Init()

	// Connect to database
	db, err := app.OpenDatabase(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db.DB, cfg.DB.Driver); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
		appLogger.Info("Migrations applied", zap.String("driver", cfg.DB.Driver))
	}

	container, err := app.New(cfg, db)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer container.Close()

	jobs := scheduler.New(container.Services.Users, cfg.Scheduler.LeaderboardRefresh, time.UTC)
	if err := jobs.Start(); err != nil {
		appLogger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		UnescapePath: true,
		ErrorHandler: middleware.ErrorHandler(),
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	// Metrics wrap the request logger so they observe the rendered status.
	fiberApp.Use(monitoring.MetricsMiddleware())
	fiberApp.Use(middleware.RequestLogger())

	fiberApp.Get("/metrics", monitoring.PrometheusHandler())
	fiberApp.Get("/swagger/*", swagger.HandlerDefault)
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		if err := container.Ping(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler.RegisterRoutes(ctx, fiberApp.Group("/api"), container.Services, cfg)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.App.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	jobs.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Warn("Tracer shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
