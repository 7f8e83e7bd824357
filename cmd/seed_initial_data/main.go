package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"skill-quest/cmd/seed_initial_data/internal/seeder"
	"skill-quest/cmd/seed_initial_data/internal/seedmodels"
	"skill-quest/internal/app"
	"skill-quest/internal/config"
	"skill-quest/internal/handler"
	"skill-quest/internal/logger"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed_data/ai_curriculum.json"

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "curriculum seed file")
	withUsers := flag.Bool("sample-users", true, "also create the sample users")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := app.OpenDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	container, err := app.New(cfg, db)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer container.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}
	seedModules, err := seedmodels.Parse(byteValue)
	if err != nil {
		log.Fatal("Failed to parse seed data", zap.Error(err))
	}
	log.Info("Seed data loaded", zap.Int("modules_loaded", len(seedModules)))

	existing, err := existingModules(ctx, container.Services)
	if err != nil {
		log.Fatal("Failed to list modules", zap.Error(err))
	}

	s := seeder.New(container.Services.Content, container.Services.Quizzes, container.TxManager)
	for _, sm := range seedModules {
		if id, ok := existing[strings.ToLower(sm.Title)]; ok {
			log.Info("Module exists, skipping.", zap.String("id", id), zap.String("title", sm.Title))
			continue
		}
		if _, err := s.SeedModule(ctx, sm); err != nil {
			log.Error("Error seeding module", zap.String("title", sm.Title), zap.Error(err))
		}
	}

	if *withUsers {
		ids, err := container.Services.Users.CreateSampleUsers(ctx)
		if err != nil {
			log.Fatal("Failed to create sample users", zap.Error(err))
		}
		log.Info("Sample users ready", zap.Strings("ids", ids))
	}
	log.Info("Initial data seeding process completed.")
}

func existingModules(ctx context.Context, svcs handler.Services) (map[string]string, error) {
	modules, err := svcs.Content.GetAllModules(ctx)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]string, len(modules))
	for _, m := range modules {
		byTitle[strings.ToLower(m.Title)] = m.ID
	}
	return byTitle, nil
}
