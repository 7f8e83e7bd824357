package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"skill-quest/internal/app"
	"skill-quest/internal/config"
	"skill-quest/internal/importer"
	"skill-quest/internal/logger"

	"go.uber.org/zap"
)

func main() {
	defaults := importer.DefaultImportConfig()
	cfgFlags := defaults
	flag.StringVar(&cfgFlags.FilePath, "file", "", "path to the .xlsx or .csv file (required)")
	flag.StringVar(&cfgFlags.SheetName, "sheet", defaults.SheetName, "sheet name (xlsx only)")
	flag.IntVar(&cfgFlags.StartRow, "start-row", defaults.StartRow, "first data row, 1-based")
	flag.StringVar(&cfgFlags.ModuleColumn, "module-col", defaults.ModuleColumn, "module title column")
	flag.StringVar(&cfgFlags.TitleColumn, "title-col", defaults.TitleColumn, "lesson title column")
	flag.StringVar(&cfgFlags.OrderColumn, "order-col", defaults.OrderColumn, "lesson order column")
	flag.StringVar(&cfgFlags.DifficultyColumn, "difficulty-col", defaults.DifficultyColumn, "difficulty column")
	flag.StringVar(&cfgFlags.XPRewardColumn, "xp-col", defaults.XPRewardColumn, "xp reward column")
	flag.StringVar(&cfgFlags.IntroductionColumn, "intro-col", defaults.IntroductionColumn, "introduction column")
	flag.StringVar(&cfgFlags.SectionColumn, "section-col", defaults.SectionColumn, "section body column")
	flag.StringVar(&cfgFlags.TakeawaysColumn, "takeaways-col", defaults.TakeawaysColumn, "key takeaways column (; separated)")
	flag.Parse()

	if cfgFlags.FilePath == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	container, err := app.New(cfg, db)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer container.Close()

	result, err := importer.New(container.Services.Content).ImportFile(context.Background(), cfgFlags)
	if err != nil {
		log.Fatal("Import failed", zap.Error(err))
	}
	for _, e := range result.Errors {
		log.Warn("Row rejected", zap.String("error", e))
	}

	fmt.Printf("Processed: %d\nModules created: %d\nLessons created: %d\nSkipped: %d\nErrors: %d\n",
		result.TotalProcessed, result.ModulesCreated, result.Created, result.Skipped, len(result.Errors))
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
