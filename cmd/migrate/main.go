package main

import (
	"errors"
	"flag"
	"log"

	"skill-quest/internal/app"
	"skill-quest/internal/config"
	"skill-quest/internal/database"
	"skill-quest/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back migrations instead of applying them")
	steps := flag.Int("steps", 0, "number of migrations to apply (negative rolls back); 0 means all")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db.DB, cfg.DB.Driver)
	if err != nil {
		l.Fatal("Failed to create migrator", zap.Error(err))
	}

	switch {
	case *steps != 0:
		err = m.Steps(*steps)
	case *down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		l.Fatal("Migration failed", zap.Error(err))
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		l.Warn("Could not read schema version", zap.Error(verr))
	}
	l.Info("Migrations finished",
		zap.String("driver", cfg.DB.Driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
}
