package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/database"
	"github.com/alexivanou/worldwise/internal/repository"
	"github.com/alexivanou/worldwise/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	var (
		fixture = flag.String("fixture", "", "Fixture to import (overrides SEEDER_FIXTURE)")
		reset   = flag.Bool("reset", false, "Delete existing cities before importing")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if *fixture != "" {
		cfg.Seeder.Fixture = *fixture
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Ensure the schema exists, in-memory databases start blank
	if err := database.Migrate(db, cfg.DB.Type, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if *reset {
		if _, err := db.ExecContext(ctx, "DELETE FROM cities"); err != nil {
			logger.Fatal("Failed to clear cities", zap.Error(err))
		}
		logger.Info("Cleared existing cities")
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)

	total, err := seeder.Seed(ctx, seeder.NewParser(cfg.Seeder), repos.City, logger)
	if err != nil {
		logger.Fatal("Failed to import cities", zap.Error(err))
	}

	logger.Info("Data import completed successfully!", zap.Int("cities", total))
}
