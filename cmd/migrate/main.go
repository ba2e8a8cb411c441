package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/database"
	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "up, down, steps, or version")
		steps   = flag.Int("n", 1, "migrations to apply (negative rolls back) with -command=steps")
		dir     = flag.String("dir", "migrations", "directory holding the sqlite and postgres migration sets")
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
	if cfg.DB.IsMemory() {
		logger.Warn("DB_TYPE=memory: the schema only lives as long as this process, the server migrates on start")
	}

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	m, err := database.NewMigrator(db, cfg.DB.Type, *dir)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	logger = logger.With(zap.String("command", *command), zap.String("db_type", string(cfg.DB.Type)))

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(*steps)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("Failed to read schema version", zap.Error(verr))
		}
		logger.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return
	default:
		logger.Fatal("Unknown command")
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("Schema already up to date")
		return
	}
	if err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Migration finished")
}
