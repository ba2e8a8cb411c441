package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/worldwise/internal/api"
	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/database"
	"github.com/alexivanou/worldwise/internal/events"
	"github.com/alexivanou/worldwise/internal/repository"
	"github.com/alexivanou/worldwise/internal/seeder"
	"github.com/alexivanou/worldwise/internal/service"
	"github.com/alexivanou/worldwise/internal/stats"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

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

	if err := database.Migrate(db, cfg.DB.Type, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)

	isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
	if err != nil {
		logger.Warn("Failed to check if database is empty", zap.Error(err))
	} else if isEmpty {
		logger.Info("Database is empty, auto-seeding data...")
		if _, err := seeder.Seed(ctx, seeder.NewParser(cfg.Seeder), repos.City, logger); err != nil {
			// A missing fixture just means an empty travel log
			logger.Warn("Failed to auto-seed database", zap.Error(err))
		}
	}

	var publisher events.Publisher = events.Nop{}
	var brokerUp func() bool
	if cfg.Events.Enabled() {
		nc, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			logger.Warn("NATS unavailable, city events disabled", zap.Error(err))
		} else {
			publisher = nc
			brokerUp = nc.Connected
			logger.Info("Publishing city events", zap.String("subject_prefix", cfg.Events.Subject))
		}
	}
	defer publisher.Close()

	svc := service.NewService(repos.City, publisher, logger.Named("service"))
	router := api.NewRouter(api.Dependencies{
		Service:        svc,
		Stats:          stats.NewCollector(db, cfg.DB),
		DB:             db,
		BrokerUp:       brokerUp,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
