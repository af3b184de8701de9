package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/repository/postgres"
	s3store "github.com/kingrain94/waapify-relay/internal/repository/s3"
	"github.com/kingrain94/waapify-relay/internal/service"
	"github.com/kingrain94/waapify-relay/internal/worker"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", err)
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	pgRepo := postgres.NewPostgresRepository(dbConnections)

	// Initialize S3
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}
	backupService := service.NewBackupService(pgRepo, s3store.NewStore(s3Client, s3Config.BucketName), s3Config.BackupPrefix, appLogger)

	backupWorker := worker.NewBackupWorker(backupService, appLogger, cfg.Workers.BackupInterval)
	cleanupWorker := worker.NewCleanupWorker(pgRepo.RateLimit(), appLogger, cfg.Workers.CleanupInterval, cfg.Workers.CounterMaxIdle)

	// Snapshot once at boot.
	if err := backupWorker.RunOnce(context.Background()); err != nil {
		appLogger.Error("Initial backup failed", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	backupWorker.Start()
	cleanupWorker.Start()

	<-sigChan
	appLogger.Info("Shutting down maintenance workers...")

	backupWorker.Stop()
	cleanupWorker.Stop()
	appLogger.Info("Maintenance workers stopped")
	appLogger.Sync()
}
