package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/repository/opensearch"
	"github.com/kingrain94/waapify-relay/internal/service/queue"
	"github.com/kingrain94/waapify-relay/internal/worker"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

// index_worker drains the search index queue into OpenSearch.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", err)
	}

	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}
	searchRepo := opensearch.NewRepository(osClient, osConfig)

	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	indexWorker := worker.NewIndexWorker(
		sqsService,
		sqsService.IndexQueueURL(),
		searchRepo,
		appLogger,
		cfg.Workers.IndexConcurrency,
		cfg.Workers.IndexPollInterval,
	)
	indexWorker.Start()
	appLogger.Info("Index worker started",
		zap.String("queue", sqsService.IndexQueueURL()),
		zap.Int("concurrency", cfg.Workers.IndexConcurrency),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	indexWorker.Stop()
	appLogger.Info("Index worker stopped")
	_ = appLogger.Sync()
}
