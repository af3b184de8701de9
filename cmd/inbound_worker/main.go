package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/crm"
	"github.com/kingrain94/waapify-relay/internal/gateway"
	"github.com/kingrain94/waapify-relay/internal/llm"
	"github.com/kingrain94/waapify-relay/internal/repository/composite"
	"github.com/kingrain94/waapify-relay/internal/service"
	"github.com/kingrain94/waapify-relay/internal/service/pubsub"
	"github.com/kingrain94/waapify-relay/internal/service/queue"
	"github.com/kingrain94/waapify-relay/internal/worker"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

// publisher forwards delivery log updates to the API instances' streams.
type publisher struct {
	pubsub *pubsub.RedisPubSub
	logger *logger.Logger
}

func (p *publisher) BroadcastMessage(message *dto.MessageResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.pubsub.Publish(ctx, message); err != nil {
		p.logger.Error("Failed to publish message update", err)
	}
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	redisClient, err := config.DefaultRedisConfig().GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)

	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)
	crmClient := crm.NewClient(cfg.CRM)

	resolver := service.NewTenantResolver(repo)
	limiter := service.NewRateLimiter(repo.RateLimit(), cfg.DefaultRateLimit)
	dispatcher := service.NewDispatcher(gatewayClient, utils.NewPhoneNormalizer(cfg.Gateway.CountryCode), cfg.Gateway.Timeout)
	deliveryLog := service.NewDeliveryLog(repo, sqsService, appLogger)
	deliveryLog.SetWebSocketBroadcaster(&publisher{pubsub: redisPubSub, logger: appLogger})
	tokens := service.NewCRMTokens(repo, crmClient, appLogger)
	autoResponder := service.NewAutoResponder(repo, llm.NewClient(cfg.OpenAI), limiter, dispatcher, deliveryLog, appLogger)
	inboundService := service.NewInboundService(resolver, autoResponder, tokens, crmClient, deliveryLog, appLogger)

	inboundWorker := worker.NewInboundWorker(
		sqsService,
		sqsService.InboundQueueURL(),
		inboundService,
		appLogger,
		cfg.Workers.InboundConcurrency,
		cfg.Workers.InboundPollInterval,
	)

	inboundWorker.Start()
	appLogger.Info("Inbound worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	inboundWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
