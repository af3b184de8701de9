package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/docs"
	"github.com/kingrain94/waapify-relay/internal/api"
	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/crm"
	"github.com/kingrain94/waapify-relay/internal/gateway"
	"github.com/kingrain94/waapify-relay/internal/llm"
	"github.com/kingrain94/waapify-relay/internal/middleware"
	"github.com/kingrain94/waapify-relay/internal/repository/composite"
	"github.com/kingrain94/waapify-relay/internal/repository/postgres"
	s3store "github.com/kingrain94/waapify-relay/internal/repository/s3"
	"github.com/kingrain94/waapify-relay/internal/service"
	"github.com/kingrain94/waapify-relay/internal/service/pubsub"
	"github.com/kingrain94/waapify-relay/internal/service/queue"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

// @title           Waapify Relay API
// @version         1.0
// @description     Relays CRM conversation messages to the Waapify WhatsApp gateway and gateway events back to the CRM.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
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
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	if cfg.AutoMigrate {
		if err := postgres.AutoMigrate(dbConnections.Writer); err != nil {
			appLogger.Fatal("Failed to migrate database", err)
		}
	}

	appLogger.Info("Database connections established - writer and reader connected")

	// Initialize OpenSearch
	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Initialize Redis pub/sub
	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	// Initialize S3
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}
	objectStore := s3store.NewStore(s3Client, s3Config.BucketName)

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	backupService := service.NewBackupService(repo, objectStore, s3Config.BackupPrefix, appLogger)
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if restored, err := backupService.RestoreIfEmpty(restoreCtx); err != nil {
		appLogger.Error("Failed to restore credentials from snapshot", err)
	} else if restored > 0 {
		appLogger.Info("Credentials restored from snapshot", zap.Int("installations", restored))
	}
	cancelRestore()

	// Initialize outbound clients
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)
	crmClient := crm.NewClient(cfg.CRM)
	llmClient := llm.NewClient(cfg.OpenAI)

	// Initialize services
	resolver := service.NewTenantResolver(repo)
	limiter := service.NewRateLimiter(repo.RateLimit(), cfg.DefaultRateLimit)
	dispatcher := service.NewDispatcher(gatewayClient, utils.NewPhoneNormalizer(cfg.Gateway.CountryCode), cfg.Gateway.Timeout)
	deliveryLog := service.NewDeliveryLog(repo, sqsService, appLogger)
	tokens := service.NewCRMTokens(repo, crmClient, appLogger)
	outboundService := service.NewOutboundService(resolver, limiter, dispatcher, deliveryLog, tokens, crmClient, appLogger)
	lifecycleService := service.NewLifecycleService(repo, resolver, gatewayClient, crmClient, appLogger)
	autoResponder := service.NewAutoResponder(repo, llmClient, limiter, dispatcher, deliveryLog, appLogger)
	inboundService := service.NewInboundService(resolver, autoResponder, tokens, crmClient, deliveryLog, appLogger)
	providerService := service.NewProviderService(repo, resolver, gatewayClient, limiter, deliveryLog, appLogger)
	actionService := service.NewActionService(resolver, limiter, dispatcher, deliveryLog, autoResponder, gatewayClient, appLogger)

	var executor *service.SerialExecutor
	switch cfg.InboundMode {
	case config.InboundModeSQS:
		inboundService.UseQueue(sqsService)
		appLogger.Info("Inbound events are queued for the inbound worker")
	default:
		executor = service.NewSerialExecutor(func(key string, err error) {
			appLogger.Error("Inbound task failed", err, zap.String("instance_id", key))
		})
		inboundService.UseExecutor(executor)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize server
	server := api.NewServer(
		api.Services{
			Outbound:     outboundService,
			Lifecycle:    lifecycleService,
			Inbound:      inboundService,
			Messages:     deliveryLog,
			AutoResponse: autoResponder,
			Provider:     providerService,
			Actions:      actionService,
			Backups:      backupService,
		},
		authMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
		cfg.GlobalRateLimit,
		appLogger,
		redisPubSub,
	)

	// Wire up WebSocket broadcaster
	deliveryLog.SetWebSocketBroadcaster(server.GetWebSocketHandler())

	// Start WebSocket hub
	server.StartWebSocketHub()

	// Initialize router
	router := gin.Default()

	// Swagger documentation endpoint
	docs.SwaggerInfo.Title = "Waapify Relay API"
	docs.SwaggerInfo.Description = "CRM to WhatsApp gateway relay"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Swagger UI endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// CRM and gateway callbacks
	server.SetupPublicRoutes(router)

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	// Let queued inbound events finish
	if executor != nil {
		executor.Close()
	}
	server.GetWebSocketHandler().Stop()

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
