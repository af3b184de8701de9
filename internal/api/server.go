package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/middleware"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

const maxRequestSize = 10 * 1024 * 1024

// Services groups what the HTTP layer calls into.
type Services struct {
	Outbound     OutboundSender
	Lifecycle    LifecycleManager
	Inbound      InboundSubmitter
	Messages     MessageLog
	AutoResponse AutoResponseSettings
	Provider     ProviderInspector
	Actions      ActionRunner
	Backups      SnapshotWriter
}

type Server struct {
	webhook    *WebhookHandler
	actions    *ActionHandler
	auth       *AuthHandler
	messages   *MessageHandler
	settings   *SettingsHandler
	websocket  *WebSocketHandler
	jwt        *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
	globalRate int
}

func NewServer(
	services Services,
	jwt *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	globalRateLimit int,
	logger *logger.Logger,
	pubsub MessagePubSub,
) *Server {
	return &Server{
		webhook:    NewWebhookHandler(services.Outbound, services.Lifecycle, services.Inbound, logger),
		actions:    NewActionHandler(services.Actions, logger),
		auth:       NewAuthHandler(services.Lifecycle, logger),
		messages:   NewMessageHandler(services.Messages),
		settings:   NewSettingsHandler(services.AutoResponse, services.Provider, services.Backups),
		websocket:  NewWebSocketHandler(logger, pubsub),
		jwt:        jwt,
		rateLimit:  rateLimit,
		validation: validation,
		globalRate: globalRateLimit,
	}
}

// SetupPublicRoutes registers the endpoints the CRM and the gateway call.
// Message bodies are relayed verbatim, so only size and request rate are
// checked here.
func (s *Server) SetupPublicRoutes(router gin.IRouter) {
	public := router.Group("", s.validation.ValidateRequestSize(maxRequestSize), s.rateLimit.GlobalRateLimit(s.globalRate))
	{
		public.POST("/webhook/provider-outbound", s.webhook.HandleCRMWebhook)
		public.POST("/webhook/ghl", s.webhook.HandleCRMWebhook)
		public.POST("/webhook/waapify", s.webhook.HandleProviderWebhook)

		public.POST("/action/send-whatsapp-text", s.actions.SendText)
		public.POST("/action/send-whatsapp-media", s.actions.SendMedia)
		public.POST("/action/check-whatsapp-phone", s.actions.CheckPhone)
		public.POST("/action/ai-chatbot-response", s.actions.AIChatbotResponse)

		for _, path := range []string{"/external-auth", "/external-authentication", "/authenticate", "/auth"} {
			public.POST(path, s.auth.ExternalAuth)
		}
		public.GET("/oauth/callback", s.auth.OAuthCallback)
		public.GET("/authorize-handler", s.auth.OAuthCallback)
	}
}

// SetupRoutes registers the JWT-protected management API.
func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.validation.BlockSuspiciousPatterns("q"))
	api.Use(s.validation.SanitizeInput())
	api.Use(s.validation.ValidateRequestSize(maxRequestSize))
	api.Use(s.validation.ValidateContentType("application/json", "text/plain"))
	api.Use(s.rateLimit.GlobalRateLimit(s.globalRate))

	scoped := api.Group("", s.jwt.JWTAuth(), s.rateLimit.TenantRateLimit())
	{
		messages := scoped.Group("/messages", s.jwt.RequireRole(domain.RoleUser))
		{
			messages.GET("", s.messages.ListMessages)
			messages.GET("/stats", s.messages.GetStats)
			messages.GET("/export", s.messages.ExportMessages)
			messages.GET("/stream", s.websocket.HandleWebSocket)
			messages.GET("/:id", s.messages.GetMessage)
		}

		autoResponse := scoped.Group("/auto-response", s.jwt.RequireRole(domain.RoleUser))
		{
			autoResponse.GET("", s.settings.GetAutoResponse)
			autoResponse.PUT("", s.settings.UpdateAutoResponse)
		}

		provider := scoped.Group("/provider", s.jwt.RequireRole(domain.RoleUser))
		{
			provider.GET("/status", s.settings.GetProviderStatus)
			provider.GET("/phone-numbers", s.settings.GetPhoneNumbers)
			provider.GET("/qr-code", s.settings.GetQRCode)
			provider.POST("/reboot", s.settings.RebootInstance)
			provider.POST("/send-group", s.settings.SendGroupMessage)
		}

		scoped.POST("/backups", s.jwt.RequireRole(domain.RoleAdmin), s.settings.CreateBackup)
	}
}

// StartWebSocketHub starts the hub that fans message updates out to streams
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

func (s *Server) GetWebSocketHandler() *WebSocketHandler {
	return s.websocket
}
