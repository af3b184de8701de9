package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/utils"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

const rateLimitWindow = time.Minute

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit limits management API requests per tenant. Message sends
// are limited separately by the service layer.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetString(string(utils.CompanyIDKey))
		if companyID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Tenant required for rate limiting"})
			c.Abort()
			return
		}

		tenantKey := domain.TenantKey(companyID, c.GetString(string(utils.LocationIDKey)))
		m.enforce(c, "rate_limit:tenant:"+tenantKey, m.config.APIRateLimit, "Rate limit exceeded")
	}
}

// GlobalRateLimit limits requests per client IP. It guards the public
// webhook and auth endpoints.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, "rate_limit:global:"+c.ClientIP(), limit, "Global rate limit exceeded")
	}
}

// enforce counts the request in a fixed one-minute window. Redis failures let
// the request through.
func (m *RateLimitMiddleware) enforce(c *gin.Context, key string, limit int, message string) {
	count, ttl, err := m.increment(c.Request.Context(), key)
	if err != nil {
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	reset := time.Now().Add(ttl).Unix()
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

	if int(count) > limit {
		c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": message,
			"limit": limit,
			"reset": reset,
		})
		c.Abort()
		return
	}

	c.Next()
}

// increment bumps the window counter and starts the window on first use.
func (m *RateLimitMiddleware) increment(ctx context.Context, key string) (int64, time.Duration, error) {
	pipe := m.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateLimitWindow)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to count request for %s: %w", key, err)
	}

	window := ttl.Val()
	if window <= 0 {
		window = rateLimitWindow
	}
	return incr.Val(), window, nil
}
