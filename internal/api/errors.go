package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/service"
)

const (
	codeMissingFields    = "MISSING_FIELDS"
	codeUnsupportedType  = "UNSUPPORTED_TYPE"
	codeInvalidRecipient = "INVALID_RECIPIENT"
	codeNotInstalled     = "NOT_INSTALLED"
	codeNotConfigured    = "NOT_CONFIGURED"
	codeAuthFailed       = "AUTH_FAILED"
	codeRateLimited      = "RATE_LIMITED"
	codeGatewayTimeout   = "GATEWAY_TIMEOUT"
	codeGatewayError     = "GATEWAY_ERROR"
	codeModelError       = "MODEL_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeInternal         = "INTERNAL_ERROR"
)

// classify maps a service error to its HTTP status and error code.
func classify(err error) (int, string) {
	var rateLimited *service.RateLimitedError
	var gatewayErr *service.GatewayError
	var modelErr *service.ModelError

	switch {
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, codeMissingFields
	case errors.Is(err, service.ErrUnsupportedMessageType):
		return http.StatusBadRequest, codeUnsupportedType
	case errors.Is(err, service.ErrInvalidRecipient):
		return http.StatusBadRequest, codeInvalidRecipient
	case errors.Is(err, service.ErrNotInstalled):
		return http.StatusBadRequest, codeNotInstalled
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusBadRequest, codeNotConfigured
	case errors.Is(err, service.ErrAuthFailed):
		return http.StatusUnauthorized, codeAuthFailed
	case errors.Is(err, service.ErrMessageNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, codeRateLimited
	case errors.Is(err, service.ErrGatewayTimeout):
		return http.StatusInternalServerError, codeGatewayTimeout
	case errors.As(err, &gatewayErr):
		return http.StatusInternalServerError, codeGatewayError
	case errors.As(err, &modelErr):
		return http.StatusInternalServerError, codeModelError
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeWebhookError answers a CRM webhook with the error envelope it expects.
func writeWebhookError(c *gin.Context, err error, messageID string) {
	status, code := classify(err)
	resp := dto.WebhookErrorResponse{
		Success:   false,
		Error:     err.Error(),
		ErrorCode: code,
		MessageID: messageID,
	}

	var rateLimited *service.RateLimitedError
	if errors.As(err, &rateLimited) {
		resp.RetryAfter = rateLimited.RetryAfter
		c.Header("Retry-After", strconv.Itoa(rateLimited.RetryAfter))
	}

	var invalid *service.InvalidRecipientError
	if errors.As(err, &invalid) {
		resp.Suggestion = invalid.Suggestion
	}

	c.JSON(status, resp)
}

func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	if code == codeInternal {
		code = ""
	}
	c.JSON(status, dto.Error{Error: err.Error(), Code: code})
}
