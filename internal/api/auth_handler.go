package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

// AuthHandler serves the marketplace credential flows: gateway credentials
// submitted through external auth and the CRM OAuth redirect.
type AuthHandler struct {
	*BaseHandler
	lifecycle LifecycleManager
	logger    *logger.Logger
}

func NewAuthHandler(lifecycle LifecycleManager, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{lifecycle: lifecycle, logger: logger}
}

// ExternalAuth Connect a tenant's messaging gateway credentials
// @Summary External auth
// @Description Accepts form or JSON fields in snake_case, camelCase or hyphenated form. The credentials are tested against the gateway before they are stored.
// @Tags    auth
// @Accept  json,x-www-form-urlencoded
// @Produce json
// @Param   body body dto.ExternalAuthRequest true "Gateway credentials"
// @Success 200 {object} dto.ExternalAuthResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 401 {object} dto.WebhookErrorResponse
// @Router  /external-auth [post]
func (h *AuthHandler) ExternalAuth(c *gin.Context) {
	fields, err := requestFields(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookErrorResponse{Error: err.Error(), ErrorCode: codeMissingFields})
		return
	}

	config, err := h.lifecycle.ConnectProvider(h.RequestCtx(c), dto.NewExternalAuthRequest(fields))
	if err != nil {
		writeWebhookError(c, err, "")
		return
	}
	if config == nil {
		c.JSON(http.StatusOK, dto.ExternalAuthResponse{Success: true, Message: "Verification acknowledged"})
		return
	}

	phoneNumbers := []string{}
	if config.SenderNumber != "" {
		phoneNumbers = append(phoneNumbers, config.SenderNumber)
	}
	c.JSON(http.StatusOK, dto.ExternalAuthResponse{
		Success: true,
		Message: "Provider connected",
		ProviderConfig: &dto.ProviderConfigSummary{
			ID:           domain.ProviderID,
			PhoneNumbers: phoneNumbers,
		},
	})
}

// OAuthCallback Complete the CRM OAuth authorization
// @Summary OAuth callback
// @Description Exchanges the authorization code for CRM tokens and marks the installation authorized
// @Tags    auth
// @Produce json
// @Param   code query string true "Authorization code"
// @Success 200 {object} dto.OAuthCallbackResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 401 {object} dto.WebhookErrorResponse
// @Router  /oauth/callback [get]
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	installation, err := h.lifecycle.CompleteOAuth(h.RequestCtx(c), c.Query("code"))
	if err != nil {
		writeWebhookError(c, err, "")
		return
	}

	h.logger.Info("OAuth completed", zap.String("tenant", installation.TenantKey()))
	c.JSON(http.StatusOK, dto.OAuthCallbackResponse{
		Success:    true,
		CompanyID:  installation.CompanyID,
		LocationID: installation.LocationID,
		Status:     string(installation.Status),
	})
}

// requestFields flattens a JSON object or form body, plus query parameters,
// into string fields. Body values win over query values.
func requestFields(c *gin.Context) (map[string]string, error) {
	fields := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]any
		decoder := json.NewDecoder(c.Request.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		for key, value := range body {
			switch v := value.(type) {
			case string:
				fields[key] = v
			case nil:
			default:
				fields[key] = fmt.Sprint(v)
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}
