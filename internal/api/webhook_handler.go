package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/service"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

type OutboundSender interface {
	Send(ctx context.Context, req service.OutboundRequest) (*service.OutboundResult, error)
}

type LifecycleManager interface {
	HandleEvent(ctx context.Context, eventType, companyID, locationID string) error
	ConnectProvider(ctx context.Context, req dto.ExternalAuthRequest) (*domain.ProviderConfig, error)
	CompleteOAuth(ctx context.Context, code string) (*domain.Installation, error)
}

type InboundSubmitter interface {
	Submit(ctx context.Context, event *domain.ProviderEvent) error
}

type WebhookHandler struct {
	*BaseHandler
	outbound  OutboundSender
	lifecycle LifecycleManager
	inbound   InboundSubmitter
	logger    *logger.Logger
}

func NewWebhookHandler(outbound OutboundSender, lifecycle LifecycleManager, inbound InboundSubmitter, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		outbound:  outbound,
		lifecycle: lifecycle,
		inbound:   inbound,
		logger:    logger,
	}
}

// HandleCRMWebhook Receive a CRM lifecycle event or outbound send request
// @Summary CRM webhook
// @Description Installation events (INSTALL, UNINSTALL, EXTERNAL_AUTH_CONNECTED) are acknowledged; any other type is sent through the messaging gateway
// @Tags    webhooks
// @Accept  json
// @Produce json
// @Param   body body dto.WebhookRequest true "CRM webhook payload"
// @Success 200 {object} dto.SendMessageResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 401 {object} dto.WebhookErrorResponse
// @Failure 429 {object} dto.WebhookErrorResponse
// @Failure 500 {object} dto.WebhookErrorResponse
// @Router  /webhook/provider-outbound [post]
func (h *WebhookHandler) HandleCRMWebhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookErrorResponse{
			Error:     err.Error(),
			ErrorCode: codeMissingFields,
		})
		return
	}

	ctx := h.RequestCtx(c)

	if service.IsLifecycleEvent(req.Type) {
		if err := h.lifecycle.HandleEvent(ctx, req.Type, req.CompanyID, req.LocationID); err != nil {
			writeWebhookError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, dto.AckResponse{Success: true})
		return
	}

	outbound := service.OutboundRequest{
		ContactID:  req.ContactID,
		LocationID: req.LocationID,
		CompanyID:  req.CompanyID,
		Type:       req.Type,
		Phone:      req.Phone,
		Message:    req.Message,
		MessageID:  req.MessageID,
	}
	if len(req.Attachments) > 0 {
		outbound.MediaURL = req.Attachments[0].URL
		outbound.MediaName = req.Attachments[0].Filename
	}

	result, err := h.outbound.Send(ctx, outbound)
	if err != nil {
		writeWebhookError(c, err, req.MessageID)
		return
	}

	resp := dto.SendMessageResponse{
		Success:        true,
		ConversationID: result.ConversationID,
		MessageID:      result.MessageID,
		Status:         string(result.Status),
		DeliveredAt:    result.DeliveredAt,
	}
	if result.LogErr != nil {
		resp.Warning = "message sent but not logged"
	}
	c.JSON(http.StatusOK, resp)
}

// HandleProviderWebhook Receive an event from the messaging gateway
// @Summary Gateway webhook
// @Description Inbound messages and delivery acknowledgements. Always answered with 200 once accepted.
// @Tags    webhooks
// @Accept  json
// @Produce json
// @Param   body body dto.ProviderWebhookRequest true "Gateway event"
// @Success 200 {object} dto.ProviderAckResponse
// @Router  /webhook/waapify [post]
func (h *WebhookHandler) HandleProviderWebhook(c *gin.Context) {
	var req dto.ProviderWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Ignoring malformed gateway webhook: %v", err)
		c.JSON(http.StatusOK, dto.ProviderAckResponse{Status: "ok"})
		return
	}

	event := &domain.ProviderEvent{
		Type:       strings.ToLower(strings.TrimSpace(req.Type)),
		InstanceID: req.Data.InstanceID,
		From:       utils.FirstNonEmpty(req.Data.From, req.Data.Number),
		Message:    utils.FirstNonEmpty(req.Data.Message, req.Data.Text),
		MessageID:  req.Data.ID,
		Status:     req.Data.Status,
		ReceivedAt: time.Now(),
	}

	if err := h.inbound.Submit(h.RequestCtx(c), event); err != nil {
		h.logger.Warnf("Gateway event not processed: %v", err)
	}

	c.JSON(http.StatusOK, dto.ProviderAckResponse{Status: "ok"})
}
