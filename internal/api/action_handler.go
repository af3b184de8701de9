package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/service"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

type ActionRunner interface {
	SendText(ctx context.Context, req service.ActionSendRequest) (*service.ActionSendResult, error)
	SendMedia(ctx context.Context, req service.ActionSendRequest) (*service.ActionSendResult, error)
	CheckPhone(ctx context.Context, req service.ActionCheckRequest) (*service.PhoneCheckResult, error)
	AIReply(ctx context.Context, req service.ActionAIRequest) (*service.ActionAIResult, error)
}

// ActionHandler serves the CRM workflow actions.
type ActionHandler struct {
	*BaseHandler
	actions ActionRunner
	logger  *logger.Logger
}

func NewActionHandler(actions ActionRunner, logger *logger.Logger) *ActionHandler {
	return &ActionHandler{
		actions: actions,
		logger:  logger,
	}
}

// SendText Send a WhatsApp text from a workflow
// @Summary Send WhatsApp text action
// @Description Uses inline instance_id/access_token or the stored credentials of companyId/locationId. test_mode validates without sending.
// @Tags    actions
// @Accept  json
// @Produce json
// @Param   body body dto.ActionSendRequest true "Action payload"
// @Success 200 {object} dto.ActionSendResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 429 {object} dto.WebhookErrorResponse
// @Failure 500 {object} dto.WebhookErrorResponse
// @Router  /action/send-whatsapp-text [post]
func (h *ActionHandler) SendText(c *gin.Context) {
	h.send(c, "Send WhatsApp Text", h.actions.SendText)
}

// SendMedia Send a WhatsApp media message from a workflow
// @Summary Send WhatsApp media action
// @Tags    actions
// @Accept  json
// @Produce json
// @Param   body body dto.ActionSendRequest true "Action payload"
// @Success 200 {object} dto.ActionSendResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 429 {object} dto.WebhookErrorResponse
// @Failure 500 {object} dto.WebhookErrorResponse
// @Router  /action/send-whatsapp-media [post]
func (h *ActionHandler) SendMedia(c *gin.Context) {
	h.send(c, "Send WhatsApp Media", h.actions.SendMedia)
}

func (h *ActionHandler) send(
	c *gin.Context,
	action string,
	run func(context.Context, service.ActionSendRequest) (*service.ActionSendResult, error),
) {
	var req dto.ActionSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookErrorResponse{Error: err.Error(), ErrorCode: codeMissingFields})
		return
	}

	result, err := run(h.RequestCtx(c), service.ActionSendRequest{
		ActionCredentials: service.ActionCredentials{
			InstanceID:  req.InstanceID,
			AccessToken: req.AccessToken,
			CompanyID:   req.CompanyID,
			LocationID:  req.LocationID,
		},
		Number:   req.Number,
		Message:  req.Message,
		MediaURL: req.MediaURL,
		Filename: req.Filename,
		TestMode: req.TestMode,
	})
	if err != nil {
		writeWebhookError(c, err, "")
		return
	}

	if result.TestMode {
		c.JSON(http.StatusOK, dto.ActionTestModeResponse{
			Success:    true,
			TestMode:   true,
			Action:     action,
			MessageID:  result.MessageID,
			Recipient:  result.Recipient,
			PhoneValid: result.PhoneValid,
			Timestamp:  result.Timestamp,
		})
		return
	}

	c.JSON(http.StatusOK, dto.ActionSendResponse{
		Success:   true,
		MessageID: result.MessageID,
		Recipient: result.Recipient,
		Status:    string(result.Status),
		Timestamp: result.Timestamp,
	})
}

// CheckPhone Check whether a number has WhatsApp
// @Summary Check WhatsApp phone action
// @Tags    actions
// @Accept  json
// @Produce json
// @Param   body body dto.ActionCheckPhoneRequest true "Action payload"
// @Success 200 {object} dto.CheckPhoneResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 500 {object} dto.WebhookErrorResponse
// @Router  /action/check-whatsapp-phone [post]
func (h *ActionHandler) CheckPhone(c *gin.Context) {
	var req dto.ActionCheckPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookErrorResponse{Error: err.Error(), ErrorCode: codeMissingFields})
		return
	}

	result, err := h.actions.CheckPhone(h.RequestCtx(c), service.ActionCheckRequest{
		ActionCredentials: service.ActionCredentials{
			InstanceID:  req.InstanceID,
			AccessToken: req.AccessToken,
			CompanyID:   req.CompanyID,
			LocationID:  req.LocationID,
		},
		Number: req.Number,
	})
	if err != nil {
		writeWebhookError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.CheckPhoneResponse{
		Success:    true,
		Number:     result.Number,
		IsWhatsApp: result.Registered,
	})
}

// AIChatbotResponse Generate an AI reply from a workflow
// @Summary AI chatbot action
// @Description Generates a reply when customerMessage matches a keyword (or always without keywords) and sends it when phone is given
// @Tags    actions
// @Accept  json
// @Produce json
// @Param   body body dto.ActionAIRequest true "Action payload"
// @Success 200 {object} dto.AIActionResponse
// @Failure 400 {object} dto.WebhookErrorResponse
// @Failure 500 {object} dto.WebhookErrorResponse
// @Router  /action/ai-chatbot-response [post]
func (h *ActionHandler) AIChatbotResponse(c *gin.Context) {
	var req dto.ActionAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookErrorResponse{Error: err.Error(), ErrorCode: codeMissingFields})
		return
	}

	result, err := h.actions.AIReply(h.RequestCtx(c), service.ActionAIRequest{
		CustomerMessage: req.CustomerMessage,
		Keywords:        req.Keywords,
		Context:         req.Context,
		Persona:         req.Persona,
		CompanyID:       req.CompanyID,
		LocationID:      req.LocationID,
		Phone:           req.Phone,
	})
	if err != nil {
		writeWebhookError(c, err, "")
		return
	}

	resp := dto.AIActionResponse{
		Success:           true,
		Triggered:         result.Triggered,
		AIResponse:        result.Reply,
		TriggeredKeywords: result.Matched,
		WhatsAppSent:      result.Sent,
		SendError:         result.SendError,
	}
	if resp.TriggeredKeywords == nil {
		resp.TriggeredKeywords = []string{}
	}
	if result.Record != nil {
		resp.MessageID = result.Record.CRMMessageID
	}
	c.JSON(http.StatusOK, resp)
}
