package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/service"
)

type AutoResponseSettings interface {
	GetConfig(ctx context.Context, companyID, locationID string) (*domain.AutoResponseConfig, error)
	UpdateConfig(ctx context.Context, companyID, locationID string, apply func(*domain.AutoResponseConfig)) (*domain.AutoResponseConfig, error)
}

type ProviderInspector interface {
	Status(ctx context.Context, companyID, locationID string) (*dto.ProviderStatusResponse, error)
	PhoneNumbers(ctx context.Context, companyID, locationID string) ([]string, error)
	QRCode(ctx context.Context, companyID, locationID string) (json.RawMessage, error)
	Reboot(ctx context.Context, companyID, locationID string) (json.RawMessage, error)
	SendGroup(ctx context.Context, companyID, locationID string, msg service.GroupMessage) (*domain.MessageRecord, error)
}

type SnapshotWriter interface {
	Snapshot(ctx context.Context) (*dto.BackupResponse, error)
}

// SettingsHandler serves per-tenant auto-response and provider settings and
// the admin backup trigger.
type SettingsHandler struct {
	*BaseHandler
	autoResponse AutoResponseSettings
	provider     ProviderInspector
	backups      SnapshotWriter
}

func NewSettingsHandler(autoResponse AutoResponseSettings, provider ProviderInspector, backups SnapshotWriter) *SettingsHandler {
	return &SettingsHandler{
		autoResponse: autoResponse,
		provider:     provider,
		backups:      backups,
	}
}

// GetAutoResponse Get the tenant's auto-response settings
// @Summary Get auto-response settings
// @Tags    auto_response
// @Produce json
// @Success 200 {object} dto.AutoResponseResponse
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /auto-response [get]
func (h *SettingsHandler) GetAutoResponse(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	config, err := h.autoResponse.GetConfig(h.RequestCtx(c), companyID, locationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAutoResponseConfig(config))
}

// UpdateAutoResponse Update the tenant's auto-response settings
// @Summary Update auto-response settings
// @Description Only the fields present in the body change
// @Tags    auto_response
// @Accept  json
// @Produce json
// @Param   body body dto.UpdateAutoResponseRequest true "Settings"
// @Success 200 {object} dto.AutoResponseResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /auto-response [put]
func (h *SettingsHandler) UpdateAutoResponse(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	var req dto.UpdateAutoResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	config, err := h.autoResponse.UpdateConfig(h.RequestCtx(c), companyID, locationID, req.ApplyTo)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAutoResponseConfig(config))
}

// GetProviderStatus Test the tenant's gateway connection
// @Summary Provider status
// @Description Runs a live connection test: active, inactive (no credentials) or error
// @Tags    provider
// @Produce json
// @Success 200 {object} dto.ProviderStatusResponse
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /provider/status [get]
func (h *SettingsHandler) GetProviderStatus(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	status, err := h.provider.Status(h.RequestCtx(c), companyID, locationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetPhoneNumbers List the tenant's sender numbers
// @Summary Sender phone numbers
// @Tags    provider
// @Produce json
// @Success 200 {object} dto.PhoneNumbersResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Router  /provider/phone-numbers [get]
func (h *SettingsHandler) GetPhoneNumbers(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	numbers, err := h.provider.PhoneNumbers(h.RequestCtx(c), companyID, locationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PhoneNumbersResponse{PhoneNumbers: numbers})
}

// GetQRCode Fetch the login QR code of the tenant's gateway instance
// @Summary Gateway QR code
// @Description Returns the gateway's reply unchanged
// @Tags    provider
// @Produce json
// @Success 200 {object} object
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /provider/qr-code [get]
func (h *SettingsHandler) GetQRCode(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	body, err := h.provider.QRCode(h.RequestCtx(c), companyID, locationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// RebootInstance Restart the tenant's gateway instance
// @Summary Reboot gateway instance
// @Tags    provider
// @Produce json
// @Success 200 {object} object
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /provider/reboot [post]
func (h *SettingsHandler) RebootInstance(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	body, err := h.provider.Reboot(h.RequestCtx(c), companyID, locationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// SendGroupMessage Send a message to a WhatsApp group
// @Summary Send group message
// @Tags    provider
// @Accept  json
// @Produce json
// @Param   body body dto.GroupMessageRequest true "Group message"
// @Success 200 {object} dto.GroupMessageResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 429 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /provider/send-group [post]
func (h *SettingsHandler) SendGroupMessage(c *gin.Context) {
	companyID, locationID, err := h.Tenant(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
		return
	}

	var req dto.GroupMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	record, err := h.provider.SendGroup(h.RequestCtx(c), companyID, locationID, service.GroupMessage{
		GroupID:  req.GroupID,
		Message:  req.Message,
		MediaURL: req.MediaURL,
		Filename: req.Filename,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GroupMessageResponse{
		Success:   true,
		MessageID: record.CRMMessageID,
		Status:    string(record.Status),
	})
}

// CreateBackup Snapshot installations and provider credentials to object storage
// @Summary Create backup
// @Tags    admin
// @Produce json
// @Success 201 {object} dto.BackupResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /backups [post]
func (h *SettingsHandler) CreateBackup(c *gin.Context) {
	backup, err := h.backups.Snapshot(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, backup)
}
