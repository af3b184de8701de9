package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/gateway"
	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

const (
	ProviderStatusActive   = "active"
	ProviderStatusInactive = "inactive"
	ProviderStatusError    = "error"
)

// GroupMessage is a text or media message to a WhatsApp group.
type GroupMessage struct {
	GroupID  string
	Message  string
	MediaURL string
	Filename string
}

type ProviderService struct {
	repo     repository.PostgresRepository
	resolver *TenantResolver
	gateway  GatewayClient
	limiter  *RateLimiter
	log      *DeliveryLog
	logger   *logger.Logger
	timeout  time.Duration
	now      func() time.Time
}

func NewProviderService(
	repo repository.PostgresRepository,
	resolver *TenantResolver,
	gatewayClient GatewayClient,
	limiter *RateLimiter,
	log *DeliveryLog,
	logger *logger.Logger,
) *ProviderService {
	return &ProviderService{
		repo:     repo,
		resolver: resolver,
		gateway:  gatewayClient,
		limiter:  limiter,
		log:      log,
		logger:   logger,
		timeout:  defaultDispatchTimeout,
		now:      time.Now,
	}
}

// Status runs a live connection test and stores its result.
func (s *ProviderService) Status(ctx context.Context, companyID, locationID string) (*dto.ProviderStatusResponse, error) {
	config, err := s.repo.ProviderConfig().GetActive(ctx, companyID, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}
	if config == nil {
		return &dto.ProviderStatusResponse{Status: ProviderStatusInactive}, nil
	}

	testCtx, cancel := context.WithTimeout(ctx, connectionTestTimeout)
	testErr := s.gateway.CheckConnection(testCtx, config.AccessToken, config.InstanceID)
	cancel()

	testedAt := s.now()
	config.LastTestedAt = &testedAt
	config.TestStatus = domain.TestStatusSuccess
	if testErr != nil {
		config.TestStatus = domain.TestStatusFailed
	}
	if err := s.repo.ProviderConfig().Save(ctx, config); err != nil {
		s.logger.Warn("Failed to store connection test result", zap.String("tenant", config.TenantKey()), zap.Error(err))
	}

	resp := &dto.ProviderStatusResponse{
		Status:       ProviderStatusActive,
		InstanceID:   config.InstanceID,
		SenderNumber: config.SenderNumber,
		LastTestedAt: config.LastTestedAt,
		TestStatus:   config.TestStatus,
	}
	if testErr != nil {
		resp.Status = ProviderStatusError
		resp.Error = testErr.Error()
	}
	return resp, nil
}

func (s *ProviderService) PhoneNumbers(ctx context.Context, companyID, locationID string) ([]string, error) {
	config, err := s.repo.ProviderConfig().GetActive(ctx, companyID, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}
	if config == nil {
		return nil, ErrNotConfigured
	}
	if config.SenderNumber == "" {
		return []string{}, nil
	}
	return []string{config.SenderNumber}, nil
}

// QRCode returns the gateway's login QR code reply for the tenant's instance.
func (s *ProviderService) QRCode(ctx context.Context, companyID, locationID string) (json.RawMessage, error) {
	return s.instanceCall(ctx, companyID, locationID, s.gateway.QRCode)
}

// Reboot restarts the tenant's gateway instance.
func (s *ProviderService) Reboot(ctx context.Context, companyID, locationID string) (json.RawMessage, error) {
	body, err := s.instanceCall(ctx, companyID, locationID, s.gateway.Reboot)
	if err == nil {
		s.logger.Info("Gateway instance rebooted", zap.String("tenant", domain.TenantKey(companyID, locationID)))
	}
	return body, err
}

func (s *ProviderService) instanceCall(
	ctx context.Context,
	companyID, locationID string,
	call func(ctx context.Context, accessToken, instanceID string) (*gateway.InstanceResponse, error),
) (json.RawMessage, error) {
	config, err := s.repo.ProviderConfig().GetActive(ctx, companyID, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}
	if config == nil {
		return nil, ErrNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := call(callCtx, config.AccessToken, config.InstanceID)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrGatewayTimeout
		}
		return nil, &GatewayError{Message: err.Error()}
	}
	if resp.Failed() {
		return nil, &GatewayError{Message: resp.ErrorMessage()}
	}
	return resp.Body, nil
}

// SendGroup sends a message to a WhatsApp group through the tenant's
// instance. It is rate limited and recorded like a direct send.
func (s *ProviderService) SendGroup(ctx context.Context, companyID, locationID string, msg GroupMessage) (*domain.MessageRecord, error) {
	if msg.GroupID == "" || msg.Message == "" {
		return nil, missingFields("group_id", "message")
	}

	tenant, err := s.resolver.Resolve(ctx, companyID, locationID)
	if err != nil {
		return nil, err
	}

	body := utils.StripControlChars(msg.Message)
	record := &domain.MessageRecord{
		InstallationID: tenant.Installation.ID,
		CompanyID:      tenant.Installation.CompanyID,
		LocationID:     tenant.Installation.LocationID,
		CRMMessageID:   "group_" + uuid.New().String(),
		Recipient:      msg.GroupID,
		Body:           body,
		Kind:           domain.MessageKindText,
		Status:         domain.MessageStatusPending,
	}
	req := gateway.GroupSendRequest{
		GroupID:     msg.GroupID,
		Type:        gateway.TypeText,
		Message:     body,
		InstanceID:  tenant.ProviderConfig.InstanceID,
		AccessToken: tenant.ProviderConfig.AccessToken,
	}
	if msg.MediaURL != "" {
		record.Kind = domain.MessageKindMedia
		record.MediaURL = &msg.MediaURL
		req.Type = gateway.TypeMedia
		req.MediaURL = msg.MediaURL
		req.Filename = msg.Filename
		if msg.Filename != "" {
			record.Filename = &msg.Filename
		}
	}

	decision, err := s.limiter.CheckAndConsume(ctx, tenant.Key(), tenant.Installation.RateLimit)
	if err != nil {
		s.recordGroup(ctx, record, err)
		return nil, err
	}
	if !decision.Allowed {
		rateErr := &RateLimitedError{Limit: decision.Limit, RetryAfter: decision.RetryAfter}
		s.recordGroup(ctx, record, rateErr)
		return nil, rateErr
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.gateway.SendGroup(sendCtx, req)
	switch {
	case err != nil && isTimeout(err):
		err = ErrGatewayTimeout
	case err != nil:
		err = &GatewayError{Message: err.Error()}
	case !resp.Accepted():
		err = &GatewayError{Message: resp.ErrorMessage()}
	}
	if err != nil {
		s.recordGroup(ctx, record, err)
		return nil, err
	}

	sentAt := s.now()
	record.Status = domain.MessageStatusSent
	record.SentAt = &sentAt
	if id := resp.MessageID(); id != "" {
		record.ProviderMessageID = &id
	}
	s.recordGroup(ctx, record, nil)
	return record, nil
}

// recordGroup stores record, marking it failed when cause is set.
func (s *ProviderService) recordGroup(ctx context.Context, record *domain.MessageRecord, cause error) {
	if cause != nil {
		message := cause.Error()
		record.Status = domain.MessageStatusFailed
		record.Error = &message
	}
	if err := s.log.Record(ctx, record); err != nil {
		s.logger.Error("Failed to record group message", err, zap.String("tenant", record.TenantKey()))
	}
}
