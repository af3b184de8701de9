package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/crm"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

const deliveryCallbackTimeout = 15 * time.Second

// OutboundRequest is a CRM request to send one message.
type OutboundRequest struct {
	ContactID  string
	LocationID string
	CompanyID  string
	Type       string
	Phone      string
	Message    string
	MessageID  string
	MediaURL   string
	MediaName  string
}

type OutboundResult struct {
	ConversationID string
	MessageID      string
	Status         domain.MessageStatus
	DeliveredAt    time.Time
	Record         *domain.MessageRecord
	// LogErr is set when the message was sent but its record could not be
	// stored.
	LogErr error
}

// OutboundService runs the synchronous CRM to gateway send path.
type OutboundService struct {
	resolver   *TenantResolver
	limiter    *RateLimiter
	dispatcher *Dispatcher
	log        *DeliveryLog
	tokens     *CRMTokens
	crm        CRMClient
	logger     *logger.Logger
	now        func() time.Time
	goAsync    func(fn func())
}

func NewOutboundService(
	resolver *TenantResolver,
	limiter *RateLimiter,
	dispatcher *Dispatcher,
	log *DeliveryLog,
	tokens *CRMTokens,
	crmClient CRMClient,
	logger *logger.Logger,
) *OutboundService {
	return &OutboundService{
		resolver:   resolver,
		limiter:    limiter,
		dispatcher: dispatcher,
		log:        log,
		tokens:     tokens,
		crm:        crmClient,
		logger:     logger,
		now:        time.Now,
		goAsync:    func(fn func()) { go fn() },
	}
}

func validateOutbound(req OutboundRequest) error {
	var missing []string
	if req.ContactID == "" {
		missing = append(missing, "contactId")
	}
	if req.LocationID == "" {
		missing = append(missing, "locationId")
	}
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if req.Phone == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(req.Message) == "" && req.MediaURL == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return missingFields(missing...)
	}

	switch strings.ToLower(req.Type) {
	case "sms", "whatsapp":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMessageType, req.Type)
	}
}

// Send validates, resolves, rate limits, dispatches and records one message.
// Every failure after tenant resolution leaves a failed record behind.
func (s *OutboundService) Send(ctx context.Context, req OutboundRequest) (*OutboundResult, error) {
	if err := validateOutbound(req); err != nil {
		return nil, err
	}

	tenant, err := s.resolver.Resolve(ctx, req.CompanyID, req.LocationID)
	if err != nil {
		return nil, err
	}

	record := &domain.MessageRecord{
		InstallationID: tenant.Installation.ID,
		CompanyID:      tenant.Installation.CompanyID,
		LocationID:     tenant.Installation.LocationID,
		CRMMessageID:   utils.FirstNonEmpty(req.MessageID, "msg_"+uuid.New().String()),
		Recipient:      req.Phone,
		Body:           utils.StripControlChars(req.Message),
		Kind:           domain.MessageKindText,
		Status:         domain.MessageStatusPending,
	}
	if req.MediaURL != "" {
		record.Kind = domain.MessageKindMedia
		record.MediaURL = &req.MediaURL
		if req.MediaName != "" {
			record.Filename = &req.MediaName
		}
	}

	decision, err := s.limiter.CheckAndConsume(ctx, tenant.Key(), tenant.Installation.RateLimit)
	if err != nil {
		s.recordFailure(ctx, record, err)
		return nil, err
	}
	if !decision.Allowed {
		rateErr := &RateLimitedError{Limit: decision.Limit, RetryAfter: decision.RetryAfter}
		s.recordFailure(ctx, record, rateErr)
		return nil, rateErr
	}

	result := s.dispatcher.Send(ctx, tenant.ProviderConfig, DispatchRequest{
		Recipient: req.Phone,
		Body:      record.Body,
		MediaURL:  req.MediaURL,
		Filename:  req.MediaName,
	})
	if result.Recipient != "" {
		record.Recipient = result.Recipient
	}
	if !result.Success {
		s.recordFailure(ctx, record, result.Err)
		return nil, result.Err
	}

	sentAt := s.now()
	record.Status = domain.MessageStatusSent
	record.SentAt = &sentAt
	if result.ProviderMessageID != "" {
		record.ProviderMessageID = &result.ProviderMessageID
	}
	logErr := s.log.Record(ctx, record)
	if logErr != nil {
		s.logger.Error("Failed to record sent message", logErr,
			zap.String("tenant", tenant.Key()),
			zap.String("message_id", record.CRMMessageID))
	}

	s.logger.Info("Message dispatched",
		zap.String("tenant", tenant.Key()),
		zap.String("message_id", record.CRMMessageID),
		zap.String("kind", string(record.Kind)),
		zap.Int("remaining", decision.Remaining))

	installation := tenant.Installation
	notice := crm.DeliveryNotice{
		LocationID:  req.LocationID,
		MessageID:   record.CRMMessageID,
		Status:      string(domain.MessageStatusDelivered),
		PhoneNumber: record.Recipient,
		Timestamp:   sentAt,
	}
	callbackCtx := context.WithoutCancel(ctx)
	s.goAsync(func() { s.notifyDelivery(callbackCtx, installation, notice) })

	return &OutboundResult{
		ConversationID: fmt.Sprintf("conv_%s_%s", req.LocationID, req.ContactID),
		MessageID:      record.CRMMessageID,
		Status:         domain.MessageStatusSent,
		DeliveredAt:    sentAt,
		Record:         record,
		LogErr:         logErr,
	}, nil
}

func (s *OutboundService) recordFailure(ctx context.Context, record *domain.MessageRecord, cause error) {
	message := cause.Error()
	record.Status = domain.MessageStatusFailed
	record.Error = &message

	if err := s.log.Record(ctx, record); err != nil {
		s.logger.Error("Failed to record failed message", err,
			zap.String("tenant", record.TenantKey()),
			zap.String("message_id", record.CRMMessageID))
	}
	s.logger.Warn("Message dispatch failed",
		zap.String("tenant", record.TenantKey()),
		zap.String("message_id", record.CRMMessageID),
		zap.String("error", message))
}

// notifyDelivery posts the CRM delivery callback once. Failures are logged.
func (s *OutboundService) notifyDelivery(ctx context.Context, installation *domain.Installation, notice crm.DeliveryNotice) {
	ctx, cancel := context.WithTimeout(ctx, deliveryCallbackTimeout)
	defer cancel()

	token, err := s.tokens.AccessToken(ctx, installation)
	if err != nil {
		if errors.Is(err, ErrNoCRMToken) {
			s.logger.Warn("Skipping delivery callback without CRM token", zap.String("tenant", installation.TenantKey()))
			return
		}
		s.logger.Error("Failed to obtain CRM token for delivery callback", err, zap.String("tenant", installation.TenantKey()))
		return
	}

	if err := s.crm.NotifyDelivery(ctx, token, notice); err != nil {
		s.logger.Error("Delivery callback failed", err,
			zap.String("tenant", installation.TenantKey()),
			zap.String("message_id", notice.MessageID))
	}
}
