package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/crm"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

const defaultInboundTimeout = 60 * time.Second

//go:generate mockery --name InboundQueue --output ../mocks
type InboundQueue interface {
	SendInboundEvent(ctx context.Context, event *domain.ProviderEvent) error
}

// InboundService handles events pushed by the messaging gateway. Events of one
// gateway instance are processed in arrival order.
type InboundService struct {
	resolver  *TenantResolver
	responder *AutoResponder
	tokens    *CRMTokens
	crm       CRMClient
	log       *DeliveryLog
	logger    *logger.Logger
	queue     InboundQueue
	executor  *SerialExecutor
	timeout   time.Duration
}

func NewInboundService(
	resolver *TenantResolver,
	responder *AutoResponder,
	tokens *CRMTokens,
	crmClient CRMClient,
	log *DeliveryLog,
	logger *logger.Logger,
) *InboundService {
	return &InboundService{
		resolver:  resolver,
		responder: responder,
		tokens:    tokens,
		crm:       crmClient,
		log:       log,
		logger:    logger,
		timeout:   defaultInboundTimeout,
	}
}

// UseQueue hands events to a FIFO queue grouped by gateway instance.
func (s *InboundService) UseQueue(queue InboundQueue) {
	s.queue = queue
}

// UseExecutor processes events in process, serialized per gateway instance.
func (s *InboundService) UseExecutor(executor *SerialExecutor) {
	s.executor = executor
}

// Submit accepts an event for background processing. Without a queue or an
// executor the event is processed before Submit returns.
func (s *InboundService) Submit(ctx context.Context, event *domain.ProviderEvent) error {
	if event.InstanceID == "" {
		return missingFields("instance_id")
	}

	switch {
	case s.queue != nil:
		if err := s.queue.SendInboundEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to enqueue inbound event: %w", err)
		}
		return nil
	case s.executor != nil:
		return s.executor.Submit(event.InstanceID, func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if err := s.Process(ctx, event); err != nil {
				s.logger.Error("Failed to process inbound event", err, zap.String("instance_id", event.InstanceID))
			}
		})
	default:
		return s.Process(ctx, event)
	}
}

// Process handles one event. Only infrastructure failures are returned, so a
// queue consumer may redeliver; best-effort steps are logged.
func (s *InboundService) Process(ctx context.Context, event *domain.ProviderEvent) error {
	switch event.Type {
	case domain.ProviderEventMessage:
		return s.handleMessage(ctx, event)
	case domain.ProviderEventAck:
		return s.handleAck(ctx, event)
	default:
		s.logger.Info("Ignoring provider event", zap.String("type", event.Type), zap.String("instance_id", event.InstanceID))
		return nil
	}
}

func (s *InboundService) handleMessage(ctx context.Context, event *domain.ProviderEvent) error {
	body := strings.TrimSpace(utils.StripControlChars(event.Message))
	if event.From == "" || body == "" {
		s.logger.Warn("Dropping provider message without sender or body", zap.String("instance_id", event.InstanceID))
		return nil
	}

	tenant, err := s.resolver.ResolveByGatewayInstance(ctx, event.InstanceID)
	if err != nil {
		return err
	}
	if tenant == nil {
		s.logger.Warn("No tenant for gateway instance", zap.String("instance_id", event.InstanceID))
		return nil
	}

	if s.responder != nil {
		if _, err := s.responder.Respond(ctx, tenant, event.From, body); err != nil {
			s.logger.Warn("Auto-response skipped",
				zap.String("tenant", tenant.Key()),
				zap.Error(err))
		}
	}

	if err := s.forward(ctx, tenant, event.From, body); err != nil {
		s.logger.Error("Failed to forward inbound message to CRM", err, zap.String("tenant", tenant.Key()))
	}
	return nil
}

// forward appends the message to the contact's CRM conversation, creating the
// contact when needed.
func (s *InboundService) forward(ctx context.Context, tenant *Tenant, from, body string) error {
	installation := tenant.Installation
	if installation.LocationID == "" {
		return errors.New("installation has no location to forward to")
	}

	token, err := s.tokens.AccessToken(ctx, installation)
	if err != nil {
		return err
	}

	phone := "+" + utils.DigitsOnly(from)
	contactID, err := s.crm.FindOrCreateContact(ctx, token, installation.LocationID, phone)
	if err != nil {
		return err
	}

	return s.crm.PostInboundMessage(ctx, token, crm.InboundMessage{
		ContactID:  contactID,
		LocationID: installation.LocationID,
		Message:    body,
	})
}

func (s *InboundService) handleAck(ctx context.Context, event *domain.ProviderEvent) error {
	status := ackStatus(event.Status)
	if event.MessageID == "" || status == "" {
		return nil
	}

	tenant, err := s.resolver.ResolveByGatewayInstance(ctx, event.InstanceID)
	if err != nil {
		return err
	}
	if tenant == nil {
		s.logger.Warn("Dropping ack for unknown gateway instance",
			zap.String("instance_id", event.InstanceID),
			zap.String("message_id", event.MessageID))
		return nil
	}

	installation := tenant.Installation
	updated, err := s.log.MarkStatus(ctx, installation.CompanyID, installation.LocationID, event.MessageID, status)
	if err != nil {
		return err
	}
	if updated {
		s.logger.Info("Message status updated",
			zap.String("tenant", tenant.Key()),
			zap.String("message_id", event.MessageID),
			zap.String("status", string(status)))
	}
	return nil
}

func ackStatus(raw string) domain.MessageStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "delivered", "delivery_ack", "read", "played":
		return domain.MessageStatusDelivered
	case "failed", "error":
		return domain.MessageStatusFailed
	case "sent", "server_ack":
		return domain.MessageStatusSent
	default:
		return ""
	}
}
