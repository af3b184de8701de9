package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/gateway"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

// ActionCredentials select the gateway instance of a workflow action. Inline
// credentials take precedence over the tenant's stored ones.
type ActionCredentials struct {
	InstanceID  string
	AccessToken string
	CompanyID   string
	LocationID  string
}

type ActionSendRequest struct {
	ActionCredentials
	Number   string
	Message  string
	MediaURL string
	Filename string
	TestMode bool
}

type ActionSendResult struct {
	Success    bool
	TestMode   bool
	PhoneValid bool
	MessageID  string
	Recipient  string
	Status     domain.MessageStatus
	Timestamp  time.Time
}

type ActionCheckRequest struct {
	ActionCredentials
	Number string
}

type PhoneCheckResult struct {
	Number     string
	Registered bool
}

type ActionAIRequest struct {
	CustomerMessage string
	Keywords        []string
	Context         string
	Persona         string
	CompanyID       string
	LocationID      string
	Phone           string
}

// ActionAIResult reports a generated reply. SendError is set when a phone was
// given but the reply could not be delivered.
type ActionAIResult struct {
	Triggered bool
	Matched   []string
	Reply     string
	Sent      bool
	SendError string
	Record    *domain.MessageRecord
}

// ActionService runs the CRM workflow actions. Sends for a known tenant are
// rate limited and recorded like webhook sends.
type ActionService struct {
	resolver   *TenantResolver
	limiter    *RateLimiter
	dispatcher *Dispatcher
	log        *DeliveryLog
	responder  *AutoResponder
	gateway    GatewayClient
	logger     *logger.Logger
	now        func() time.Time
}

func NewActionService(
	resolver *TenantResolver,
	limiter *RateLimiter,
	dispatcher *Dispatcher,
	log *DeliveryLog,
	responder *AutoResponder,
	gatewayClient GatewayClient,
	logger *logger.Logger,
) *ActionService {
	return &ActionService{
		resolver:   resolver,
		limiter:    limiter,
		dispatcher: dispatcher,
		log:        log,
		responder:  responder,
		gateway:    gatewayClient,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ActionService) SendText(ctx context.Context, req ActionSendRequest) (*ActionSendResult, error) {
	if req.Number == "" || req.Message == "" {
		return nil, missingFields("number", "message")
	}
	req.MediaURL = ""
	req.Filename = ""
	return s.send(ctx, req, domain.MessageKindText)
}

func (s *ActionService) SendMedia(ctx context.Context, req ActionSendRequest) (*ActionSendResult, error) {
	if req.Number == "" || req.Message == "" || req.MediaURL == "" {
		return nil, missingFields("number", "message", "media_url")
	}
	return s.send(ctx, req, domain.MessageKindMedia)
}

func (s *ActionService) send(ctx context.Context, req ActionSendRequest, kind domain.MessageKind) (*ActionSendResult, error) {
	number, phoneErr := s.dispatcher.NormalizeRecipient(req.Number)
	if req.TestMode {
		return &ActionSendResult{
			Success:    true,
			TestMode:   true,
			PhoneValid: phoneErr == nil,
			MessageID:  "test_" + uuid.New().String(),
			Recipient:  number,
			Timestamp:  s.now(),
		}, nil
	}
	if phoneErr != nil {
		return nil, phoneErr
	}

	config, tenant, err := s.credentials(ctx, req.ActionCredentials)
	if err != nil {
		return nil, err
	}

	var record *domain.MessageRecord
	if tenant != nil {
		record = &domain.MessageRecord{
			InstallationID: tenant.Installation.ID,
			CompanyID:      tenant.Installation.CompanyID,
			LocationID:     tenant.Installation.LocationID,
			CRMMessageID:   string(kind) + "_" + uuid.New().String(),
			Recipient:      number,
			Body:           utils.StripControlChars(req.Message),
			Kind:           kind,
			Status:         domain.MessageStatusPending,
		}
		if req.MediaURL != "" {
			record.MediaURL = &req.MediaURL
			if req.Filename != "" {
				record.Filename = &req.Filename
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
	}

	result := s.dispatcher.Send(ctx, config, DispatchRequest{
		Recipient: number,
		Body:      utils.StripControlChars(req.Message),
		MediaURL:  req.MediaURL,
		Filename:  req.Filename,
	})
	if !result.Success {
		if record != nil {
			s.recordFailure(ctx, record, result.Err)
		}
		return nil, result.Err
	}

	sentAt := s.now()
	out := &ActionSendResult{
		Success:   true,
		MessageID: result.ProviderMessageID,
		Recipient: result.Recipient,
		Status:    domain.MessageStatusSent,
		Timestamp: sentAt,
	}
	if record == nil {
		return out, nil
	}

	record.Status = domain.MessageStatusSent
	record.SentAt = &sentAt
	if result.ProviderMessageID != "" {
		record.ProviderMessageID = &result.ProviderMessageID
	} else {
		out.MessageID = record.CRMMessageID
	}
	if err := s.log.Record(ctx, record); err != nil {
		s.logger.Error("Failed to record action message", err, zap.String("tenant", tenant.Key()))
	}
	return out, nil
}

// CheckPhone asks the gateway whether number has a WhatsApp account.
func (s *ActionService) CheckPhone(ctx context.Context, req ActionCheckRequest) (*PhoneCheckResult, error) {
	if req.Number == "" {
		return nil, missingFields("number")
	}
	number, err := s.dispatcher.NormalizeRecipient(req.Number)
	if err != nil {
		return nil, err
	}

	config, _, err := s.credentials(ctx, req.ActionCredentials)
	if err != nil {
		return nil, err
	}

	checkCtx, cancel := context.WithTimeout(ctx, connectionTestTimeout)
	defer cancel()

	resp, err := s.gateway.Send(checkCtx, gateway.SendRequest{
		Number:      number,
		Type:        gateway.TypeCheckPhone,
		InstanceID:  config.InstanceID,
		AccessToken: config.AccessToken,
	})
	if err != nil {
		if isTimeout(err) {
			return nil, ErrGatewayTimeout
		}
		return nil, &GatewayError{Message: err.Error()}
	}
	if resp.HTTPStatus >= 400 || resp.Status == "error" {
		return nil, &GatewayError{Message: resp.ErrorMessage()}
	}

	return &PhoneCheckResult{Number: number, Registered: resp.Registered}, nil
}

// AIReply generates a reply to a customer message when it matches one of the
// given keywords, or always when no keywords are given. With a phone the
// reply is also sent through the tenant's gateway instance.
func (s *ActionService) AIReply(ctx context.Context, req ActionAIRequest) (*ActionAIResult, error) {
	if req.CustomerMessage == "" || req.CompanyID == "" || req.LocationID == "" {
		return nil, missingFields("customerMessage", "companyId", "locationId")
	}

	matched := MatchKeywords(req.CustomerMessage, req.Keywords)
	if len(req.Keywords) > 0 && len(matched) == 0 {
		return &ActionAIResult{Triggered: false, Matched: matched}, nil
	}

	config, err := s.responder.GetConfig(ctx, req.CompanyID, req.LocationID)
	if err != nil {
		return nil, err
	}
	config.Context = utils.FirstNonEmpty(req.Context, config.Context)
	config.Persona = utils.FirstNonEmpty(req.Persona, config.Persona)

	reply, err := s.responder.GenerateReply(ctx, config, req.CustomerMessage, matched)
	if err != nil {
		return nil, err
	}

	result := &ActionAIResult{Triggered: true, Matched: matched, Reply: reply}
	if req.Phone == "" {
		return result, nil
	}

	tenant, err := s.resolver.Resolve(ctx, req.CompanyID, req.LocationID)
	if err != nil {
		if errors.Is(err, ErrNotInstalled) || errors.Is(err, ErrNotConfigured) {
			result.SendError = err.Error()
			return result, nil
		}
		return nil, err
	}

	record, err := s.responder.Deliver(ctx, tenant, req.Phone, reply)
	result.Record = record
	if err != nil {
		s.logger.Warn("AI action reply not delivered", zap.String("tenant", tenant.Key()), zap.Error(err))
		result.SendError = err.Error()
		return result, nil
	}
	result.Sent = true
	return result, nil
}

// credentials merges inline credentials with the stored config of the tenant,
// when the tenant is known. The tenant is nil for inline-only calls.
func (s *ActionService) credentials(ctx context.Context, creds ActionCredentials) (*domain.ProviderConfig, *Tenant, error) {
	var tenant *Tenant
	if creds.CompanyID != "" && creds.LocationID != "" {
		resolved, err := s.resolver.Resolve(ctx, creds.CompanyID, creds.LocationID)
		switch {
		case err == nil:
			tenant = resolved
		case errors.Is(err, ErrNotInstalled), errors.Is(err, ErrNotConfigured):
		default:
			return nil, nil, err
		}
	}

	config := &domain.ProviderConfig{InstanceID: creds.InstanceID, AccessToken: creds.AccessToken}
	if tenant != nil {
		config.CompanyID = tenant.ProviderConfig.CompanyID
		config.LocationID = tenant.ProviderConfig.LocationID
		config.InstanceID = utils.FirstNonEmpty(creds.InstanceID, tenant.ProviderConfig.InstanceID)
		config.AccessToken = utils.FirstNonEmpty(creds.AccessToken, tenant.ProviderConfig.AccessToken)
	}
	if config.InstanceID == "" || config.AccessToken == "" {
		return nil, nil, missingFields("instance_id", "access_token")
	}
	return config, tenant, nil
}

func (s *ActionService) recordFailure(ctx context.Context, record *domain.MessageRecord, cause error) {
	message := cause.Error()
	record.Status = domain.MessageStatusFailed
	record.Error = &message
	if err := s.log.Record(ctx, record); err != nil {
		s.logger.Error("Failed to record failed action message", err, zap.String("tenant", record.TenantKey()))
	}
}
