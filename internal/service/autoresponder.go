package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/llm"
	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

//go:generate mockery --name LanguageModel --output ../mocks
type LanguageModel interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// MatchKeywords returns the keywords contained in text, ignoring case, in
// configuration order. No keywords means no match.
func MatchKeywords(text string, keywords []string) []string {
	matched := []string{}
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

func BuildSystemPrompt(businessContext, persona string, matched []string) string {
	var b strings.Builder
	b.WriteString(businessContext)
	b.WriteString("\n\nYour persona: ")
	b.WriteString(persona)
	if len(matched) > 0 {
		b.WriteString("\n\nThe customer mentioned: ")
		b.WriteString(strings.Join(matched, ", "))
	}
	b.WriteString("\n\nInstructions: Reply to the customer's WhatsApp message helpfully and accurately. ")
	b.WriteString("Keep the reply concise (under 200 words) and do not invent prices or policies.")
	return b.String()
}

// AutoResponder answers keyword-matching inbound messages with a generated
// reply sent back through the dispatcher.
type AutoResponder struct {
	repo       repository.PostgresRepository
	model      LanguageModel
	limiter    *RateLimiter
	dispatcher *Dispatcher
	log        *DeliveryLog
	logger     *logger.Logger
	now        func() time.Time
}

func NewAutoResponder(
	repo repository.PostgresRepository,
	model LanguageModel,
	limiter *RateLimiter,
	dispatcher *Dispatcher,
	log *DeliveryLog,
	logger *logger.Logger,
) *AutoResponder {
	return &AutoResponder{
		repo:       repo,
		model:      model,
		limiter:    limiter,
		dispatcher: dispatcher,
		log:        log,
		logger:     logger,
		now:        time.Now,
	}
}

// GetConfig returns the tenant's config, or the disabled defaults.
func (r *AutoResponder) GetConfig(ctx context.Context, companyID, locationID string) (*domain.AutoResponseConfig, error) {
	config, err := r.repo.AutoResponse().GetByTenant(ctx, companyID, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load auto-response config: %w", err)
	}
	if config == nil {
		return domain.NewAutoResponseConfig(companyID, locationID), nil
	}
	return config, nil
}

// UpdateConfig applies changes to the tenant's config and stores it.
func (r *AutoResponder) UpdateConfig(ctx context.Context, companyID, locationID string, apply func(*domain.AutoResponseConfig)) (*domain.AutoResponseConfig, error) {
	installation, err := r.repo.Installation().GetByTenant(ctx, companyID, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load installation: %w", err)
	}
	if installation == nil {
		return nil, ErrNotInstalled
	}

	config, err := r.GetConfig(ctx, companyID, locationID)
	if err != nil {
		return nil, err
	}
	apply(config)
	config.InstallationID = installation.ID
	if config.Model == "" {
		config.Model = domain.DefaultAIModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = domain.DefaultAIMaxTokens
	}

	if err := r.repo.AutoResponse().Save(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save auto-response config: %w", err)
	}
	return config, nil
}

// GenerateReply asks the language model for a reply. Every failure is a
// *ModelError.
func (r *AutoResponder) GenerateReply(ctx context.Context, config *domain.AutoResponseConfig, customerMessage string, matched []string) (string, error) {
	if r.model == nil {
		return "", &ModelError{Message: "no language model configured"}
	}

	reply, err := r.model.Complete(ctx, llm.CompletionRequest{
		APIKey:       config.APIKey,
		Model:        config.Model,
		SystemPrompt: BuildSystemPrompt(config.Context, config.Persona, matched),
		UserMessage:  customerMessage,
		MaxTokens:    config.MaxTokens,
		Temperature:  config.Temperature,
	})
	if err != nil {
		return "", &ModelError{Message: err.Error()}
	}
	return reply, nil
}

// Respond sends a generated reply to from when the tenant's auto-response is
// enabled and body matches a keyword. It returns nil when nothing triggered.
func (r *AutoResponder) Respond(ctx context.Context, tenant *Tenant, from, body string) (*domain.MessageRecord, error) {
	installation := tenant.Installation
	config, err := r.GetConfig(ctx, installation.CompanyID, installation.LocationID)
	if err != nil {
		return nil, err
	}
	if !config.Enabled {
		return nil, nil
	}

	matched := MatchKeywords(body, config.KeywordList())
	if len(matched) == 0 {
		return nil, nil
	}

	reply, err := r.GenerateReply(ctx, config, body, matched)
	if err != nil {
		return nil, err
	}

	record, err := r.Deliver(ctx, tenant, from, reply)
	if err != nil {
		return record, err
	}

	r.logger.Info("Auto-response sent",
		zap.String("tenant", tenant.Key()),
		zap.Strings("keywords", matched))
	return record, nil
}

// Deliver sends a generated reply to the tenant's contact and records it as
// an ai_response. The record is returned on dispatch failures too.
func (r *AutoResponder) Deliver(ctx context.Context, tenant *Tenant, to, reply string) (*domain.MessageRecord, error) {
	installation := tenant.Installation
	decision, err := r.limiter.CheckAndConsume(ctx, tenant.Key(), installation.RateLimit)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &RateLimitedError{Limit: decision.Limit, RetryAfter: decision.RetryAfter}
	}

	record := &domain.MessageRecord{
		InstallationID: installation.ID,
		CompanyID:      installation.CompanyID,
		LocationID:     installation.LocationID,
		CRMMessageID:   "ai_" + uuid.New().String(),
		Recipient:      to,
		Body:           reply,
		Kind:           domain.MessageKindAIResponse,
		Status:         domain.MessageStatusPending,
	}

	result := r.dispatcher.Send(ctx, tenant.ProviderConfig, DispatchRequest{Recipient: to, Body: reply})
	if result.Recipient != "" {
		record.Recipient = result.Recipient
	}
	if result.Success {
		sentAt := r.now()
		record.Status = domain.MessageStatusSent
		record.SentAt = &sentAt
		if result.ProviderMessageID != "" {
			record.ProviderMessageID = &result.ProviderMessageID
		}
	} else {
		message := result.Err.Error()
		record.Status = domain.MessageStatusFailed
		record.Error = &message
	}

	if err := r.log.Record(ctx, record); err != nil {
		r.logger.Error("Failed to record auto-response", err, zap.String("tenant", tenant.Key()))
	}
	if !result.Success {
		return record, result.Err
	}
	return record, nil
}
