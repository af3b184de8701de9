package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/mocks"
	"github.com/kingrain94/waapify-relay/internal/repository/memory"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

// fixture wires mocked credential repositories with in-memory message and
// rate-limit stores.
type fixture struct {
	repo          *mocks.Repository
	installations *mocks.InstallationRepository
	configs       *mocks.ProviderConfigRepository
	autoResponses *mocks.AutoResponseRepository
	messages      *memory.MessageLogStore
	counters      *memory.RateLimitStore
	gateway       *mocks.GatewayClient
	crm           *mocks.CRMClient
	model         *mocks.LanguageModel
	logger        *logger.Logger

	resolver   *TenantResolver
	limiter    *RateLimiter
	dispatcher *Dispatcher
	log        *DeliveryLog
	tokens     *CRMTokens
}

func newFixture() *fixture {
	f := &fixture{
		repo:          new(mocks.Repository),
		installations: new(mocks.InstallationRepository),
		configs:       new(mocks.ProviderConfigRepository),
		autoResponses: new(mocks.AutoResponseRepository),
		messages:      memory.NewMessageLogStore(),
		counters:      memory.NewRateLimitStore(),
		gateway:       new(mocks.GatewayClient),
		crm:           new(mocks.CRMClient),
		model:         new(mocks.LanguageModel),
		logger:        &logger.Logger{Logger: zap.NewNop()},
	}

	f.repo.On("Installation").Return(f.installations).Maybe()
	f.repo.On("ProviderConfig").Return(f.configs).Maybe()
	f.repo.On("AutoResponse").Return(f.autoResponses).Maybe()
	f.repo.On("MessageLog").Return(f.messages).Maybe()
	f.repo.On("RateLimit").Return(f.counters).Maybe()
	f.repo.On("Search").Return(nil).Maybe()

	f.resolver = NewTenantResolver(f.repo)
	f.limiter = NewRateLimiter(f.counters, 10)
	f.dispatcher = NewDispatcher(f.gateway, utils.DefaultPhoneNormalizer(), time.Second)
	f.log = NewDeliveryLog(f.repo, nil, f.logger)
	f.tokens = NewCRMTokens(f.repo, f.crm, f.logger)
	return f
}

func (f *fixture) outbound() *OutboundService {
	svc := NewOutboundService(f.resolver, f.limiter, f.dispatcher, f.log, f.tokens, f.crm, f.logger)
	svc.goAsync = func(fn func()) { fn() }
	return svc
}

func (f *fixture) responder() *AutoResponder {
	return NewAutoResponder(f.repo, f.model, f.limiter, f.dispatcher, f.log, f.logger)
}

func (f *fixture) inbound() *InboundService {
	return NewInboundService(f.resolver, f.responder(), f.tokens, f.crm, f.log, f.logger)
}

func (f *fixture) lifecycle() *LifecycleService {
	return NewLifecycleService(f.repo, f.resolver, f.gateway, f.crm, f.logger)
}

// installTenant registers an authorized, configured tenant comp1:loc1.
func (f *fixture) installTenant() (*domain.Installation, *domain.ProviderConfig) {
	installation := &domain.Installation{
		ID:           "inst-1",
		CompanyID:    "comp1",
		LocationID:   "loc1",
		AccessToken:  "crm-token",
		RefreshToken: "crm-refresh",
		Status:       domain.InstallationStatusConfigured,
	}
	config := &domain.ProviderConfig{
		ID:             "cfg-1",
		InstallationID: "inst-1",
		CompanyID:      "comp1",
		LocationID:     "loc1",
		AccessToken:    "gw-token",
		InstanceID:     "609ACF283XXXX",
		SenderNumber:   "60123456789",
		IsActive:       true,
	}
	f.installations.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(installation, nil).Maybe()
	f.configs.On("GetActive", mock.Anything, "comp1", "loc1").Return(config, nil).Maybe()
	f.configs.On("GetActiveByInstanceID", mock.Anything, "609ACF283XXXX").Return(config, nil).Maybe()
	return installation, config
}

func (f *fixture) records() []domain.MessageRecord {
	records, _ := f.messages.List(context.Background(), domain.MessageFilter{CompanyID: "comp1", LocationID: "loc1"})
	return records
}
