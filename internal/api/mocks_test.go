package api

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/service"
)

type MockOutboundSender struct {
	mock.Mock
}

func (m *MockOutboundSender) Send(ctx context.Context, req service.OutboundRequest) (*service.OutboundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OutboundResult), args.Error(1)
}

type MockLifecycleManager struct {
	mock.Mock
}

func (m *MockLifecycleManager) HandleEvent(ctx context.Context, eventType, companyID, locationID string) error {
	args := m.Called(ctx, eventType, companyID, locationID)
	return args.Error(0)
}

func (m *MockLifecycleManager) ConnectProvider(ctx context.Context, req dto.ExternalAuthRequest) (*domain.ProviderConfig, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderConfig), args.Error(1)
}

func (m *MockLifecycleManager) CompleteOAuth(ctx context.Context, code string) (*domain.Installation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installation), args.Error(1)
}

type MockInboundSubmitter struct {
	mock.Mock
}

func (m *MockInboundSubmitter) Submit(ctx context.Context, event *domain.ProviderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockMessageLog struct {
	mock.Mock
}

func (m *MockMessageLog) Query(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.MessageRecord), args.Error(1)
}

func (m *MockMessageLog) FindByEitherID(ctx context.Context, companyID, locationID, id string) (*domain.MessageRecord, error) {
	args := m.Called(ctx, companyID, locationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageRecord), args.Error(1)
}

func (m *MockMessageLog) Stats(ctx context.Context, companyID, locationID string) (*domain.MessageStats, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageStats), args.Error(1)
}

type MockAutoResponseSettings struct {
	mock.Mock
}

func (m *MockAutoResponseSettings) GetConfig(ctx context.Context, companyID, locationID string) (*domain.AutoResponseConfig, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoResponseConfig), args.Error(1)
}

func (m *MockAutoResponseSettings) UpdateConfig(ctx context.Context, companyID, locationID string, apply func(*domain.AutoResponseConfig)) (*domain.AutoResponseConfig, error) {
	args := m.Called(ctx, companyID, locationID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoResponseConfig), args.Error(1)
}

type MockProviderInspector struct {
	mock.Mock
}

func (m *MockProviderInspector) Status(ctx context.Context, companyID, locationID string) (*dto.ProviderStatusResponse, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProviderStatusResponse), args.Error(1)
}

func (m *MockProviderInspector) PhoneNumbers(ctx context.Context, companyID, locationID string) ([]string, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProviderInspector) QRCode(ctx context.Context, companyID, locationID string) (json.RawMessage, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockProviderInspector) Reboot(ctx context.Context, companyID, locationID string) (json.RawMessage, error) {
	args := m.Called(ctx, companyID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockProviderInspector) SendGroup(ctx context.Context, companyID, locationID string, msg service.GroupMessage) (*domain.MessageRecord, error) {
	args := m.Called(ctx, companyID, locationID, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageRecord), args.Error(1)
}

type MockActionRunner struct {
	mock.Mock
}

func (m *MockActionRunner) SendText(ctx context.Context, req service.ActionSendRequest) (*service.ActionSendResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActionSendResult), args.Error(1)
}

func (m *MockActionRunner) SendMedia(ctx context.Context, req service.ActionSendRequest) (*service.ActionSendResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActionSendResult), args.Error(1)
}

func (m *MockActionRunner) CheckPhone(ctx context.Context, req service.ActionCheckRequest) (*service.PhoneCheckResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PhoneCheckResult), args.Error(1)
}

func (m *MockActionRunner) AIReply(ctx context.Context, req service.ActionAIRequest) (*service.ActionAIResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActionAIResult), args.Error(1)
}

type MockSnapshotWriter struct {
	mock.Mock
}

func (m *MockSnapshotWriter) Snapshot(ctx context.Context) (*dto.BackupResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BackupResponse), args.Error(1)
}
