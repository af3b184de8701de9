package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/waapify-relay/internal/crm"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/mocks"
)

type InboundServiceTestSuite struct {
	suite.Suite
	f       *fixture
	service *InboundService
	event   *domain.ProviderEvent
}

func (s *InboundServiceTestSuite) SetupTest() {
	s.f = newFixture()
	s.service = s.f.inbound()
	s.event = &domain.ProviderEvent{
		Type:       domain.ProviderEventMessage,
		InstanceID: "609ACF283XXXX",
		From:       "60168970072",
		Message:    "hi\x00 there",
		ReceivedAt: time.Now(),
	}
}

func TestInboundService(t *testing.T) {
	suite.Run(t, new(InboundServiceTestSuite))
}

func (s *InboundServiceTestSuite) TestProcess_ForwardsToCRM() {
	// Arrange
	s.f.installTenant()
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(nil, nil)
	s.f.crm.On("FindOrCreateContact", mock.Anything, "crm-token", "loc1", "+60168970072").Return("contact-1", nil)
	s.f.crm.On("PostInboundMessage", mock.Anything, "crm-token", crm.InboundMessage{
		ContactID:  "contact-1",
		LocationID: "loc1",
		Message:    "hi there",
	}).Return(nil)

	// Act
	err := s.service.Process(context.Background(), s.event)

	// Assert
	s.NoError(err)
	s.f.crm.AssertExpectations(s.T())
}

func (s *InboundServiceTestSuite) TestProcess_AutoRespondsThenForwards() {
	// Arrange
	s.f.installTenant()
	config := domain.NewAutoResponseConfig("comp1", "loc1")
	config.Enabled = true
	config.SetKeywords([]string{"there"})
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(config, nil)
	s.f.model.On("Complete", mock.Anything, mock.Anything).Return("Hello! How can we help?", nil)
	s.f.gateway.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("gateway unreachable"))
	s.f.crm.On("FindOrCreateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("contact-1", nil)
	s.f.crm.On("PostInboundMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// Act
	err := s.service.Process(context.Background(), s.event)

	// Assert
	s.NoError(err)
	s.f.model.AssertNumberOfCalls(s.T(), "Complete", 1)
	s.f.crm.AssertNumberOfCalls(s.T(), "PostInboundMessage", 1)
	records := s.f.records()
	s.Require().Len(records, 1)
	s.Equal(domain.MessageKindAIResponse, records[0].Kind)
	s.Equal(domain.MessageStatusFailed, records[0].Status)
}

func (s *InboundServiceTestSuite) TestProcess_UnknownInstanceIsDropped() {
	// Arrange
	s.f.configs.On("GetActiveByInstanceID", mock.Anything, "unknown").Return(nil, nil)
	s.event.InstanceID = "unknown"

	// Act
	err := s.service.Process(context.Background(), s.event)

	// Assert
	s.NoError(err)
	s.f.crm.AssertNotCalled(s.T(), "FindOrCreateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InboundServiceTestSuite) TestProcess_ForwardFailureIsNotReturned() {
	// Arrange
	s.f.installTenant()
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(nil, nil)
	s.f.crm.On("FindOrCreateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("crm down"))

	// Act
	err := s.service.Process(context.Background(), s.event)

	// Assert
	s.NoError(err)
	s.f.crm.AssertNotCalled(s.T(), "PostInboundMessage", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InboundServiceTestSuite) TestProcess_ResolverErrorIsReturned() {
	// Arrange
	s.f.configs.On("GetActiveByInstanceID", mock.Anything, "609ACF283XXXX").Return(nil, errors.New("db down"))

	// Act
	err := s.service.Process(context.Background(), s.event)

	// Assert
	s.ErrorContains(err, "db down")
}

func (s *InboundServiceTestSuite) TestProcess_AckUpdatesStatusOnce() {
	// Arrange
	s.f.installTenant()
	providerID := "98765"
	record := &domain.MessageRecord{
		CompanyID:         "comp1",
		LocationID:        "loc1",
		CRMMessageID:      "msg-1",
		ProviderMessageID: &providerID,
		Kind:              domain.MessageKindText,
		Status:            domain.MessageStatusSent,
	}
	s.Require().NoError(s.f.messages.Create(context.Background(), record))
	ack := &domain.ProviderEvent{Type: domain.ProviderEventAck, InstanceID: "609ACF283XXXX", MessageID: "98765", Status: "delivered"}
	failed := &domain.ProviderEvent{Type: domain.ProviderEventAck, InstanceID: "609ACF283XXXX", MessageID: "98765", Status: "failed"}

	// Act
	s.Require().NoError(s.service.Process(context.Background(), ack))
	s.Require().NoError(s.service.Process(context.Background(), failed))

	// Assert
	stored, err := s.f.messages.FindByEitherID(context.Background(), "comp1", "loc1", "msg-1")
	s.Require().NoError(err)
	s.Equal(domain.MessageStatusDelivered, stored.Status)
	s.NotNil(stored.DeliveredAt)
}

func (s *InboundServiceTestSuite) TestProcess_AckFromForeignInstanceLeavesRecord() {
	// Arrange
	s.f.installTenant()
	foreignConfig := &domain.ProviderConfig{
		ID: "cfg-2", CompanyID: "comp2", LocationID: "loc2", InstanceID: "FOREIGN", IsActive: true,
	}
	s.f.configs.On("GetActiveByInstanceID", mock.Anything, "FOREIGN").Return(foreignConfig, nil)
	s.f.installations.On("GetByTenant", mock.Anything, "comp2", "loc2").
		Return(&domain.Installation{ID: "inst-2", CompanyID: "comp2", LocationID: "loc2"}, nil)
	providerID := "98765"
	s.Require().NoError(s.f.messages.Create(context.Background(), &domain.MessageRecord{
		CompanyID:         "comp1",
		LocationID:        "loc1",
		CRMMessageID:      "msg-1",
		ProviderMessageID: &providerID,
		Kind:              domain.MessageKindText,
		Status:            domain.MessageStatusSent,
	}))
	ack := &domain.ProviderEvent{Type: domain.ProviderEventAck, InstanceID: "FOREIGN", MessageID: "98765", Status: "failed"}

	// Act
	err := s.service.Process(context.Background(), ack)

	// Assert
	s.NoError(err)
	stored, findErr := s.f.messages.FindByEitherID(context.Background(), "comp1", "loc1", "98765")
	s.Require().NoError(findErr)
	s.Equal(domain.MessageStatusSent, stored.Status)
	s.Nil(stored.DeliveredAt)
}

func (s *InboundServiceTestSuite) TestProcess_AckForUnknownInstanceIsDropped() {
	// Arrange
	s.f.configs.On("GetActiveByInstanceID", mock.Anything, "UNKNOWN").Return(nil, nil)
	providerID := "98765"
	s.Require().NoError(s.f.messages.Create(context.Background(), &domain.MessageRecord{
		CompanyID:         "comp1",
		LocationID:        "loc1",
		ProviderMessageID: &providerID,
		Kind:              domain.MessageKindText,
		Status:            domain.MessageStatusSent,
	}))

	// Act
	err := s.service.Process(context.Background(), &domain.ProviderEvent{
		Type: domain.ProviderEventAck, InstanceID: "UNKNOWN", MessageID: "98765", Status: "delivered",
	})

	// Assert
	s.NoError(err)
	stored, _ := s.f.messages.FindByEitherID(context.Background(), "comp1", "loc1", "98765")
	s.Require().NotNil(stored)
	s.Equal(domain.MessageStatusSent, stored.Status)
}

func (s *InboundServiceTestSuite) TestProcess_IgnoresUnknownEventType() {
	// Act
	err := s.service.Process(context.Background(), &domain.ProviderEvent{Type: "presence", InstanceID: "x"})

	// Assert
	s.NoError(err)
}

func (s *InboundServiceTestSuite) TestSubmit_RequiresInstanceID() {
	// Arrange
	s.event.InstanceID = ""

	// Act
	err := s.service.Submit(context.Background(), s.event)

	// Assert
	s.ErrorIs(err, ErrMissingFields)
}

func (s *InboundServiceTestSuite) TestSubmit_UsesQueue() {
	// Arrange
	queue := new(mocks.InboundQueue)
	queue.On("SendInboundEvent", mock.Anything, s.event).Return(nil)
	s.service.UseQueue(queue)

	// Act
	err := s.service.Submit(context.Background(), s.event)

	// Assert
	s.NoError(err)
	queue.AssertExpectations(s.T())
	s.f.configs.AssertNotCalled(s.T(), "GetActiveByInstanceID", mock.Anything, mock.Anything)
}

func (s *InboundServiceTestSuite) TestSubmit_ExecutorKeepsOrderPerInstance() {
	// Arrange
	s.f.installTenant()
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(nil, nil)
	s.f.crm.On("FindOrCreateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("contact-1", nil)

	var mu sync.Mutex
	var forwarded []string
	s.f.crm.On("PostInboundMessage", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			mu.Lock()
			forwarded = append(forwarded, args.Get(2).(crm.InboundMessage).Message)
			mu.Unlock()
		}).Return(nil)

	executor := NewSerialExecutor(nil)
	s.service.UseExecutor(executor)

	// Act
	for _, body := range []string{"one", "two", "three", "four"} {
		event := *s.event
		event.Message = body
		s.Require().NoError(s.service.Submit(context.Background(), &event))
	}
	executor.Close()

	// Assert
	s.Equal([]string{"one", "two", "three", "four"}, forwarded)
}
