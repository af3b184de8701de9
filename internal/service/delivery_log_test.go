package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/mocks"
	"github.com/kingrain94/waapify-relay/internal/repository/memory"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

type DeliveryLogTestSuite struct {
	suite.Suite
	repo        *mocks.Repository
	messages    *memory.MessageLogStore
	search      *mocks.SearchRepository
	indexQueue  *mocks.IndexQueue
	broadcaster *mocks.WebSocketBroadcaster
	log         *DeliveryLog
}

func (s *DeliveryLogTestSuite) SetupTest() {
	s.repo = new(mocks.Repository)
	s.messages = memory.NewMessageLogStore()
	s.search = new(mocks.SearchRepository)
	s.indexQueue = new(mocks.IndexQueue)
	s.broadcaster = new(mocks.WebSocketBroadcaster)

	s.repo.On("MessageLog").Return(s.messages).Maybe()
	s.repo.On("Search").Return(s.search).Maybe()

	s.log = NewDeliveryLog(s.repo, s.indexQueue, &logger.Logger{Logger: zap.NewNop()})
	s.log.SetWebSocketBroadcaster(s.broadcaster)
}

func TestDeliveryLog(t *testing.T) {
	suite.Run(t, new(DeliveryLogTestSuite))
}

func (s *DeliveryLogTestSuite) record(id, crmID string, status domain.MessageStatus) *domain.MessageRecord {
	return &domain.MessageRecord{
		ID:           id,
		CompanyID:    "comp1",
		LocationID:   "loc1",
		CRMMessageID: crmID,
		Recipient:    "60168970072",
		Body:         "Hello order 42",
		Kind:         domain.MessageKindText,
		Status:       status,
	}
}

func (s *DeliveryLogTestSuite) TestRecord_IndexesAndBroadcasts() {
	// Arrange
	record := s.record("rec-1", "msg-1", domain.MessageStatusSent)
	s.indexQueue.On("SendIndexMessage", mock.Anything, record).Return(nil)
	s.broadcaster.On("BroadcastMessage", mock.MatchedBy(func(m *dto.MessageResponse) bool {
		return m.ID == "rec-1" && m.Status == "sent"
	})).Return()

	// Act
	err := s.log.Record(context.Background(), record)

	// Assert
	s.NoError(err)
	s.indexQueue.AssertExpectations(s.T())
	s.broadcaster.AssertExpectations(s.T())
	stored, _ := s.messages.FindByEitherID(context.Background(), "comp1", "loc1", "msg-1")
	s.Require().NotNil(stored)
	s.False(stored.CreatedAt.IsZero())
}

func (s *DeliveryLogTestSuite) TestRecord_IndexFailureIsNotFatal() {
	// Arrange
	record := s.record("rec-1", "msg-1", domain.MessageStatusSent)
	s.indexQueue.On("SendIndexMessage", mock.Anything, record).Return(errors.New("queue down"))
	s.broadcaster.On("BroadcastMessage", mock.Anything).Return()

	// Act
	err := s.log.Record(context.Background(), record)

	// Assert
	s.NoError(err)
	s.broadcaster.AssertNumberOfCalls(s.T(), "BroadcastMessage", 1)
}

func (s *DeliveryLogTestSuite) TestQuery_UsesSearchForText() {
	// Arrange
	filter := domain.MessageFilter{CompanyID: "comp1", LocationID: "loc1", Query: "order"}
	expected := []domain.MessageRecord{*s.record("rec-9", "msg-9", domain.MessageStatusDelivered)}
	s.search.On("Search", mock.Anything, &filter).Return(expected, nil)

	// Act
	records, err := s.log.Query(context.Background(), filter)

	// Assert
	s.NoError(err)
	s.Equal(expected, records)
}

func (s *DeliveryLogTestSuite) TestQuery_ListsWithoutText() {
	// Arrange
	s.indexQueue.On("SendIndexMessage", mock.Anything, mock.Anything).Return(nil)
	s.broadcaster.On("BroadcastMessage", mock.Anything).Return()
	s.NoError(s.log.Record(context.Background(), s.record("rec-1", "msg-1", domain.MessageStatusSent)))
	s.NoError(s.log.Record(context.Background(), s.record("rec-2", "msg-2", domain.MessageStatusFailed)))

	// Act
	records, err := s.log.Query(context.Background(), domain.MessageFilter{CompanyID: "comp1", LocationID: "loc1", Status: "failed"})

	// Assert
	s.NoError(err)
	s.Require().Len(records, 1)
	s.Equal("rec-2", records[0].ID)
	s.search.AssertNotCalled(s.T(), "Search", mock.Anything, mock.Anything)
}

func (s *DeliveryLogTestSuite) TestFindByEitherID_ScopedToTenant() {
	// Arrange
	providerID := "wa-77"
	record := s.record("rec-1", "msg-1", domain.MessageStatusSent)
	record.ProviderMessageID = &providerID
	s.NoError(s.messages.Create(context.Background(), record))

	// Act
	byProvider, err := s.log.FindByEitherID(context.Background(), "comp1", "loc1", "wa-77")
	_, otherErr := s.log.FindByEitherID(context.Background(), "comp2", "loc1", "msg-1")
	_, missingErr := s.log.FindByEitherID(context.Background(), "comp1", "loc1", "nope")

	// Assert
	s.NoError(err)
	s.Equal("rec-1", byProvider.ID)
	s.ErrorIs(otherErr, ErrMessageNotFound)
	s.ErrorIs(missingErr, ErrMessageNotFound)
}

func (s *DeliveryLogTestSuite) TestMarkStatus_UpdatesOnce() {
	// Arrange
	s.NoError(s.messages.Create(context.Background(), s.record("rec-1", "msg-1", domain.MessageStatusSent)))
	s.log.now = func() time.Time { return time.Date(2025, 7, 17, 10, 0, 0, 0, time.UTC) }
	s.indexQueue.On("SendIndexMessage", mock.Anything, mock.Anything).Return(nil)
	s.broadcaster.On("BroadcastMessage", mock.MatchedBy(func(m *dto.MessageResponse) bool {
		return m.Status == "delivered"
	})).Return()

	// Act
	first, firstErr := s.log.MarkStatus(context.Background(), "comp1", "loc1", "msg-1", domain.MessageStatusDelivered)
	second, secondErr := s.log.MarkStatus(context.Background(), "comp1", "loc1", "msg-1", domain.MessageStatusFailed)

	// Assert
	s.NoError(firstErr)
	s.NoError(secondErr)
	s.True(first)
	s.False(second)
	stored, _ := s.messages.FindByEitherID(context.Background(), "comp1", "loc1", "msg-1")
	s.Equal(domain.MessageStatusDelivered, stored.Status)
	s.Require().NotNil(stored.DeliveredAt)
	s.broadcaster.AssertNumberOfCalls(s.T(), "BroadcastMessage", 1)
}

func (s *DeliveryLogTestSuite) TestFindByEitherID_SameCRMIDInAnotherTenant() {
	// Arrange
	own := s.record("rec-1", "msg-1", domain.MessageStatusSent)
	foreign := s.record("rec-2", "msg-1", domain.MessageStatusFailed)
	foreign.CompanyID = "comp2"
	foreign.LocationID = "loc2"
	s.NoError(s.messages.Create(context.Background(), own))
	s.NoError(s.messages.Create(context.Background(), foreign))

	// Act
	record, err := s.log.FindByEitherID(context.Background(), "comp1", "loc1", "msg-1")

	// Assert
	s.NoError(err)
	s.Require().NotNil(record)
	s.Equal("rec-1", record.ID)
}

func (s *DeliveryLogTestSuite) TestMarkStatus_OtherTenantIsNoop() {
	// Arrange
	s.NoError(s.messages.Create(context.Background(), s.record("rec-1", "msg-1", domain.MessageStatusSent)))

	// Act
	updated, err := s.log.MarkStatus(context.Background(), "comp2", "loc2", "msg-1", domain.MessageStatusFailed)

	// Assert
	s.NoError(err)
	s.False(updated)
	stored, _ := s.messages.FindByEitherID(context.Background(), "comp1", "loc1", "msg-1")
	s.Equal(domain.MessageStatusSent, stored.Status)
	s.broadcaster.AssertNotCalled(s.T(), "BroadcastMessage", mock.Anything)
}

func (s *DeliveryLogTestSuite) TestStats() {
	// Arrange
	s.NoError(s.messages.Create(context.Background(), s.record("rec-1", "msg-1", domain.MessageStatusSent)))
	s.NoError(s.messages.Create(context.Background(), s.record("rec-2", "msg-2", domain.MessageStatusFailed)))

	// Act
	stats, err := s.log.Stats(context.Background(), "comp1", "loc1")

	// Assert
	s.NoError(err)
	s.Equal(int64(2), stats.Total)
	s.Equal(int64(1), stats.ByStatus["failed"])
	s.Equal(int64(2), stats.ByKind["text"])
}
