package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/gateway"
)

type ProviderServiceTestSuite struct {
	suite.Suite
	f       *fixture
	service *ProviderService
}

func (s *ProviderServiceTestSuite) SetupTest() {
	s.f = newFixture()
	s.service = NewProviderService(s.f.repo, s.f.resolver, s.f.gateway, s.f.limiter, s.f.log, s.f.logger)
}

func TestProviderService(t *testing.T) {
	suite.Run(t, new(ProviderServiceTestSuite))
}

func (s *ProviderServiceTestSuite) TestStatus_Active() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("CheckConnection", mock.Anything, "gw-token", "609ACF283XXXX").Return(nil)
	s.f.configs.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.ProviderConfig) bool {
		return c.TestStatus == domain.TestStatusSuccess && c.LastTestedAt != nil
	})).Return(nil)

	// Act
	status, err := s.service.Status(context.Background(), "comp1", "loc1")

	// Assert
	s.NoError(err)
	s.Equal(ProviderStatusActive, status.Status)
	s.Equal("609ACF283XXXX", status.InstanceID)
	s.Equal("60123456789", status.SenderNumber)
	s.Empty(status.Error)
	s.f.configs.AssertExpectations(s.T())
}

func (s *ProviderServiceTestSuite) TestStatus_ConnectionFailure() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("CheckConnection", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("instance offline"))
	s.f.configs.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	// Act
	status, err := s.service.Status(context.Background(), "comp1", "loc1")

	// Assert
	s.NoError(err)
	s.Equal(ProviderStatusError, status.Status)
	s.Equal(domain.TestStatusFailed, status.TestStatus)
	s.Equal("instance offline", status.Error)
}

func (s *ProviderServiceTestSuite) TestStatus_Inactive() {
	// Arrange
	s.f.configs.On("GetActive", mock.Anything, "comp1", "loc1").Return(nil, nil)

	// Act
	status, err := s.service.Status(context.Background(), "comp1", "loc1")

	// Assert
	s.NoError(err)
	s.Equal(ProviderStatusInactive, status.Status)
	s.f.gateway.AssertNotCalled(s.T(), "CheckConnection", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProviderServiceTestSuite) TestPhoneNumbers() {
	// Arrange
	s.f.installTenant()

	// Act
	numbers, err := s.service.PhoneNumbers(context.Background(), "comp1", "loc1")

	// Assert
	s.NoError(err)
	s.Equal([]string{"60123456789"}, numbers)
}

func (s *ProviderServiceTestSuite) TestPhoneNumbers_NotConfigured() {
	// Arrange
	s.f.configs.On("GetActive", mock.Anything, "comp2", "").Return(nil, nil)

	// Act
	_, err := s.service.PhoneNumbers(context.Background(), "comp2", "")

	// Assert
	s.ErrorIs(err, ErrNotConfigured)
}

func (s *ProviderServiceTestSuite) TestQRCode_ReturnsGatewayBody() {
	// Arrange
	s.f.installTenant()
	body := json.RawMessage(`{"status":"success","base64":"iVBORw0KGgo="}`)
	s.f.gateway.On("QRCode", mock.Anything, "gw-token", "609ACF283XXXX").
		Return(&gateway.InstanceResponse{HTTPStatus: 200, Status: "success", Body: body}, nil)

	// Act
	got, err := s.service.QRCode(context.Background(), "comp1", "loc1")

	// Assert
	s.NoError(err)
	s.JSONEq(string(body), string(got))
}

func (s *ProviderServiceTestSuite) TestQRCode_NotConfigured() {
	// Arrange
	s.f.configs.On("GetActive", mock.Anything, "comp2", "loc2").Return(nil, nil)

	// Act
	_, err := s.service.QRCode(context.Background(), "comp2", "loc2")

	// Assert
	s.ErrorIs(err, ErrNotConfigured)
	s.f.gateway.AssertNotCalled(s.T(), "QRCode", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProviderServiceTestSuite) TestReboot_GatewayRejects() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("Reboot", mock.Anything, "gw-token", "609ACF283XXXX").
		Return(&gateway.InstanceResponse{HTTPStatus: 200, Status: "error", Message: "instance not found"}, nil)

	// Act
	_, err := s.service.Reboot(context.Background(), "comp1", "loc1")

	// Assert
	var gatewayErr *GatewayError
	s.ErrorAs(err, &gatewayErr)
	s.Equal("instance not found", gatewayErr.Message)
}

func (s *ProviderServiceTestSuite) TestSendGroup_RecordsUnderTenant() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("SendGroup", mock.Anything, gateway.GroupSendRequest{
		GroupID:     "120363025246125486@g.us",
		Type:        gateway.TypeText,
		Message:     "Weekly specials are out",
		InstanceID:  "609ACF283XXXX",
		AccessToken: "gw-token",
	}).Return(&gateway.SendResponse{HTTPStatus: 200, Status: "success", ID: "wa-group-1"}, nil)

	// Act
	record, err := s.service.SendGroup(context.Background(), "comp1", "loc1", GroupMessage{
		GroupID: "120363025246125486@g.us",
		Message: "Weekly specials are out",
	})

	// Assert
	s.NoError(err)
	s.Equal(domain.MessageStatusSent, record.Status)
	s.Contains(record.CRMMessageID, "group_")
	records := s.f.records()
	s.Len(records, 1)
	s.Equal("120363025246125486@g.us", records[0].Recipient)
	s.Equal("wa-group-1", *records[0].ProviderMessageID)
}

func (s *ProviderServiceTestSuite) TestSendGroup_GatewayFailureRecorded() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("SendGroup", mock.Anything, mock.Anything).
		Return(&gateway.SendResponse{HTTPStatus: 200, Status: "error", Message: "not a group member"}, nil)

	// Act
	_, err := s.service.SendGroup(context.Background(), "comp1", "loc1", GroupMessage{
		GroupID:  "120363025246125486@g.us",
		Message:  "Specials",
		MediaURL: "https://example.com/specials.png",
	})

	// Assert
	s.Error(err)
	records := s.f.records()
	s.Len(records, 1)
	s.Equal(domain.MessageStatusFailed, records[0].Status)
	s.Equal(domain.MessageKindMedia, records[0].Kind)
	s.Contains(*records[0].Error, "not a group member")
}

func (s *ProviderServiceTestSuite) TestSendGroup_MissingFields() {
	// Act
	_, err := s.service.SendGroup(context.Background(), "comp1", "loc1", GroupMessage{Message: "Specials"})

	// Assert
	s.ErrorIs(err, ErrMissingFields)
	s.f.gateway.AssertNotCalled(s.T(), "SendGroup", mock.Anything, mock.Anything)
}
