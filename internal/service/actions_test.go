package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/gateway"
	"github.com/kingrain94/waapify-relay/internal/llm"
)

type ActionServiceTestSuite struct {
	suite.Suite
	f       *fixture
	service *ActionService
}

func (s *ActionServiceTestSuite) SetupTest() {
	s.f = newFixture()
	s.service = NewActionService(s.f.resolver, s.f.limiter, s.f.dispatcher, s.f.log, s.f.responder(), s.f.gateway, s.f.logger)
}

func TestActionService(t *testing.T) {
	suite.Run(t, new(ActionServiceTestSuite))
}

func (s *ActionServiceTestSuite) TestSendText_TestModeSendsNothing() {
	// Act
	result, err := s.service.SendText(context.Background(), ActionSendRequest{
		Number:   "0168970072",
		Message:  "Hello",
		TestMode: true,
	})

	// Assert
	s.Require().NoError(err)
	s.True(result.TestMode)
	s.True(result.PhoneValid)
	s.Equal("60168970072", result.Recipient)
	s.True(strings.HasPrefix(result.MessageID, "test_"))
	s.f.gateway.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *ActionServiceTestSuite) TestSendText_TestModeReportsInvalidPhone() {
	// Act
	result, err := s.service.SendText(context.Background(), ActionSendRequest{
		Number:   "12",
		Message:  "Hello",
		TestMode: true,
	})

	// Assert
	s.Require().NoError(err)
	s.False(result.PhoneValid)
}

func (s *ActionServiceTestSuite) TestSendText_InlineCredentialsNotRecorded() {
	// Arrange
	s.f.gateway.On("Send", mock.Anything, mock.MatchedBy(func(r gateway.SendRequest) bool {
		return r.Number == "60168970072" && r.InstanceID == "INLINE1" && r.AccessToken == "inline-token" && r.Type == gateway.TypeText
	})).Return(&gateway.SendResponse{Status: "success", ID: "98765"}, nil)

	// Act
	result, err := s.service.SendText(context.Background(), ActionSendRequest{
		ActionCredentials: ActionCredentials{InstanceID: "INLINE1", AccessToken: "inline-token"},
		Number:            "0168970072",
		Message:           "Hello",
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("98765", result.MessageID)
	s.Equal(domain.MessageStatusSent, result.Status)
	s.Empty(s.f.records())
	s.f.gateway.AssertExpectations(s.T())
}

func (s *ActionServiceTestSuite) TestSendText_StoredCredentialsRecordedUnderTenant() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("Send", mock.Anything, mock.MatchedBy(func(r gateway.SendRequest) bool {
		return r.InstanceID == "609ACF283XXXX" && r.AccessToken == "gw-token"
	})).Return(&gateway.SendResponse{Status: "success", ID: "98765"}, nil)

	// Act
	_, err := s.service.SendText(context.Background(), ActionSendRequest{
		ActionCredentials: ActionCredentials{CompanyID: "comp1", LocationID: "loc1"},
		Number:            "0168970072",
		Message:           "Hello",
	})

	// Assert
	s.Require().NoError(err)
	records := s.f.records()
	s.Require().Len(records, 1)
	s.Equal(domain.MessageStatusSent, records[0].Status)
	s.Equal("inst-1", records[0].InstallationID)
	s.True(strings.HasPrefix(records[0].CRMMessageID, "text_"))
	s.Equal("98765", *records[0].ProviderMessageID)
}

func (s *ActionServiceTestSuite) TestSendMedia_RequiresMediaURL() {
	// Act
	_, err := s.service.SendMedia(context.Background(), ActionSendRequest{
		ActionCredentials: ActionCredentials{InstanceID: "INLINE1", AccessToken: "inline-token"},
		Number:            "0168970072",
		Message:           "Invoice",
	})

	// Assert
	s.ErrorIs(err, ErrMissingFields)
}

func (s *ActionServiceTestSuite) TestSendText_MissingCredentials() {
	// Arrange
	s.f.installations.On("GetByTenant", mock.Anything, "comp2", "loc2").Return(nil, nil)

	// Act
	_, err := s.service.SendText(context.Background(), ActionSendRequest{
		ActionCredentials: ActionCredentials{CompanyID: "comp2", LocationID: "loc2"},
		Number:            "0168970072",
		Message:           "Hello",
	})

	// Assert
	s.ErrorIs(err, ErrMissingFields)
	s.f.gateway.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *ActionServiceTestSuite) TestSendText_RateLimitedIsRecordedAsFailed() {
	// Arrange
	installation, _ := s.f.installTenant()
	installation.RateLimit = 1
	_, err := s.f.limiter.CheckAndConsume(context.Background(), "comp1:loc1", 1)
	s.Require().NoError(err)

	// Act
	_, err = s.service.SendText(context.Background(), ActionSendRequest{
		ActionCredentials: ActionCredentials{CompanyID: "comp1", LocationID: "loc1"},
		Number:            "0168970072",
		Message:           "Hello",
	})

	// Assert
	var rateErr *RateLimitedError
	s.Require().ErrorAs(err, &rateErr)
	records := s.f.records()
	s.Require().Len(records, 1)
	s.Equal(domain.MessageStatusFailed, records[0].Status)
	s.f.gateway.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *ActionServiceTestSuite) TestCheckPhone_Registered() {
	// Arrange
	s.f.installTenant()
	s.f.gateway.On("Send", mock.Anything, mock.MatchedBy(func(r gateway.SendRequest) bool {
		return r.Type == gateway.TypeCheckPhone && r.Number == "60168970072" && r.InstanceID == "609ACF283XXXX"
	})).Return(&gateway.SendResponse{HTTPStatus: 200, Status: "success", Registered: true}, nil)

	// Act
	result, err := s.service.CheckPhone(context.Background(), ActionCheckRequest{
		ActionCredentials: ActionCredentials{CompanyID: "comp1", LocationID: "loc1"},
		Number:            "0168970072",
	})

	// Assert
	s.Require().NoError(err)
	s.True(result.Registered)
	s.Equal("60168970072", result.Number)
	s.Empty(s.f.records())
}

func (s *ActionServiceTestSuite) TestCheckPhone_Timeout() {
	// Arrange
	s.f.gateway.On("Send", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	// Act
	_, err := s.service.CheckPhone(context.Background(), ActionCheckRequest{
		ActionCredentials: ActionCredentials{InstanceID: "INLINE1", AccessToken: "inline-token"},
		Number:            "0168970072",
	})

	// Assert
	s.ErrorIs(err, ErrGatewayTimeout)
}

func (s *ActionServiceTestSuite) TestCheckPhone_GatewayRejects() {
	// Arrange
	s.f.gateway.On("Send", mock.Anything, mock.Anything).
		Return(&gateway.SendResponse{HTTPStatus: 200, Status: "error", Message: "invalid access token"}, nil)

	// Act
	_, err := s.service.CheckPhone(context.Background(), ActionCheckRequest{
		ActionCredentials: ActionCredentials{InstanceID: "INLINE1", AccessToken: "bad"},
		Number:            "0168970072",
	})

	// Assert
	var gatewayErr *GatewayError
	s.Require().ErrorAs(err, &gatewayErr)
	s.Equal("invalid access token", gatewayErr.Message)
}

func (s *ActionServiceTestSuite) TestAIReply_KeywordsNotMatched() {
	// Act
	result, err := s.service.AIReply(context.Background(), ActionAIRequest{
		CustomerMessage: "hello there",
		Keywords:        []string{"price"},
		CompanyID:       "comp1",
		LocationID:      "loc1",
	})

	// Assert
	s.Require().NoError(err)
	s.False(result.Triggered)
	s.f.model.AssertNotCalled(s.T(), "Complete", mock.Anything, mock.Anything)
}

func (s *ActionServiceTestSuite) TestAIReply_WithoutPhoneOnlyGenerates() {
	// Arrange
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(&domain.AutoResponseConfig{
		Context: "We sell shirts.",
		Persona: "cheerful",
		Model:   "gpt-4o-mini",
		APIKey:  "sk-tenant",
	}, nil)
	s.f.model.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.APIKey == "sk-tenant" &&
			strings.Contains(req.SystemPrompt, "We sell shirts.") &&
			strings.Contains(req.SystemPrompt, "Your persona: formal") &&
			req.UserMessage == "what is the price?"
	})).Return("The blue shirt is RM49.", nil)

	// Act
	result, err := s.service.AIReply(context.Background(), ActionAIRequest{
		CustomerMessage: "what is the price?",
		Keywords:        []string{"price"},
		Persona:         "formal",
		CompanyID:       "comp1",
		LocationID:      "loc1",
	})

	// Assert
	s.Require().NoError(err)
	s.True(result.Triggered)
	s.Equal([]string{"price"}, result.Matched)
	s.Equal("The blue shirt is RM49.", result.Reply)
	s.False(result.Sent)
	s.f.gateway.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *ActionServiceTestSuite) TestAIReply_SendsToPhone() {
	// Arrange
	s.f.installTenant()
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(nil, nil)
	s.f.model.On("Complete", mock.Anything, mock.Anything).Return("Thanks for asking!", nil)
	s.f.gateway.On("Send", mock.Anything, mock.MatchedBy(func(r gateway.SendRequest) bool {
		return r.Number == "60168970072" && r.Message == "Thanks for asking!"
	})).Return(&gateway.SendResponse{Status: "success", ID: "wa-ai-1"}, nil)

	// Act
	result, err := s.service.AIReply(context.Background(), ActionAIRequest{
		CustomerMessage: "anything",
		CompanyID:       "comp1",
		LocationID:      "loc1",
		Phone:           "0168970072",
	})

	// Assert
	s.Require().NoError(err)
	s.True(result.Triggered)
	s.True(result.Sent)
	s.Empty(result.SendError)
	s.Require().NotNil(result.Record)
	records := s.f.records()
	s.Require().Len(records, 1)
	s.Equal(domain.MessageKindAIResponse, records[0].Kind)
	s.Equal(domain.MessageStatusSent, records[0].Status)
}

func (s *ActionServiceTestSuite) TestAIReply_PhoneForUninstalledTenant() {
	// Arrange
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp2", "loc2").Return(nil, nil)
	s.f.installations.On("GetByTenant", mock.Anything, "comp2", "loc2").Return(nil, nil)
	s.f.model.On("Complete", mock.Anything, mock.Anything).Return("Hi!", nil)

	// Act
	result, err := s.service.AIReply(context.Background(), ActionAIRequest{
		CustomerMessage: "hi",
		CompanyID:       "comp2",
		LocationID:      "loc2",
		Phone:           "0168970072",
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("Hi!", result.Reply)
	s.False(result.Sent)
	s.Equal(ErrNotInstalled.Error(), result.SendError)
	s.f.gateway.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *ActionServiceTestSuite) TestAIReply_ModelFailure() {
	// Arrange
	s.f.autoResponses.On("GetByTenant", mock.Anything, "comp1", "loc1").Return(nil, nil)
	s.f.model.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	// Act
	_, err := s.service.AIReply(context.Background(), ActionAIRequest{
		CustomerMessage: "price?",
		CompanyID:       "comp1",
		LocationID:      "loc1",
	})

	// Assert
	var modelErr *ModelError
	s.Require().ErrorAs(err, &modelErr)
	s.Equal("quota exceeded", modelErr.Message)
}

func (s *ActionServiceTestSuite) TestAIReply_MissingFields() {
	// Act
	_, err := s.service.AIReply(context.Background(), ActionAIRequest{CustomerMessage: "price?"})

	// Assert
	s.ErrorIs(err, ErrMissingFields)
}
