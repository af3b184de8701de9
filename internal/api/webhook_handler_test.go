package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/service"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	outbound  *MockOutboundSender
	lifecycle *MockLifecycleManager
	inbound   *MockInboundSubmitter
	handler   *WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.outbound = new(MockOutboundSender)
	s.lifecycle = new(MockLifecycleManager)
	s.inbound = new(MockInboundSubmitter)
	s.handler = NewWebhookHandler(s.outbound, s.lifecycle, s.inbound, &logger.Logger{Logger: zap.NewNop()})
}

func TestWebhookHandler(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) post(body string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_SendSuccess() {
	// Arrange
	deliveredAt := time.Date(2025, 7, 17, 21, 20, 48, 0, time.UTC)
	s.outbound.On("Send", mock.Anything, service.OutboundRequest{
		ContactID:  "contact1",
		LocationID: "loc1",
		CompanyID:  "comp1",
		Type:       "WhatsApp",
		Phone:      "+60168970072",
		Message:    "Hello",
		MessageID:  "msg-1",
		MediaURL:   "https://example.com/a.pdf",
		MediaName:  "a.pdf",
	}).Return(&service.OutboundResult{
		ConversationID: "conv_loc1_contact1",
		MessageID:      "msg-1",
		Status:         domain.MessageStatusSent,
		DeliveredAt:    deliveredAt,
	}, nil)
	w, c := s.post(`{"contactId":"contact1","locationId":"loc1","companyId":"comp1","type":"WhatsApp",
		"phone":"+60168970072","message":"Hello","messageId":"msg-1",
		"attachments":[{"url":"https://example.com/a.pdf","filename":"a.pdf"},"https://example.com/b.png"]}`)

	// Act
	s.handler.HandleCRMWebhook(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var resp dto.SendMessageResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Equal("conv_loc1_contact1", resp.ConversationID)
	s.Equal("sent", resp.Status)
	s.True(deliveredAt.Equal(resp.DeliveredAt))
	s.lifecycle.AssertNotCalled(s.T(), "HandleEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_SendWithLogFailureWarns() {
	// Arrange
	s.outbound.On("Send", mock.Anything, mock.Anything).Return(&service.OutboundResult{
		ConversationID: "conv_loc1_contact1",
		MessageID:      "msg-1",
		Status:         domain.MessageStatusSent,
		LogErr:         errors.New("disk full"),
	}, nil)
	w, c := s.post(`{"contactId":"contact1","locationId":"loc1","companyId":"comp1","type":"WhatsApp",
		"phone":"+60168970072","message":"Hello","messageId":"msg-1"}`)

	// Act
	s.handler.HandleCRMWebhook(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var resp dto.SendMessageResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Equal("message sent but not logged", resp.Warning)
	s.NotContains(w.Body.String(), "disk full")
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_LifecycleEvent() {
	// Arrange
	s.lifecycle.On("HandleEvent", mock.Anything, "INSTALL", "comp1", "loc1").Return(nil)
	w, c := s.post(`{"type":"INSTALL","companyId":"comp1","locationId":"loc1"}`)

	// Act
	s.handler.HandleCRMWebhook(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"success":true}`, w.Body.String())
	s.outbound.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_LifecycleMissingCompany() {
	// Arrange
	s.lifecycle.On("HandleEvent", mock.Anything, "UNINSTALL", "", "loc1").
		Return(errors.Join(service.ErrMissingFields, errors.New("companyId")))
	w, c := s.post(`{"type":"UNINSTALL","locationId":"loc1"}`)

	// Act
	s.handler.HandleCRMWebhook(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		status     int
		code       string
		retryAfter string
	}{
		{"not configured", service.ErrNotConfigured, http.StatusBadRequest, "NOT_CONFIGURED", ""},
		{"not installed", service.ErrNotInstalled, http.StatusBadRequest, "NOT_INSTALLED", ""},
		{"invalid recipient", &service.InvalidRecipientError{Phone: "12", Suggestion: "Use international format"}, http.StatusBadRequest, "INVALID_RECIPIENT", ""},
		{"rate limited", &service.RateLimitedError{Limit: 10, RetryAfter: 42}, http.StatusTooManyRequests, "RATE_LIMITED", "42"},
		{"gateway timeout", service.ErrGatewayTimeout, http.StatusInternalServerError, "GATEWAY_TIMEOUT", ""},
		{"gateway error", &service.GatewayError{Message: "Access token does not exist"}, http.StatusInternalServerError, "GATEWAY_ERROR", ""},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			// Arrange
			s.SetupTest()
			s.outbound.On("Send", mock.Anything, mock.Anything).Return(nil, tt.err)
			w, c := s.post(`{"contactId":"c","locationId":"l","type":"SMS","phone":"0168970072","message":"hi","messageId":"msg-9"}`)

			// Act
			s.handler.HandleCRMWebhook(c)

			// Assert
			s.Equal(tt.status, w.Code)
			var resp dto.WebhookErrorResponse
			s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			s.False(resp.Success)
			s.Equal(tt.code, resp.ErrorCode)
			s.Equal("msg-9", resp.MessageID)
			s.Equal(tt.err.Error(), resp.Error)
			s.Equal(tt.retryAfter, w.Header().Get("Retry-After"))
		})
	}
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_SuggestionPassedThrough() {
	// Arrange
	s.outbound.On("Send", mock.Anything, mock.Anything).
		Return(nil, &service.InvalidRecipientError{Phone: "12", Suggestion: "Use international format"})
	w, c := s.post(`{"contactId":"c","locationId":"l","type":"SMS","phone":"12","message":"hi"}`)

	// Act
	s.handler.HandleCRMWebhook(c)

	// Assert
	var resp dto.WebhookErrorResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Use international format", resp.Suggestion)
}

func (s *WebhookHandlerTestSuite) TestCRMWebhook_MalformedBody() {
	// Arrange
	w, c := s.post(`{"contactId":`)

	// Act
	s.handler.HandleCRMWebhook(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.outbound.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *WebhookHandlerTestSuite) TestProviderWebhook_SubmitsEvent() {
	// Arrange
	s.inbound.On("Submit", mock.Anything, mock.MatchedBy(func(e *domain.ProviderEvent) bool {
		return e.Type == "message" && e.From == "60168970072" && e.Message == "I need help" &&
			e.InstanceID == "609ACF283XXXX" && !e.ReceivedAt.IsZero()
	})).Return(nil)
	w, c := s.post(`{"type":"message","data":{"number":"60168970072","text":"I need help","instance_id":"609ACF283XXXX"}}`)

	// Act
	s.handler.HandleProviderWebhook(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
	s.inbound.AssertExpectations(s.T())
}

func (s *WebhookHandlerTestSuite) TestProviderWebhook_AckEvent() {
	// Arrange
	s.inbound.On("Submit", mock.Anything, mock.MatchedBy(func(e *domain.ProviderEvent) bool {
		return e.Type == domain.ProviderEventAck && e.MessageID == "wa-1" && e.Status == "read"
	})).Return(nil)
	w, c := s.post(`{"type":"message_ack","data":{"id":"wa-1","status":"read","instance_id":"i1"}}`)

	// Act
	s.handler.HandleProviderWebhook(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.inbound.AssertExpectations(s.T())
}

func (s *WebhookHandlerTestSuite) TestProviderWebhook_AlwaysAcknowledges() {
	// Arrange
	s.inbound.On("Submit", mock.Anything, mock.Anything).Return(errors.New("queue down"))
	w, c := s.post(`{"type":"message","data":{"from":"1","message":"x","instance_id":"i1"}}`)
	malformed, mc := s.post(`not json`)

	// Act
	s.handler.HandleProviderWebhook(c)
	s.handler.HandleProviderWebhook(mc)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusOK, malformed.Code)
	s.inbound.AssertNumberOfCalls(s.T(), "Submit", 1)
}
