package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	handler  http.HandlerFunc
	lastPath string
	lastArgs map[string]string
	client   *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.lastArgs = map[string]string{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastPath = r.URL.Path
		for k := range r.URL.Query() {
			s.lastArgs[k] = r.URL.Query().Get(k)
		}
		s.handler(w, r)
	}))
	s.client = NewClient(s.server.URL+"/api/", 2*time.Second)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) respond(status int, body string) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func (s *ClientTestSuite) TestSend_SuccessStatus() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success","id":"msg-123"}`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{
		Number: "60168970072", Type: TypeText, Message: "hi", InstanceID: "inst", AccessToken: "tok",
	})

	// Assert
	s.NoError(err)
	s.True(resp.Accepted())
	s.Equal("msg-123", resp.MessageID())
	s.Equal("/api/send.php", s.lastPath)
	s.Equal("60168970072", s.lastArgs["number"])
	s.Equal("text", s.lastArgs["type"])
	s.Equal("inst", s.lastArgs["instance_id"])
	s.Equal("tok", s.lastArgs["access_token"])
	s.NotContains(s.lastArgs, "media_url")
}

func (s *ClientTestSuite) TestSend_NestedPendingIsSuccess() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"queued","data":{"status":"PENDING","key":{"id":"3EB0ABC"}}}`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{
		Number: "60168970072", Type: TypeMedia, MediaURL: "https://x/y.png", Filename: "y.png",
	})

	// Assert
	s.NoError(err)
	s.True(resp.Accepted())
	s.Equal("3EB0ABC", resp.MessageID())
	s.Equal("https://x/y.png", s.lastArgs["media_url"])
	s.Equal("y.png", s.lastArgs["filename"])
}

func (s *ClientTestSuite) TestSend_ErrorStatus() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"error","message":"Access token does not exist"}`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{Number: "60168970072", Type: TypeText})

	// Assert
	s.NoError(err)
	s.False(resp.Accepted())
	s.Equal("Access token does not exist", resp.ErrorMessage())
}

func (s *ClientTestSuite) TestSend_NumericID() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success","id":98765}`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{Number: "60168970072", Type: TypeText})

	// Assert
	s.NoError(err)
	s.Equal("98765", resp.MessageID())
}

func (s *ClientTestSuite) TestSend_HTTPErrorWithPlainBody() {
	// Arrange
	s.respond(http.StatusBadGateway, `upstream down`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{Number: "60168970072", Type: TypeText})

	// Assert
	s.NoError(err)
	s.False(resp.Accepted())
	s.Equal(http.StatusBadGateway, resp.HTTPStatus)
	s.Equal("upstream down", resp.ErrorMessage())
}

func (s *ClientTestSuite) TestSend_ContextDeadline() {
	// Arrange
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Act
	resp, err := s.client.Send(ctx, SendRequest{Number: "60168970072", Type: TypeText})

	// Assert
	s.Error(err)
	s.Nil(resp)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *ClientTestSuite) TestCheckConnection() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success"}`)

	// Act
	err := s.client.CheckConnection(context.Background(), "tok", "inst")

	// Assert
	s.NoError(err)
	s.Equal("check_phone", s.lastArgs["type"])
	s.Equal(connectivityCheckNumber, s.lastArgs["number"])
}

func (s *ClientTestSuite) TestCheckConnection_InvalidCredentials() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"error","message":"Invalid instance ID"}`)

	// Act
	err := s.client.CheckConnection(context.Background(), "tok", "bad")

	// Assert
	s.EqualError(err, "Invalid instance ID")
}

func (s *ClientTestSuite) TestSend_CheckPhoneRegistered() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success","registered":true}`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{
		Number: "60168970072", Type: TypeCheckPhone, InstanceID: "inst", AccessToken: "tok",
	})

	// Assert
	s.Require().NoError(err)
	s.True(resp.Registered)
}

func (s *ClientTestSuite) TestSend_CheckPhoneRegisteredAsString() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success","registered":"false"}`)

	// Act
	resp, err := s.client.Send(context.Background(), SendRequest{
		Number: "60168970072", Type: TypeCheckPhone, InstanceID: "inst", AccessToken: "tok",
	})

	// Assert
	s.Require().NoError(err)
	s.False(resp.Registered)
}

func (s *ClientTestSuite) TestSendGroup_Media() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success","id":"grp-msg-1"}`)

	// Act
	resp, err := s.client.SendGroup(context.Background(), GroupSendRequest{
		GroupID: "1203630@g.us", Type: TypeMedia, Message: "menu", InstanceID: "inst", AccessToken: "tok",
		MediaURL: "https://example.com/menu.pdf", Filename: "menu.pdf",
	})

	// Assert
	s.Require().NoError(err)
	s.True(resp.Accepted())
	s.Equal("/api/sendgroupmsg.php", s.lastPath)
	s.Equal("1203630@g.us", s.lastArgs["group_id"])
	s.Equal("https://example.com/menu.pdf", s.lastArgs["media_url"])
	s.Equal("menu.pdf", s.lastArgs["filename"])
}

func (s *ClientTestSuite) TestSendGroup_TextIgnoresMedia() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success"}`)

	// Act
	_, err := s.client.SendGroup(context.Background(), GroupSendRequest{
		GroupID: "1203630@g.us", Type: TypeText, Message: "hi", InstanceID: "inst", AccessToken: "tok",
		MediaURL: "https://example.com/menu.pdf",
	})

	// Assert
	s.Require().NoError(err)
	s.NotContains(s.lastArgs, "media_url")
}

func (s *ClientTestSuite) TestQRCode() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"success","base64":"data:image/png;base64,AAA"}`)

	// Act
	resp, err := s.client.QRCode(context.Background(), "tok", "inst")

	// Assert
	s.Require().NoError(err)
	s.False(resp.Failed())
	s.Equal("/api/getqrcode.php", s.lastPath)
	s.Equal("inst", s.lastArgs["instance_id"])
	s.Equal("tok", s.lastArgs["access_token"])
	s.JSONEq(`{"status":"success","base64":"data:image/png;base64,AAA"}`, string(resp.Body))
}

func (s *ClientTestSuite) TestReboot_ErrorStatus() {
	// Arrange
	s.respond(http.StatusOK, `{"status":"error","message":"Instance not found"}`)

	// Act
	resp, err := s.client.Reboot(context.Background(), "tok", "inst")

	// Assert
	s.Require().NoError(err)
	s.Equal("/api/reboot.php", s.lastPath)
	s.True(resp.Failed())
	s.Equal("Instance not found", resp.ErrorMessage())
}

func (s *ClientTestSuite) TestReboot_HTTPErrorWithPlainBody() {
	// Arrange
	s.respond(http.StatusBadGateway, `upstream unavailable`)

	// Act
	resp, err := s.client.Reboot(context.Background(), "tok", "inst")

	// Assert
	s.Require().NoError(err)
	s.True(resp.Failed())
	s.Equal("upstream unavailable", resp.ErrorMessage())
}
