package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	TypeText       = "text"
	TypeMedia      = "media"
	TypeCheckPhone = "check_phone"

	// connectivityCheckNumber is a syntactically valid number used only to
	// exercise the credentials.
	connectivityCheckNumber = "60123456789"
	maxResponseBytes        = 1 << 20
)

type SendRequest struct {
	Number      string
	Type        string
	Message     string
	InstanceID  string
	AccessToken string
	MediaURL    string
	Filename    string
}

// SendResponse is the gateway's reply. Fields are extracted leniently because
// the gateway mixes string and numeric ids.
type SendResponse struct {
	HTTPStatus   int
	Status       string
	Message      string
	ID           string
	NestedStatus string
	NestedKeyID  string
	// Registered is only reported for check_phone requests.
	Registered bool
}

// Accepted reports gateway-level success: a top-level "success" status or a
// nested "PENDING" status. HTTP 200 alone is not enough.
func (r *SendResponse) Accepted() bool {
	return r.Status == "success" || r.NestedStatus == "PENDING"
}

func (r *SendResponse) MessageID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.NestedKeyID
}

func (r *SendResponse) ErrorMessage() string {
	switch {
	case r.Message != "":
		return r.Message
	case r.HTTPStatus >= 400:
		return fmt.Sprintf("gateway returned HTTP %d", r.HTTPStatus)
	case r.Status != "":
		return fmt.Sprintf("gateway returned status %q", r.Status)
	default:
		return "gateway rejected the request"
	}
}

type GroupSendRequest struct {
	GroupID     string
	Type        string
	Message     string
	InstanceID  string
	AccessToken string
	MediaURL    string
	Filename    string
}

// InstanceResponse is the reply of an instance management call. Body holds
// the gateway's JSON as received.
type InstanceResponse struct {
	HTTPStatus int
	Status     string
	Message    string
	Body       json.RawMessage
}

func (r *InstanceResponse) Failed() bool {
	return r.HTTPStatus >= 400 || r.Status == "error"
}

func (r *InstanceResponse) ErrorMessage() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("gateway returned HTTP %d", r.HTTPStatus)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send calls send.php. A non-nil error means the gateway could not be
// reached or answered with an unreadable body.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResponse, error) {
	params := url.Values{}
	params.Set("number", req.Number)
	params.Set("type", req.Type)
	params.Set("message", req.Message)
	params.Set("instance_id", req.InstanceID)
	params.Set("access_token", req.AccessToken)
	setMedia(params, req.MediaURL, req.Filename)

	return c.send(ctx, "/send.php", params)
}

// SendGroup calls sendgroupmsg.php.
func (c *Client) SendGroup(ctx context.Context, req GroupSendRequest) (*SendResponse, error) {
	params := url.Values{}
	params.Set("group_id", req.GroupID)
	params.Set("type", req.Type)
	params.Set("message", req.Message)
	params.Set("instance_id", req.InstanceID)
	params.Set("access_token", req.AccessToken)
	if req.Type == TypeMedia {
		setMedia(params, req.MediaURL, req.Filename)
	}

	return c.send(ctx, "/sendgroupmsg.php", params)
}

// QRCode calls getqrcode.php for the instance's login QR code.
func (c *Client) QRCode(ctx context.Context, accessToken, instanceID string) (*InstanceResponse, error) {
	return c.instanceCall(ctx, "/getqrcode.php", accessToken, instanceID)
}

// Reboot calls reboot.php.
func (c *Client) Reboot(ctx context.Context, accessToken, instanceID string) (*InstanceResponse, error) {
	return c.instanceCall(ctx, "/reboot.php", accessToken, instanceID)
}

func (c *Client) send(ctx context.Context, path string, params url.Values) (*SendResponse, error) {
	status, body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	resp, err := parseResponse(body)
	if err != nil {
		if status >= 400 {
			return &SendResponse{HTTPStatus: status, Message: strings.TrimSpace(string(body))}, nil
		}
		return nil, fmt.Errorf("invalid gateway response: %w", err)
	}
	resp.HTTPStatus = status

	return resp, nil
}

func (c *Client) instanceCall(ctx context.Context, path, accessToken, instanceID string) (*InstanceResponse, error) {
	params := url.Values{}
	params.Set("instance_id", instanceID)
	params.Set("access_token", accessToken)

	status, body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	resp := &InstanceResponse{HTTPStatus: status}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		if status >= 400 {
			resp.Message = strings.TrimSpace(string(body))
			return resp, nil
		}
		return nil, fmt.Errorf("invalid gateway response: %w", err)
	}
	resp.Status = rawString(fields["status"])
	resp.Message = rawString(fields["message"])
	resp.Body = json.RawMessage(body)

	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	return res.StatusCode, body, nil
}

func setMedia(params url.Values, mediaURL, filename string) {
	if mediaURL != "" {
		params.Set("media_url", mediaURL)
	}
	if filename != "" {
		params.Set("filename", filename)
	}
}

// CheckConnection verifies the credentials with a check_phone request.
func (c *Client) CheckConnection(ctx context.Context, accessToken, instanceID string) error {
	resp, err := c.Send(ctx, SendRequest{
		Number:      connectivityCheckNumber,
		Type:        TypeCheckPhone,
		Message:     "connection test",
		InstanceID:  instanceID,
		AccessToken: accessToken,
	})
	if err != nil {
		return err
	}
	if resp.HTTPStatus >= 400 || resp.Status == "error" {
		return errors.New(resp.ErrorMessage())
	}
	return nil
}

func parseResponse(body []byte) (*SendResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}

	resp := &SendResponse{
		Status:     rawString(fields["status"]),
		Message:    rawString(fields["message"]),
		ID:         rawString(fields["id"]),
		Registered: rawBool(fields["registered"]),
	}

	var nested struct {
		Status json.RawMessage `json:"status"`
		Key    struct {
			ID json.RawMessage `json:"id"`
		} `json:"key"`
	}
	if data, ok := fields["data"]; ok && json.Unmarshal(data, &nested) == nil {
		resp.NestedStatus = rawString(nested.Status)
		resp.NestedKeyID = rawString(nested.Key.ID)
	}

	return resp, nil
}

// rawString renders a JSON string or number as plain text.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawBool accepts true, "true" and 1.
func rawBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	switch strings.ToLower(rawString(raw)) {
	case "true", "1":
		return true
	default:
		return false
	}
}
