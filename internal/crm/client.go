package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/domain"
)

const (
	conversationTypeWhatsApp = "WhatsApp"
	directionInbound         = "inbound"
	maxErrorBodyBytes        = 4096
)

// Grant is the result of an OAuth code exchange or refresh.
type Grant struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	CompanyID    string
	LocationID   string
}

type InboundMessage struct {
	ContactID  string
	LocationID string
	Message    string
}

type DeliveryNotice struct {
	LocationID  string
	MessageID   string
	Status      string
	PhoneNumber string
	Timestamp   time.Time
}

// APIError is a non-2xx answer from the CRM API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm api returned HTTP %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	oauth      *oauth2.Config
}

func NewClient(cfg config.CRMConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		baseURL:    baseURL,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://marketplace.gohighlevel.com/oauth/chooselocation",
				TokenURL:  baseURL + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*Grant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code, oauth2.SetAuthURLParam("user_type", "Location"))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return grantFromToken(token), nil
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Grant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}
	return grantFromToken(token), nil
}

// FindOrCreateContact returns the id of the contact with phone, creating a
// placeholder contact when none exists.
func (c *Client) FindOrCreateContact(ctx context.Context, accessToken, locationID, phone string) (string, error) {
	query := url.Values{}
	query.Set("locationId", locationID)
	query.Set("query", phone)

	var found struct {
		Contacts []struct {
			ID string `json:"id"`
		} `json:"contacts"`
	}
	if err := c.do(ctx, http.MethodGet, "/contacts/?"+query.Encode(), accessToken, nil, &found); err != nil {
		return "", fmt.Errorf("failed to search contacts: %w", err)
	}
	if len(found.Contacts) > 0 && found.Contacts[0].ID != "" {
		return found.Contacts[0].ID, nil
	}

	payload := map[string]string{
		"firstName":  "WhatsApp",
		"lastName":   "Contact",
		"phone":      phone,
		"locationId": locationID,
	}
	var created struct {
		Contact struct {
			ID string `json:"id"`
		} `json:"contact"`
	}
	if err := c.do(ctx, http.MethodPost, "/contacts/", accessToken, payload, &created); err != nil {
		return "", fmt.Errorf("failed to create contact: %w", err)
	}
	if created.Contact.ID == "" {
		return "", fmt.Errorf("contact creation returned no id")
	}
	return created.Contact.ID, nil
}

// PostInboundMessage adds a message to the contact's conversation thread.
func (c *Client) PostInboundMessage(ctx context.Context, accessToken string, msg InboundMessage) error {
	payload := map[string]string{
		"type":       conversationTypeWhatsApp,
		"contactId":  msg.ContactID,
		"message":    msg.Message,
		"direction":  directionInbound,
		"locationId": msg.LocationID,
	}
	if err := c.do(ctx, http.MethodPost, "/conversations/messages", accessToken, payload, nil); err != nil {
		return fmt.Errorf("failed to post inbound message: %w", err)
	}
	return nil
}

func (c *Client) NotifyDelivery(ctx context.Context, accessToken string, notice DeliveryNotice) error {
	payload := map[string]string{
		"locationId":  notice.LocationID,
		"messageId":   notice.MessageID,
		"status":      notice.Status,
		"providerId":  domain.ProviderID,
		"timestamp":   notice.Timestamp.UTC().Format(time.RFC3339),
		"phoneNumber": notice.PhoneNumber,
	}
	if err := c.do(ctx, http.MethodPost, "/hooks/sms/delivery", accessToken, payload, nil); err != nil {
		return fmt.Errorf("failed to send delivery callback: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Version", c.apiVersion)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		return &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func grantFromToken(token *oauth2.Token) *Grant {
	return &Grant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		CompanyID:    extraString(token, "companyId"),
		LocationID:   extraString(token, "locationId"),
	}
}

func extraString(token *oauth2.Token, key string) string {
	if v, ok := token.Extra(key).(string); ok {
		return v
	}
	return ""
}
