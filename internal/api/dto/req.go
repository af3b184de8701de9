package dto

import (
	"encoding/json"
	"strings"
)

// WebhookRequest is the CRM webhook body. Type selects between the lifecycle
// events and an outbound send.
type WebhookRequest struct {
	Type        string       `json:"type" example:"SMS"`
	ContactID   string       `json:"contactId" example:"contact_123"`
	LocationID  string       `json:"locationId" example:"loc_123"`
	CompanyID   string       `json:"companyId" example:"comp_123"`
	Phone       string       `json:"phone" example:"+60168970072"`
	Message     string       `json:"message" example:"Hello from the CRM"`
	MessageID   string       `json:"messageId" example:"msg_123"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment accepts either a bare URL string or {url, filename}.
type Attachment struct {
	URL      string `json:"url" example:"https://example.com/catalog.pdf"`
	Filename string `json:"filename,omitempty" example:"catalog.pdf"`
}

func (a *Attachment) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		a.URL = url
		a.Filename = ""
		return nil
	}

	type attachment Attachment
	var obj attachment
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = Attachment(obj)
	return nil
}

// ProviderWebhookRequest is the gateway's inbound webhook body.
type ProviderWebhookRequest struct {
	Type string              `json:"type" example:"message"`
	Data ProviderWebhookData `json:"data"`
}

type ProviderWebhookData struct {
	From       string `json:"from" example:"60168970072"`
	Number     string `json:"number"`
	Message    string `json:"message" example:"I need help with my order"`
	Text       string `json:"text"`
	InstanceID string `json:"instance_id" example:"609ACF283XXXX"`
	ID         string `json:"id"`
	Status     string `json:"status"`
}

type UpdateAutoResponseRequest struct {
	Enabled     *bool    `json:"enabled" example:"true"`
	Keywords    []string `json:"keywords" example:"help,order"`
	Context     *string  `json:"context" example:"You are a helpful business assistant."`
	Persona     *string  `json:"persona" example:"professional and friendly"`
	APIKey      *string  `json:"api_key" example:"sk-..."`
	Model       *string  `json:"model" example:"gpt-3.5-turbo"`
	MaxTokens   *int     `json:"max_tokens" binding:"omitempty,min=1,max=4000" example:"300"`
	Temperature *float64 `json:"temperature" binding:"omitempty,min=0,max=2" example:"0.7"`
}

type ListMessagesQuery struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Query     string `form:"q"`
	Status    string `form:"status" binding:"omitempty,oneof=pending sent delivered failed"`
	Kind      string `form:"kind" binding:"omitempty,oneof=text media ai_response"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
}

// ExternalAuthRequest is the provider credential form after alias resolution.
type ExternalAuthRequest struct {
	AccessToken     string
	InstanceID      string
	WhatsAppNumber  string
	LocationID      string
	CompanyID       string
	DummyLocationID string
	DummyCompanyID  string
}

// externalAuthAliases lists accepted spellings per field, most preferred first.
var externalAuthAliases = map[string][]string{
	"access_token":    {"access_token", "accessToken", "access-token"},
	"instance_id":     {"instance_id", "instanceId", "instance-id"},
	"whatsapp_number": {"whatsapp_number", "whatsappNumber", "whatsapp-number"},
	"location_id":     {"locationId", "location_id"},
	"company_id":      {"companyId", "company_id"},
}

// NewExternalAuthRequest resolves the credential fields from raw form or JSON
// values.
func NewExternalAuthRequest(fields map[string]string) ExternalAuthRequest {
	lookup := func(name string) string {
		for _, alias := range externalAuthAliases[name] {
			if v := strings.TrimSpace(fields[alias]); v != "" {
				return v
			}
		}
		return ""
	}

	return ExternalAuthRequest{
		AccessToken:     lookup("access_token"),
		InstanceID:      lookup("instance_id"),
		WhatsAppNumber:  lookup("whatsapp_number"),
		LocationID:      lookup("location_id"),
		CompanyID:       lookup("company_id"),
		DummyLocationID: strings.TrimSpace(fields["dummyLocationId"]),
		DummyCompanyID:  strings.TrimSpace(fields["dummyCompanyId"]),
	}
}

// IsVerification reports a marketplace verification request.
func (r ExternalAuthRequest) IsVerification() bool {
	return r.DummyLocationID != "" || r.DummyCompanyID != ""
}

// ActionSendRequest is the body of the send-whatsapp workflow actions.
// Credentials may be given inline or looked up from companyId/locationId.
type ActionSendRequest struct {
	Number      string `json:"number" example:"60168970072"`
	Message     string `json:"message" example:"Your appointment is confirmed"`
	MediaURL    string `json:"media_url" example:"https://example.com/invoice.pdf"`
	Filename    string `json:"filename" example:"invoice.pdf"`
	InstanceID  string `json:"instance_id" example:"609ACF283XXXX"`
	AccessToken string `json:"access_token"`
	LocationID  string `json:"locationId" example:"loc_123"`
	CompanyID   string `json:"companyId" example:"comp_123"`
	TestMode    bool   `json:"test_mode" example:"false"`
}

type ActionCheckPhoneRequest struct {
	Number      string `json:"number" example:"60168970072"`
	InstanceID  string `json:"instance_id" example:"609ACF283XXXX"`
	AccessToken string `json:"access_token"`
	LocationID  string `json:"locationId" example:"loc_123"`
	CompanyID   string `json:"companyId" example:"comp_123"`
}

type ActionAIRequest struct {
	CustomerMessage string   `json:"customerMessage" example:"What is the price of the blue shirt?"`
	Keywords        []string `json:"keywords" example:"price,stock"`
	Context         string   `json:"context" example:"You are a helpful business assistant."`
	Persona         string   `json:"persona" example:"professional and friendly"`
	LocationID      string   `json:"locationId" example:"loc_123"`
	CompanyID       string   `json:"companyId" example:"comp_123"`
	ContactID       string   `json:"contactId" example:"contact_123"`
	Phone           string   `json:"phone" example:"60168970072"`
}

type GroupMessageRequest struct {
	GroupID  string `json:"group_id" binding:"required" example:"120363025246125486@g.us"`
	Message  string `json:"message" binding:"required" example:"Weekly specials are out"`
	MediaURL string `json:"media_url" example:"https://example.com/specials.png"`
	Filename string `json:"filename" example:"specials.png"`
}
