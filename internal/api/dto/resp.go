package dto

import "time"

// SendMessageResponse is returned to the CRM after a successful dispatch.
type SendMessageResponse struct {
	Success        bool      `json:"success" example:"true"`
	ConversationID string    `json:"conversationId" example:"conv_loc_123_contact_123"`
	MessageID      string    `json:"messageId" example:"msg_123"`
	Status         string    `json:"status" example:"sent"`
	DeliveredAt    time.Time `json:"deliveredAt" example:"2025-07-17T21:20:48Z"`
	Warning        string    `json:"warning,omitempty" example:"message sent but not logged"`
}

// WebhookErrorResponse is returned to webhook callers on failure.
type WebhookErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	Error      string `json:"error" example:"messaging provider not configured"`
	ErrorCode  string `json:"errorCode" example:"NOT_CONFIGURED"`
	Suggestion string `json:"suggestion,omitempty"`
	MessageID  string `json:"messageId,omitempty" example:"msg_123"`
	RetryAfter int    `json:"retryAfter,omitempty" example:"42"`
}

type AckResponse struct {
	Success bool `json:"success" example:"true"`
}

type ProviderAckResponse struct {
	Status string `json:"status" example:"ok"`
}

type MessageResponse struct {
	ID                string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompanyID         string     `json:"company_id" example:"comp_123"`
	LocationID        string     `json:"location_id" example:"loc_123"`
	CRMMessageID      string     `json:"crm_message_id" example:"msg_123"`
	ProviderMessageID *string    `json:"provider_message_id,omitempty" example:"98765"`
	Recipient         string     `json:"recipient" example:"60168970072"`
	Body              string     `json:"body" example:"Hello"`
	Kind              string     `json:"kind" example:"text"`
	Status            string     `json:"status" example:"sent"`
	Error             *string    `json:"error,omitempty"`
	MediaURL          *string    `json:"media_url,omitempty"`
	Filename          *string    `json:"filename,omitempty"`
	SentAt            *time.Time `json:"sent_at,omitempty" example:"2025-07-17T21:20:48Z"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at" example:"2025-07-17T21:20:48Z"`
}

type MessageStatsResponse struct {
	Total    int64            `json:"total" example:"42"`
	ByKind   map[string]int64 `json:"by_kind"`
	ByStatus map[string]int64 `json:"by_status"`
}

type AutoResponseResponse struct {
	Enabled     bool      `json:"enabled" example:"true"`
	Keywords    []string  `json:"keywords" example:"help,order"`
	Context     string    `json:"context" example:"You are a helpful business assistant."`
	Persona     string    `json:"persona" example:"professional and friendly"`
	Model       string    `json:"model" example:"gpt-3.5-turbo"`
	MaxTokens   int       `json:"max_tokens" example:"300"`
	Temperature float64   `json:"temperature" example:"0.7"`
	HasAPIKey   bool      `json:"has_api_key" example:"true"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type ProviderStatusResponse struct {
	Status       string     `json:"status" example:"active"`
	InstanceID   string     `json:"instance_id,omitempty" example:"609ACF283XXXX"`
	SenderNumber string     `json:"sender_number,omitempty" example:"60123456789"`
	LastTestedAt *time.Time `json:"last_tested_at,omitempty"`
	TestStatus   string     `json:"test_status,omitempty" example:"success"`
	Error        string     `json:"error,omitempty"`
}

type PhoneNumbersResponse struct {
	PhoneNumbers []string `json:"phoneNumbers" example:"60123456789"`
}

type ProviderConfigSummary struct {
	ID           string   `json:"id" example:"waapify-sms"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

type ExternalAuthResponse struct {
	Success        bool                   `json:"success" example:"true"`
	Message        string                 `json:"message" example:"Provider connected"`
	ProviderConfig *ProviderConfigSummary `json:"providerConfig,omitempty"`
}

type OAuthCallbackResponse struct {
	Success    bool   `json:"success" example:"true"`
	CompanyID  string `json:"companyId" example:"comp_123"`
	LocationID string `json:"locationId" example:"loc_123"`
	Status     string `json:"status" example:"authorized"`
}

type BackupResponse struct {
	Key             string    `json:"key" example:"backups/2025/07/17/snapshot-20250717T212048Z.json"`
	Installations   int       `json:"installations" example:"12"`
	ProviderConfigs int       `json:"provider_configs" example:"10"`
	CreatedAt       time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
}

type ActionSendResponse struct {
	Success   bool      `json:"success" example:"true"`
	MessageID string    `json:"messageId" example:"98765"`
	Recipient string    `json:"recipient" example:"60168970072"`
	Status    string    `json:"status" example:"sent"`
	Timestamp time.Time `json:"timestamp"`
}

// ActionTestModeResponse answers an action called with test_mode. Nothing is
// sent.
type ActionTestModeResponse struct {
	Success    bool      `json:"success" example:"true"`
	TestMode   bool      `json:"test_mode" example:"true"`
	Action     string    `json:"action" example:"Send WhatsApp Text"`
	MessageID  string    `json:"messageId" example:"test_550e8400"`
	Recipient  string    `json:"recipient" example:"60168970072"`
	PhoneValid bool      `json:"phoneValid" example:"true"`
	Timestamp  time.Time `json:"timestamp"`
}

type CheckPhoneResponse struct {
	Success    bool   `json:"success" example:"true"`
	Number     string `json:"number" example:"60168970072"`
	IsWhatsApp bool   `json:"isWhatsApp" example:"true"`
}

type AIActionResponse struct {
	Success           bool     `json:"success" example:"true"`
	Triggered         bool     `json:"triggered" example:"true"`
	AIResponse        string   `json:"aiResponse,omitempty" example:"The blue shirt is RM49."`
	TriggeredKeywords []string `json:"triggeredKeywords"`
	WhatsAppSent      bool     `json:"whatsappSent" example:"true"`
	SendError         string   `json:"sendError,omitempty"`
	MessageID         string   `json:"messageId,omitempty" example:"ai_550e8400"`
}

type GroupMessageResponse struct {
	Success   bool   `json:"success" example:"true"`
	MessageID string `json:"messageId" example:"group_550e8400"`
	Status    string `json:"status" example:"sent"`
}
