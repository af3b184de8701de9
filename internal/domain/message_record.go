package domain

import "time"

type MessageKind string

const (
	MessageKindText       MessageKind = "text"
	MessageKindMedia      MessageKind = "media"
	MessageKindAIResponse MessageKind = "ai_response"
)

type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

// MessageRecord is one dispatch attempt.
type MessageRecord struct {
	ID                string        `gorm:"primaryKey;type:uuid" json:"id"`
	InstallationID    string        `gorm:"type:uuid;index" json:"installation_id"`
	CompanyID         string        `gorm:"type:text;not null;index:idx_message_records_tenant,priority:1" json:"company_id"`
	LocationID        string        `gorm:"type:text;not null;default:'';index:idx_message_records_tenant,priority:2" json:"location_id"`
	CRMMessageID      string        `gorm:"column:crm_message_id;type:text;index" json:"crm_message_id"`
	ProviderMessageID *string       `gorm:"type:text;index" json:"provider_message_id"`
	Recipient         string        `gorm:"type:text;not null" json:"recipient"`
	Body              string        `gorm:"type:text" json:"body"`
	Kind              MessageKind   `gorm:"type:text;not null" json:"kind"`
	Status            MessageStatus `gorm:"type:text;not null;index" json:"status"`
	Error             *string       `gorm:"type:text" json:"error"`
	MediaURL          *string       `gorm:"type:text" json:"media_url"`
	Filename          *string       `gorm:"type:text" json:"filename"`
	SentAt            *time.Time    `gorm:"type:timestamp with time zone" json:"sent_at"`
	DeliveredAt       *time.Time    `gorm:"type:timestamp with time zone" json:"delivered_at"`
	CreatedAt         time.Time     `gorm:"type:timestamp with time zone;index:idx_message_records_tenant,priority:3" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"type:timestamp with time zone" json:"updated_at"`
}

func (MessageRecord) TableName() string {
	return "message_records"
}

func (m *MessageRecord) TenantKey() string {
	return TenantKey(m.CompanyID, m.LocationID)
}

// MessageFilter narrows message record queries and searches.
type MessageFilter struct {
	CompanyID  string
	LocationID string
	Query      string
	Status     string
	Kind       string
	StartTime  time.Time
	EndTime    time.Time
	Limit      int
}

type MessageStats struct {
	Total    int64            `json:"total"`
	ByKind   map[string]int64 `json:"by_kind"`
	ByStatus map[string]int64 `json:"by_status"`
}
