package domain

import "time"

const (
	ProviderEventMessage = "message"
	ProviderEventAck     = "message_ack"
)

// ProviderEvent is a normalized webhook event from the messaging gateway.
type ProviderEvent struct {
	Type       string    `json:"type"`
	InstanceID string    `json:"instance_id"`
	From       string    `json:"from,omitempty"`
	Message    string    `json:"message,omitempty"`
	MessageID  string    `json:"message_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
