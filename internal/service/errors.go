package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotInstalled           = errors.New("installation not found")
	ErrNotConfigured          = errors.New("messaging provider not configured")
	ErrInvalidRecipient       = errors.New("invalid recipient phone number")
	ErrGatewayTimeout         = errors.New("messaging gateway timed out")
	ErrAuthFailed             = errors.New("messaging gateway rejected the credentials")
	ErrMissingFields          = errors.New("missing required fields")
	ErrUnsupportedMessageType = errors.New("unsupported message type")
	ErrMessageNotFound        = errors.New("message not found")
)

// RateLimitedError is returned when a tenant exhausted its message window.
type RateLimitedError struct {
	Limit      int
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit of %d messages per minute exceeded, retry after %ds", e.Limit, e.RetryAfter)
}

// GatewayError carries the messaging gateway's own failure message.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "messaging gateway error: " + e.Message
}

type ModelError struct {
	Message string
}

func (e *ModelError) Error() string {
	return "language model error: " + e.Message
}

// InvalidRecipientError matches ErrInvalidRecipient.
type InvalidRecipientError struct {
	Phone      string
	Suggestion string
}

func (e *InvalidRecipientError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidRecipient, e.Phone)
}

func (e *InvalidRecipientError) Unwrap() error {
	return ErrInvalidRecipient
}

func missingFields(fields ...string) error {
	return fmt.Errorf("%w: %v", ErrMissingFields, fields)
}
