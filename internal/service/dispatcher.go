package service

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/gateway"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

const defaultDispatchTimeout = 10 * time.Second

//go:generate mockery --name GatewayClient --output ../mocks
type GatewayClient interface {
	Send(ctx context.Context, req gateway.SendRequest) (*gateway.SendResponse, error)
	CheckConnection(ctx context.Context, accessToken, instanceID string) error
	SendGroup(ctx context.Context, req gateway.GroupSendRequest) (*gateway.SendResponse, error)
	QRCode(ctx context.Context, accessToken, instanceID string) (*gateway.InstanceResponse, error)
	Reboot(ctx context.Context, accessToken, instanceID string) (*gateway.InstanceResponse, error)
}

type DispatchRequest struct {
	Recipient string
	Body      string
	MediaURL  string
	Filename  string
}

// DispatchResult is the classified outcome of one gateway call. Err is one of
// *InvalidRecipientError, ErrGatewayTimeout or *GatewayError when Success is
// false.
type DispatchResult struct {
	Success           bool
	Recipient         string
	ProviderMessageID string
	Status            domain.MessageStatus
	Err               error
}

type Dispatcher struct {
	gateway GatewayClient
	phones  utils.PhoneNormalizer
	timeout time.Duration
}

func NewDispatcher(gatewayClient GatewayClient, phones utils.PhoneNormalizer, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Dispatcher{
		gateway: gatewayClient,
		phones:  phones,
		timeout: timeout,
	}
}

func (d *Dispatcher) NormalizeRecipient(raw string) (string, error) {
	number, ok := d.phones.Normalize(raw)
	if !ok {
		return number, &InvalidRecipientError{Phone: raw, Suggestion: d.phones.Suggestion(number)}
	}
	return number, nil
}

// Send performs exactly one gateway call. There is no retry and no
// deduplication.
func (d *Dispatcher) Send(ctx context.Context, config *domain.ProviderConfig, req DispatchRequest) *DispatchResult {
	result := &DispatchResult{Status: domain.MessageStatusFailed}

	number, err := d.NormalizeRecipient(req.Recipient)
	result.Recipient = number
	if err != nil {
		result.Err = err
		return result
	}

	sendReq := gateway.SendRequest{
		Number:      number,
		Type:        gateway.TypeText,
		Message:     req.Body,
		InstanceID:  config.InstanceID,
		AccessToken: config.AccessToken,
	}
	if req.MediaURL != "" {
		sendReq.Type = gateway.TypeMedia
		sendReq.MediaURL = req.MediaURL
		sendReq.Filename = req.Filename
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.gateway.Send(ctx, sendReq)
	if err != nil {
		if isTimeout(err) {
			result.Err = ErrGatewayTimeout
		} else {
			result.Err = &GatewayError{Message: err.Error()}
		}
		return result
	}

	if !resp.Accepted() {
		result.Err = &GatewayError{Message: resp.ErrorMessage()}
		return result
	}

	result.Success = true
	result.Status = domain.MessageStatusSent
	result.ProviderMessageID = resp.MessageID()
	return result
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
