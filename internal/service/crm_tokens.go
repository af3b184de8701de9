package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/crm"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

// ErrNoCRMToken is returned while an installation still holds placeholder
// tokens.
var ErrNoCRMToken = errors.New("installation has no CRM access token")

//go:generate mockery --name CRMClient --output ../mocks
type CRMClient interface {
	ExchangeCode(ctx context.Context, code string) (*crm.Grant, error)
	RefreshToken(ctx context.Context, refreshToken string) (*crm.Grant, error)
	FindOrCreateContact(ctx context.Context, accessToken, locationID, phone string) (string, error)
	PostInboundMessage(ctx context.Context, accessToken string, msg crm.InboundMessage) error
	NotifyDelivery(ctx context.Context, accessToken string, notice crm.DeliveryNotice) error
}

// CRMTokens hands out valid CRM access tokens, refreshing and persisting them
// when they expired.
type CRMTokens struct {
	repo   repository.PostgresRepository
	client CRMClient
	logger *logger.Logger
	now    func() time.Time
}

func NewCRMTokens(repo repository.PostgresRepository, client CRMClient, logger *logger.Logger) *CRMTokens {
	return &CRMTokens{
		repo:   repo,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (t *CRMTokens) AccessToken(ctx context.Context, installation *domain.Installation) (string, error) {
	if !installation.HasOAuthTokens() {
		return "", ErrNoCRMToken
	}
	if !installation.TokenExpired(t.now()) {
		return installation.AccessToken, nil
	}
	if installation.RefreshToken == "" || installation.RefreshToken == domain.PlaceholderToken {
		return "", ErrNoCRMToken
	}

	grant, err := t.client.RefreshToken(ctx, installation.RefreshToken)
	if err != nil {
		return "", err
	}

	installation.AccessToken = grant.AccessToken
	if grant.RefreshToken != "" {
		installation.RefreshToken = grant.RefreshToken
	}
	installation.ExpiresAt = grant.Expiry
	if err := t.repo.Installation().Update(ctx, installation); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	t.logger.Info("Refreshed CRM access token", zap.String("tenant", installation.TenantKey()))
	return installation.AccessToken, nil
}
