package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/pkg/logger"
	"github.com/kingrain94/waapify-relay/pkg/utils"
)

const (
	EventInstall               = "INSTALL"
	EventUninstall             = "UNINSTALL"
	EventExternalAuthConnected = "EXTERNAL_AUTH_CONNECTED"

	connectionTestTimeout = 10 * time.Second
)

// IsLifecycleEvent reports whether a CRM webhook type is an installation event
// rather than an outbound send.
func IsLifecycleEvent(eventType string) bool {
	switch strings.ToUpper(eventType) {
	case EventInstall, EventUninstall, EventExternalAuthConnected:
		return true
	default:
		return false
	}
}

// LifecycleService moves installations through
// pending_oauth -> authorized -> configured and removes them on uninstall.
type LifecycleService struct {
	repo     repository.PostgresRepository
	resolver *TenantResolver
	gateway  GatewayClient
	crm      CRMClient
	logger   *logger.Logger
	now      func() time.Time
}

func NewLifecycleService(
	repo repository.PostgresRepository,
	resolver *TenantResolver,
	gatewayClient GatewayClient,
	crmClient CRMClient,
	logger *logger.Logger,
) *LifecycleService {
	return &LifecycleService{
		repo:     repo,
		resolver: resolver,
		gateway:  gatewayClient,
		crm:      crmClient,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *LifecycleService) HandleEvent(ctx context.Context, eventType, companyID, locationID string) error {
	if companyID == "" {
		return missingFields("companyId")
	}

	switch strings.ToUpper(eventType) {
	case EventInstall:
		_, err := s.Install(ctx, companyID, locationID)
		return err
	case EventUninstall:
		return s.Uninstall(ctx, companyID, locationID)
	case EventExternalAuthConnected:
		s.logger.Info("External auth connected",
			zap.String("company_id", companyID),
			zap.String("location_id", locationID))
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMessageType, eventType)
	}
}

// Install registers the tenant with placeholder tokens. A repeated install of
// an active tenant is a no-op.
func (s *LifecycleService) Install(ctx context.Context, companyID, locationID string) (*domain.Installation, error) {
	existing, err := s.repo.Installation().GetByTenant(ctx, companyID, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load installation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	installation, err := s.repo.Installation().Upsert(ctx, &domain.Installation{
		CompanyID:    companyID,
		LocationID:   locationID,
		AccessToken:  domain.PlaceholderToken,
		RefreshToken: domain.PlaceholderToken,
		Status:       domain.InstallationStatusPendingOAuth,
		InstalledAt:  s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installation created", zap.String("tenant", installation.TenantKey()))
	return installation, nil
}

// Uninstall deactivates the provider config and removes the installation.
// Message records are kept.
func (s *LifecycleService) Uninstall(ctx context.Context, companyID, locationID string) error {
	if err := s.repo.ProviderConfig().Deactivate(ctx, companyID, locationID); err != nil {
		return fmt.Errorf("failed to deactivate provider config: %w", err)
	}

	removed, err := s.repo.Installation().Delete(ctx, companyID, locationID)
	if err != nil {
		return fmt.Errorf("failed to remove installation: %w", err)
	}

	s.logger.Info("Installation removed",
		zap.String("tenant", domain.TenantKey(companyID, locationID)),
		zap.Int64("rows", removed))
	return nil
}

// CompleteOAuth exchanges an authorization code and stores the CRM tokens.
func (s *LifecycleService) CompleteOAuth(ctx context.Context, code string) (*domain.Installation, error) {
	if code == "" {
		return nil, missingFields("code")
	}

	grant, err := s.crm.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if grant.CompanyID == "" {
		return nil, fmt.Errorf("%w: token response carries no company", ErrAuthFailed)
	}

	installation, err := s.repo.Installation().GetByTenant(ctx, grant.CompanyID, grant.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load installation: %w", err)
	}
	if installation == nil {
		installation = &domain.Installation{
			CompanyID:   grant.CompanyID,
			LocationID:  grant.LocationID,
			Status:      domain.InstallationStatusPendingOAuth,
			InstalledAt: s.now(),
		}
	}

	installation.AccessToken = grant.AccessToken
	installation.RefreshToken = grant.RefreshToken
	installation.ExpiresAt = grant.Expiry
	if installation.Status != domain.InstallationStatusConfigured {
		installation.Status = domain.InstallationStatusAuthorized
	}

	saved, err := s.repo.Installation().Upsert(ctx, installation)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installation authorized", zap.String("tenant", saved.TenantKey()))
	return saved, nil
}

// ConnectProvider verifies gateway credentials and activates them for the
// tenant. Marketplace verification requests return (nil, nil).
func (s *LifecycleService) ConnectProvider(ctx context.Context, req dto.ExternalAuthRequest) (*domain.ProviderConfig, error) {
	if req.IsVerification() {
		s.logger.Info("Marketplace verification request acknowledged")
		return nil, nil
	}

	var missing []string
	if req.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if req.InstanceID == "" {
		missing = append(missing, "instance_id")
	}
	if req.CompanyID == "" && req.LocationID == "" {
		missing = append(missing, "locationId")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	testCtx, cancel := context.WithTimeout(ctx, connectionTestTimeout)
	err := s.gateway.CheckConnection(testCtx, req.AccessToken, req.InstanceID)
	cancel()
	if err != nil {
		s.logger.Warn("Gateway connection test failed",
			zap.String("instance_id", req.InstanceID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	installation, err := s.resolver.FindInstallation(ctx, req.CompanyID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if installation == nil {
		if req.CompanyID == "" {
			return nil, missingFields("companyId")
		}
		installation, err = s.Install(ctx, req.CompanyID, req.LocationID)
		if err != nil {
			return nil, err
		}
	}

	testedAt := s.now()
	config := &domain.ProviderConfig{
		InstallationID: installation.ID,
		CompanyID:      installation.CompanyID,
		LocationID:     installation.LocationID,
		AccessToken:    req.AccessToken,
		InstanceID:     req.InstanceID,
		SenderNumber:   utils.DigitsOnly(req.WhatsAppNumber),
		IsActive:       true,
		LastTestedAt:   &testedAt,
		TestStatus:     domain.TestStatusSuccess,
	}
	if err := s.repo.ProviderConfig().Save(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save provider config: %w", err)
	}

	installation.Status = domain.InstallationStatusConfigured
	if err := s.repo.Installation().Update(ctx, installation); err != nil {
		return nil, fmt.Errorf("failed to update installation: %w", err)
	}

	s.logger.Info("Messaging provider connected",
		zap.String("tenant", installation.TenantKey()),
		zap.String("instance_id", req.InstanceID))
	return config, nil
}
