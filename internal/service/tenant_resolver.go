package service

import (
	"context"
	"fmt"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
)

// Tenant is an installation together with its active provider config.
type Tenant struct {
	Installation   *domain.Installation
	ProviderConfig *domain.ProviderConfig
}

func (t *Tenant) Key() string {
	return t.Installation.TenantKey()
}

type TenantResolver struct {
	repo repository.PostgresRepository
}

func NewTenantResolver(repo repository.PostgresRepository) *TenantResolver {
	return &TenantResolver{repo: repo}
}

// Resolve finds the tenant for a company and location. Location may be empty,
// in which case the first installation of the company is used. A given
// location is never swapped for a sibling one.
func (r *TenantResolver) Resolve(ctx context.Context, companyID, locationID string) (*Tenant, error) {
	installation, err := r.FindInstallation(ctx, companyID, locationID)
	if err != nil {
		return nil, err
	}
	if installation == nil {
		return nil, ErrNotInstalled
	}

	config, err := r.repo.ProviderConfig().GetActive(ctx, installation.CompanyID, installation.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config: %w", err)
	}
	if config == nil {
		return nil, ErrNotConfigured
	}

	return &Tenant{Installation: installation, ProviderConfig: config}, nil
}

// FindInstallation returns nil when no installation matches.
func (r *TenantResolver) FindInstallation(ctx context.Context, companyID, locationID string) (*domain.Installation, error) {
	installations := r.repo.Installation()

	switch {
	case companyID != "" && locationID != "":
		installation, err := installations.GetByTenant(ctx, companyID, locationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load installation: %w", err)
		}
		return installation, nil
	case locationID != "":
		installation, err := installations.GetByLocation(ctx, locationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load installation by location: %w", err)
		}
		return installation, nil
	case companyID != "":
		installation, err := installations.GetFirstByCompany(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load installation by company: %w", err)
		}
		return installation, nil
	default:
		return nil, nil
	}
}

// ResolveByGatewayInstance finds the tenant whose active provider config owns
// instanceID. It returns nil when nothing matches.
func (r *TenantResolver) ResolveByGatewayInstance(ctx context.Context, instanceID string) (*Tenant, error) {
	if instanceID == "" {
		return nil, nil
	}

	config, err := r.repo.ProviderConfig().GetActiveByInstanceID(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider config by instance: %w", err)
	}
	if config == nil || config.InstanceID != instanceID {
		return nil, nil
	}

	installation, err := r.repo.Installation().GetByTenant(ctx, config.CompanyID, config.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load installation: %w", err)
	}
	if installation == nil {
		return nil, nil
	}

	return &Tenant{Installation: installation, ProviderConfig: config}, nil
}
