package repository

import (
	"context"
	"time"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

// Lookups return (nil, nil) when the row does not exist.

//go:generate mockery --name InstallationRepository --output ../mocks
type InstallationRepository interface {
	// Upsert creates the installation or restores a previously removed one.
	Upsert(ctx context.Context, installation *domain.Installation) (*domain.Installation, error)
	GetByTenant(ctx context.Context, companyID, locationID string) (*domain.Installation, error)
	GetByLocation(ctx context.Context, locationID string) (*domain.Installation, error)
	GetFirstByCompany(ctx context.Context, companyID string) (*domain.Installation, error)
	Update(ctx context.Context, installation *domain.Installation) error
	Delete(ctx context.Context, companyID, locationID string) (int64, error)
	List(ctx context.Context) ([]domain.Installation, error)
	Count(ctx context.Context) (int64, error)
}

//go:generate mockery --name ProviderConfigRepository --output ../mocks
type ProviderConfigRepository interface {
	// Save upserts the single config row of the tenant.
	Save(ctx context.Context, config *domain.ProviderConfig) error
	GetActive(ctx context.Context, companyID, locationID string) (*domain.ProviderConfig, error)
	GetActiveByInstanceID(ctx context.Context, instanceID string) (*domain.ProviderConfig, error)
	Deactivate(ctx context.Context, companyID, locationID string) error
	ListActive(ctx context.Context) ([]domain.ProviderConfig, error)
}

//go:generate mockery --name MessageLogStore --output ../mocks
type MessageLogStore interface {
	Create(ctx context.Context, record *domain.MessageRecord) error
	List(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageRecord, error)
	// FindByEitherID matches the CRM or the gateway message id within one
	// tenant.
	FindByEitherID(ctx context.Context, companyID, locationID, id string) (*domain.MessageRecord, error)
	// UpdateStatus moves a pending or sent record of the tenant to status. It
	// reports whether a record changed.
	UpdateStatus(ctx context.Context, companyID, locationID, id string, status domain.MessageStatus, at time.Time) (bool, error)
	GetStats(ctx context.Context, companyID, locationID string) (*domain.MessageStats, error)
}

//go:generate mockery --name RateLimitStore --output ../mocks
type RateLimitStore interface {
	// WithCounter runs fn on the tenant's counter while holding that tenant's
	// lock and persists the counter afterwards. A missing counter is passed in
	// zero-valued.
	WithCounter(ctx context.Context, tenantKey string, fn func(counter *domain.RateLimitCounter) error) error
	DeleteIdleBefore(ctx context.Context, before time.Time) (int64, error)
}

//go:generate mockery --name AutoResponseRepository --output ../mocks
type AutoResponseRepository interface {
	GetByTenant(ctx context.Context, companyID, locationID string) (*domain.AutoResponseConfig, error)
	Save(ctx context.Context, config *domain.AutoResponseConfig) error
}

//go:generate mockery --name SearchRepository --output ../mocks
type SearchRepository interface {
	Index(ctx context.Context, record *domain.MessageRecord) error
	BulkIndex(ctx context.Context, records []domain.MessageRecord) error
	Search(ctx context.Context, filter *domain.MessageFilter) ([]domain.MessageRecord, error)
	CreateIndex(ctx context.Context, tenantKey string, t time.Time) error
}

type PostgresRepository interface {
	Installation() InstallationRepository
	ProviderConfig() ProviderConfigRepository
	MessageLog() MessageLogStore
	RateLimit() RateLimitStore
	AutoResponse() AutoResponseRepository
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	PostgresRepository
	Search() SearchRepository
}
