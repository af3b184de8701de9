package postgres

import (
	"gorm.io/gorm"

	"github.com/kingrain94/waapify-relay/internal/config"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
)

type postgresRepository struct {
	installationRepo   repository.InstallationRepository
	providerConfigRepo repository.ProviderConfigRepository
	messageLogRepo     repository.MessageLogStore
	rateLimitRepo      repository.RateLimitStore
	autoResponseRepo   repository.AutoResponseRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.PostgresRepository {
	writer, reader := dbConnections.Writer, dbConnections.Reader
	return &postgresRepository{
		installationRepo:   NewInstallationRepository(writer, reader),
		providerConfigRepo: NewProviderConfigRepository(writer, reader),
		messageLogRepo:     NewMessageLogRepository(writer, reader),
		rateLimitRepo:      NewRateLimitRepository(writer),
		autoResponseRepo:   NewAutoResponseRepository(writer, reader),
	}
}

// AutoMigrate creates or updates the relay tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Installation{},
		&domain.ProviderConfig{},
		&domain.MessageRecord{},
		&domain.RateLimitCounter{},
		&domain.AutoResponseConfig{},
	)
}

func (r *postgresRepository) Installation() repository.InstallationRepository {
	return r.installationRepo
}

func (r *postgresRepository) ProviderConfig() repository.ProviderConfigRepository {
	return r.providerConfigRepo
}

func (r *postgresRepository) MessageLog() repository.MessageLogStore {
	return r.messageLogRepo
}

func (r *postgresRepository) RateLimit() repository.RateLimitStore {
	return r.rateLimitRepo
}

func (r *postgresRepository) AutoResponse() repository.AutoResponseRepository {
	return r.autoResponseRepo
}
