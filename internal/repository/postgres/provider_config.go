package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

type ProviderConfigRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewProviderConfigRepository(writerDB, readerDB *gorm.DB) *ProviderConfigRepository {
	return &ProviderConfigRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *ProviderConfigRepository) Save(ctx context.Context, config *domain.ProviderConfig) error {
	return r.writerDB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"installation_id",
			"access_token",
			"instance_id",
			"sender_number",
			"is_active",
			"last_tested_at",
			"test_status",
			"updated_at",
		}),
	}).Create(config).Error
}

func (r *ProviderConfigRepository) GetActive(ctx context.Context, companyID, locationID string) (*domain.ProviderConfig, error) {
	return firstOrNil[domain.ProviderConfig](tenantScope(r.readerDB, ctx, companyID, locationID).
		Where("is_active = ?", true))
}

func (r *ProviderConfigRepository) GetActiveByInstanceID(ctx context.Context, instanceID string) (*domain.ProviderConfig, error) {
	return firstOrNil[domain.ProviderConfig](r.readerDB.WithContext(ctx).
		Where("instance_id = ? AND is_active = ?", instanceID, true).
		Order("updated_at DESC"))
}

func (r *ProviderConfigRepository) Deactivate(ctx context.Context, companyID, locationID string) error {
	return tenantScope(r.writerDB, ctx, companyID, locationID).
		Model(&domain.ProviderConfig{}).
		Update("is_active", false).Error
}

func (r *ProviderConfigRepository) ListActive(ctx context.Context) ([]domain.ProviderConfig, error) {
	var configs []domain.ProviderConfig
	if err := r.readerDB.WithContext(ctx).Where("is_active = ?", true).Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}
