package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

type AutoResponseRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewAutoResponseRepository(writerDB, readerDB *gorm.DB) *AutoResponseRepository {
	return &AutoResponseRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *AutoResponseRepository) GetByTenant(ctx context.Context, companyID, locationID string) (*domain.AutoResponseConfig, error) {
	return firstOrNil[domain.AutoResponseConfig](tenantScope(r.readerDB, ctx, companyID, locationID))
}

func (r *AutoResponseRepository) Save(ctx context.Context, config *domain.AutoResponseConfig) error {
	return r.writerDB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"installation_id",
			"enabled",
			"keywords",
			"context",
			"persona",
			"api_key",
			"model",
			"max_tokens",
			"temperature",
			"updated_at",
		}),
	}).Create(config).Error
}
