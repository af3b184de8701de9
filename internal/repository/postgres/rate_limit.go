package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

// RateLimitRepository serializes counter updates per tenant with a row lock,
// so different tenants never wait on each other.
type RateLimitRepository struct {
	writerDB *gorm.DB
}

func NewRateLimitRepository(writerDB *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{writerDB: writerDB}
}

func (r *RateLimitRepository) WithCounter(ctx context.Context, tenantKey string, fn func(counter *domain.RateLimitCounter) error) error {
	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := domain.RateLimitCounter{TenantKey: tenantKey}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var counter domain.RateLimitCounter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_key = ?", tenantKey).
			First(&counter).Error; err != nil {
			return err
		}

		if err := fn(&counter); err != nil {
			return err
		}

		return tx.Save(&counter).Error
	})
}

func (r *RateLimitRepository) DeleteIdleBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.writerDB.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&domain.RateLimitCounter{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
