package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

type InstallationRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewInstallationRepository(writerDB, readerDB *gorm.DB) *InstallationRepository {
	return &InstallationRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *InstallationRepository) Upsert(ctx context.Context, installation *domain.Installation) (*domain.Installation, error) {
	var saved *domain.Installation

	err := r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Installation
		err := tx.Unscoped().
			Where("company_id = ? AND location_id = ?", installation.CompanyID, installation.LocationID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(installation).Error; err != nil {
				return err
			}
			saved = installation
			return nil
		}
		if err != nil {
			return err
		}

		installation.ID = existing.ID
		installation.DeletedAt = gorm.DeletedAt{}
		if err := tx.Unscoped().Save(installation).Error; err != nil {
			return err
		}
		saved = installation
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert installation: %w", err)
	}

	return saved, nil
}

func (r *InstallationRepository) GetByTenant(ctx context.Context, companyID, locationID string) (*domain.Installation, error) {
	return firstOrNil[domain.Installation](tenantScope(r.readerDB, ctx, companyID, locationID))
}

func (r *InstallationRepository) GetByLocation(ctx context.Context, locationID string) (*domain.Installation, error) {
	return firstOrNil[domain.Installation](r.readerDB.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("installed_at ASC"))
}

func (r *InstallationRepository) GetFirstByCompany(ctx context.Context, companyID string) (*domain.Installation, error) {
	return firstOrNil[domain.Installation](r.readerDB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("installed_at ASC"))
}

func (r *InstallationRepository) Update(ctx context.Context, installation *domain.Installation) error {
	return r.writerDB.WithContext(ctx).Save(installation).Error
}

func (r *InstallationRepository) Delete(ctx context.Context, companyID, locationID string) (int64, error) {
	result := tenantScope(r.writerDB, ctx, companyID, locationID).Delete(&domain.Installation{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *InstallationRepository) List(ctx context.Context) ([]domain.Installation, error) {
	var installations []domain.Installation
	if err := r.readerDB.WithContext(ctx).Order("installed_at ASC").Find(&installations).Error; err != nil {
		return nil, err
	}
	return installations, nil
}

func (r *InstallationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.readerDB.WithContext(ctx).Model(&domain.Installation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
