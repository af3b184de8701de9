package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// tenantScope restricts a query to one (company, location) pair.
func tenantScope(db *gorm.DB, ctx context.Context, companyID, locationID string) *gorm.DB {
	return db.WithContext(ctx).Where("company_id = ? AND location_id = ?", companyID, locationID)
}

// firstOrNil runs First and maps a missing row to (nil, nil).
func firstOrNil[T any](query *gorm.DB) (*T, error) {
	var out T
	if err := query.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
