package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

const (
	defaultMessageListLimit = 50
	maxMessageListLimit     = 500
)

type MessageLogRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewMessageLogRepository(writerDB, readerDB *gorm.DB) *MessageLogRepository {
	return &MessageLogRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *MessageLogRepository) Create(ctx context.Context, record *domain.MessageRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	return r.writerDB.WithContext(ctx).Create(record).Error
}

func (r *MessageLogRepository) List(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageRecord, error) {
	if filter.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}

	db := tenantScope(r.readerDB, ctx, filter.CompanyID, filter.LocationID)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		db = db.Where("kind = ?", filter.Kind)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		db = db.Where("(body ILIKE ? OR recipient LIKE ?)", like, like)
	}
	if !filter.StartTime.IsZero() {
		db = db.Where("created_at >= ?", filter.StartTime)
	}
	if !filter.EndTime.IsZero() {
		db = db.Where("created_at <= ?", filter.EndTime)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMessageListLimit
	}
	if limit > maxMessageListLimit {
		limit = maxMessageListLimit
	}

	var records []domain.MessageRecord
	if err := db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MessageLogRepository) FindByEitherID(ctx context.Context, companyID, locationID, id string) (*domain.MessageRecord, error) {
	return firstOrNil[domain.MessageRecord](tenantScope(r.readerDB, ctx, companyID, locationID).
		Where("(crm_message_id = ? OR provider_message_id = ? OR id::text = ?)", id, id, id).
		Order("created_at DESC"))
}

func (r *MessageLogRepository) UpdateStatus(ctx context.Context, companyID, locationID, id string, status domain.MessageStatus, at time.Time) (bool, error) {
	updates := map[string]any{
		"status":     status,
		"updated_at": at,
	}
	if status == domain.MessageStatusDelivered {
		updates["delivered_at"] = at
	}

	updatable := []string{string(domain.MessageStatusPending), string(domain.MessageStatusSent)}
	result := tenantScope(r.writerDB, ctx, companyID, locationID).
		Model(&domain.MessageRecord{}).
		Where("(provider_message_id = ? OR crm_message_id = ? OR id::text = ?) AND status IN ?", id, id, id, updatable).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MessageLogRepository) GetStats(ctx context.Context, companyID, locationID string) (*domain.MessageStats, error) {
	stats := &domain.MessageStats{
		ByKind:   make(map[string]int64),
		ByStatus: make(map[string]int64),
	}

	type countResult struct {
		Name  string
		Count int64
	}

	var kinds []countResult
	if err := tenantScope(r.readerDB, ctx, companyID, locationID).
		Model(&domain.MessageRecord{}).
		Select("kind AS name, COUNT(*) AS count").
		Group("kind").
		Scan(&kinds).Error; err != nil {
		return nil, fmt.Errorf("failed to count messages by kind: %w", err)
	}

	var statuses []countResult
	if err := tenantScope(r.readerDB, ctx, companyID, locationID).
		Model(&domain.MessageRecord{}).
		Select("status AS name, COUNT(*) AS count").
		Group("status").
		Scan(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to count messages by status: %w", err)
	}

	for _, k := range kinds {
		stats.ByKind[k.Name] = k.Count
		stats.Total += k.Count
	}
	for _, s := range statuses {
		stats.ByStatus[s.Name] = s.Count
	}

	return stats, nil
}
