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
)

//go:generate mockery --name WebSocketBroadcaster --output ../mocks
type WebSocketBroadcaster interface {
	BroadcastMessage(message *dto.MessageResponse)
}

//go:generate mockery --name IndexQueue --output ../mocks
type IndexQueue interface {
	SendIndexMessage(ctx context.Context, record *domain.MessageRecord) error
}

// DeliveryLog persists dispatch attempts and fans them out to search indexing
// and live subscribers.
type DeliveryLog struct {
	repo        repository.Repository
	indexQueue  IndexQueue
	broadcaster WebSocketBroadcaster
	logger      *logger.Logger
	now         func() time.Time
}

func NewDeliveryLog(repo repository.Repository, indexQueue IndexQueue, logger *logger.Logger) *DeliveryLog {
	return &DeliveryLog{
		repo:       repo,
		indexQueue: indexQueue,
		logger:     logger,
		now:        time.Now,
	}
}

// SetWebSocketBroadcaster sets the live stream sink
func (l *DeliveryLog) SetWebSocketBroadcaster(broadcaster WebSocketBroadcaster) {
	l.broadcaster = broadcaster
}

func (l *DeliveryLog) Record(ctx context.Context, record *domain.MessageRecord) error {
	if err := l.repo.MessageLog().Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store message record: %w", err)
	}
	l.publish(ctx, record)
	return nil
}

// Query returns the tenant's records, most recent first. A text query is
// served by the search index when one is configured.
func (l *DeliveryLog) Query(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageRecord, error) {
	if strings.TrimSpace(filter.Query) != "" {
		if search := l.repo.Search(); search != nil {
			return search.Search(ctx, &filter)
		}
	}
	return l.repo.MessageLog().List(ctx, filter)
}

// FindByEitherID looks a record up by CRM or gateway id within one tenant.
func (l *DeliveryLog) FindByEitherID(ctx context.Context, companyID, locationID, id string) (*domain.MessageRecord, error) {
	record, err := l.repo.MessageLog().FindByEitherID(ctx, companyID, locationID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up message: %w", err)
	}
	if record == nil {
		return nil, ErrMessageNotFound
	}
	return record, nil
}

// MarkStatus applies a later status callback to a record of the tenant. Only
// pending or sent records change; the result reports whether one did.
func (l *DeliveryLog) MarkStatus(ctx context.Context, companyID, locationID, id string, status domain.MessageStatus) (bool, error) {
	updated, err := l.repo.MessageLog().UpdateStatus(ctx, companyID, locationID, id, status, l.now())
	if err != nil {
		return false, fmt.Errorf("failed to update message status: %w", err)
	}
	if !updated {
		return false, nil
	}

	record, err := l.repo.MessageLog().FindByEitherID(ctx, companyID, locationID, id)
	if err != nil {
		l.logger.Warn("Failed to reload updated message", zap.String("message_id", id), zap.Error(err))
		return true, nil
	}
	if record != nil {
		l.publish(ctx, record)
	}
	return true, nil
}

func (l *DeliveryLog) Stats(ctx context.Context, companyID, locationID string) (*domain.MessageStats, error) {
	return l.repo.MessageLog().GetStats(ctx, companyID, locationID)
}

func (l *DeliveryLog) publish(ctx context.Context, record *domain.MessageRecord) {
	if l.indexQueue != nil {
		if err := l.indexQueue.SendIndexMessage(ctx, record); err != nil {
			l.logger.Warn("Failed to queue message for indexing",
				zap.String("tenant", record.TenantKey()),
				zap.String("record_id", record.ID),
				zap.Error(err))
		}
	}

	if l.broadcaster != nil {
		l.broadcaster.BroadcastMessage(dto.FromMessageRecord(record))
	}
}
