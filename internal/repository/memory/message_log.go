package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

// MessageLogStore is an append-only in-process message log.
type MessageLogStore struct {
	mu      sync.RWMutex
	records []domain.MessageRecord
}

func NewMessageLogStore() *MessageLogStore {
	return &MessageLogStore{}
}

func (s *MessageLogStore) Create(ctx context.Context, record *domain.MessageRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

func (s *MessageLogStore) List(ctx context.Context, filter domain.MessageFilter) ([]domain.MessageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.MessageRecord, 0)
	for _, r := range s.records {
		if r.CompanyID != filter.CompanyID || r.LocationID != filter.LocationID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		if filter.Kind != "" && string(r.Kind) != filter.Kind {
			continue
		}
		if filter.Query != "" &&
			!strings.Contains(strings.ToLower(r.Body), strings.ToLower(filter.Query)) &&
			!strings.Contains(r.Recipient, filter.Query) {
			continue
		}
		if !filter.StartTime.IsZero() && r.CreatedAt.Before(filter.StartTime) {
			continue
		}
		if !filter.EndTime.IsZero() && r.CreatedAt.After(filter.EndTime) {
			continue
		}
		matched = append(matched, r)
	}

	// Reverse first so records with equal timestamps stay newest-first.
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *MessageLogStore) FindByEitherID(ctx context.Context, companyID, locationID, id string) (*domain.MessageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		if matches(&s.records[i], companyID, locationID, id) {
			record := s.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (s *MessageLogStore) UpdateStatus(ctx context.Context, companyID, locationID, id string, status domain.MessageStatus, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	for i := range s.records {
		r := &s.records[i]
		if !matches(r, companyID, locationID, id) {
			continue
		}
		if r.Status != domain.MessageStatusPending && r.Status != domain.MessageStatusSent {
			continue
		}
		r.Status = status
		r.UpdatedAt = at
		if status == domain.MessageStatusDelivered {
			deliveredAt := at
			r.DeliveredAt = &deliveredAt
		}
		updated = true
	}
	return updated, nil
}

func (s *MessageLogStore) GetStats(ctx context.Context, companyID, locationID string) (*domain.MessageStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.MessageStats{
		ByKind:   make(map[string]int64),
		ByStatus: make(map[string]int64),
	}
	for _, r := range s.records {
		if r.CompanyID != companyID || r.LocationID != locationID {
			continue
		}
		stats.Total++
		stats.ByKind[string(r.Kind)]++
		stats.ByStatus[string(r.Status)]++
	}
	return stats, nil
}

func matches(r *domain.MessageRecord, companyID, locationID, id string) bool {
	if r.CompanyID != companyID || r.LocationID != locationID {
		return false
	}
	if r.ID == id || (r.CRMMessageID != "" && r.CRMMessageID == id) {
		return true
	}
	return r.ProviderMessageID != nil && *r.ProviderMessageID == id
}
