package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kingrain94/waapify-relay/internal/domain"
)

// RateLimitStore keeps counters in process. Each tenant key has its own lock.
type RateLimitStore struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	counters map[string]domain.RateLimitCounter
}

func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{
		locks:    make(map[string]*sync.Mutex),
		counters: make(map[string]domain.RateLimitCounter),
	}
}

func (s *RateLimitStore) WithCounter(ctx context.Context, tenantKey string, fn func(counter *domain.RateLimitCounter) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := s.lockFor(tenantKey)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	counter, ok := s.counters[tenantKey]
	s.mu.Unlock()
	if !ok {
		counter = domain.RateLimitCounter{TenantKey: tenantKey}
	}

	if err := fn(&counter); err != nil {
		return err
	}
	counter.UpdatedAt = time.Now()

	s.mu.Lock()
	s.counters[tenantKey] = counter
	s.mu.Unlock()
	return nil
}

func (s *RateLimitStore) DeleteIdleBefore(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for key, counter := range s.counters {
		if counter.UpdatedAt.Before(before) {
			delete(s.counters, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *RateLimitStore) lockFor(tenantKey string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[tenantKey]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[tenantKey] = lock
	}
	return lock
}
