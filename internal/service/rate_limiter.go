package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
)

const rateLimitWindow = 60 * time.Second

// RateLimiter is a fixed-window message counter per tenant. Serialization per
// tenant is delegated to the store.
type RateLimiter struct {
	store        repository.RateLimitStore
	defaultLimit int
	now          func() time.Time
}

func NewRateLimiter(store repository.RateLimitStore, defaultLimit int) *RateLimiter {
	return &RateLimiter{
		store:        store,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// CheckAndConsume takes one slot from the tenant's window. A non-positive
// limit falls back to the default.
func (l *RateLimiter) CheckAndConsume(ctx context.Context, tenantKey string, limit int) (*domain.RateLimitDecision, error) {
	if limit <= 0 {
		limit = l.defaultLimit
	}

	var decision domain.RateLimitDecision
	err := l.store.WithCounter(ctx, tenantKey, func(counter *domain.RateLimitCounter) error {
		now := l.now()
		counter.Limit = limit

		if counter.WindowResetAt.IsZero() || !now.Before(counter.WindowResetAt) {
			counter.Count = 1
			counter.WindowResetAt = now.Add(rateLimitWindow)
		} else if counter.Count < limit {
			counter.Count++
		} else {
			decision = domain.RateLimitDecision{
				Allowed:    false,
				Limit:      limit,
				Remaining:  0,
				RetryAfter: retryAfterSeconds(counter.WindowResetAt.Sub(now)),
				ResetAt:    counter.WindowResetAt,
			}
			return nil
		}

		decision = domain.RateLimitDecision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - counter.Count,
			ResetAt:   counter.WindowResetAt,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update rate limit counter: %w", err)
	}

	return &decision, nil
}

func retryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
