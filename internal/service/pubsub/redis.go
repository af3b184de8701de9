package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

const (
	channelPrefix = "message_events:"
)

// RedisPubSub fans message record updates out across API replicas, one
// channel per tenant.
type RedisPubSub struct {
	client       *redis.Client
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

func ChannelName(tenantKey string) string {
	return channelPrefix + tenantKey
}

// Publish publishes a message record to its tenant's channel.
func (ps *RedisPubSub) Publish(ctx context.Context, message *dto.MessageResponse) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message record: %w", err)
	}

	channel := ChannelName(domain.TenantKey(message.CompanyID, message.LocationID))
	if err := ps.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe delivers the tenant's message records to callback until ctx ends.
// A second subscription for the same tenant is a no-op.
func (ps *RedisPubSub) Subscribe(ctx context.Context, tenantKey string, callback func(*dto.MessageResponse)) error {
	channel := ChannelName(tenantKey)

	ps.subscriberMu.Lock()
	if _, exists := ps.subscribers[tenantKey]; exists {
		ps.subscriberMu.Unlock()
		return nil
	}
	sub := ps.client.Subscribe(ctx, channel)
	ps.subscribers[tenantKey] = sub
	ps.subscriberMu.Unlock()

	go func() {
		defer func() {
			ps.logger.Infof("Closing subscription for tenant channel: %s", channel)
			sub.Close()
			ps.subscriberMu.Lock()
			if ps.subscribers[tenantKey] == sub {
				delete(ps.subscribers, tenantKey)
			}
			ps.subscriberMu.Unlock()
		}()

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var message dto.MessageResponse
				if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
					ps.logger.Errorf("Failed to unmarshal message record from channel %s: %v", channel, err)
					continue
				}
				callback(&message)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscribed to tenant channel: %s", channel)
	return nil
}

func (ps *RedisPubSub) Unsubscribe(tenantKey string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if sub, exists := ps.subscribers[tenantKey]; exists {
		sub.Close()
		delete(ps.subscribers, tenantKey)
		ps.logger.Infof("Unsubscribed from tenant channel: %s", ChannelName(tenantKey))
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for tenantKey, sub := range ps.subscribers {
		sub.Close()
		delete(ps.subscribers, tenantKey)
	}
}
