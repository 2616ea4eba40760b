package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/b2xautomacao/catalogo-sub004/pkg/redis"
)

// SettingsCache is a Redis read-through cache for pricing settings
// snapshots. Quotes hit the settings on every request, so reads go through
// here before the database.
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsCache wraps a Redis client with the configured snapshot TTL.
func NewSettingsCache(client *redis.Client, ttl time.Duration) (*SettingsCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	return &SettingsCache{client: client, ttl: ttl}, nil
}

// Get returns the cached snapshot for a store. The second return reports
// whether the key was present.
func (c *SettingsCache) Get(ctx context.Context, storeID uuid.UUID) (*PricingSettingsDTO, bool, error) {
	raw, err := c.client.Get(ctx, c.client.PricingSettingsKey(storeID.String()))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get settings snapshot: %w", err)
	}

	var dto PricingSettingsDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		// A corrupt snapshot behaves like a miss so the DB copy wins.
		return nil, false, nil
	}
	return &dto, true, nil
}

// Set stores the settings snapshot under the store's key.
func (c *SettingsCache) Set(ctx context.Context, dto *PricingSettingsDTO) error {
	if dto == nil {
		return fmt.Errorf("settings snapshot required")
	}
	payload, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("marshal settings snapshot: %w", err)
	}
	return c.client.Set(ctx, c.client.PricingSettingsKey(dto.StoreID.String()), payload, c.ttl)
}

// Invalidate drops the snapshot so the next read refreshes from the DB.
func (c *SettingsCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	return c.client.Del(ctx, c.client.PricingSettingsKey(storeID.String()))
}
