package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stocktrail/stocktrail/internal/domain"
)

// ListingTTL is the fixed expiration for cached inventory listings. The key
// format and TTL are a persisted-state contract shared with cache inspection
// tooling; do not change them.
const ListingTTL = 60 * time.Second

// ListingCache is a read-through cache for per-project inventory listings.
// It is populated lazily on read misses and only ever deleted by mutations.
type ListingCache struct {
	rdb *redis.Client
}

func NewListingCache(rdb *redis.Client) *ListingCache {
	return &ListingCache{rdb: rdb}
}

// ListingKey returns the cache key for a project's inventory listing.
func ListingKey(projectID uuid.UUID) string {
	return "inventory:" + projectID.String()
}

// Get returns the cached listing for a project. The second return value is
// false on a cache miss; a miss is not an error.
func (c *ListingCache) Get(ctx context.Context, projectID uuid.UUID) ([]*domain.InventoryItem, bool, error) {
	raw, err := c.rdb.Get(ctx, ListingKey(projectID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis.ListingCache.Get: %w", err)
	}

	var items []*domain.InventoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("redis.ListingCache.Get: unmarshal: %w", err)
	}

	return items, true, nil
}

// Put stores the listing with the fixed expiration.
func (c *ListingCache) Put(ctx context.Context, projectID uuid.UUID, items []*domain.InventoryItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("redis.ListingCache.Put: marshal: %w", err)
	}

	if err := c.rdb.Set(ctx, ListingKey(projectID), raw, ListingTTL).Err(); err != nil {
		return fmt.Errorf("redis.ListingCache.Put: %w", err)
	}

	return nil
}

// Invalidate deletes the listing unconditionally. Deleting an absent key is
// not an error.
func (c *ListingCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if err := c.rdb.Del(ctx, ListingKey(projectID)).Err(); err != nil {
		return fmt.Errorf("redis.ListingCache.Invalidate: %w", err)
	}

	return nil
}
