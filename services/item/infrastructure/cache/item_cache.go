package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	rediscache "github.com/ghuser/boundedstr/pkg/cache"
	"github.com/ghuser/boundedstr/services/item/domain/models"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// errMiss is returned by Get for absent keys. HGETALL answers an empty map
// rather than redis.Nil, so the miss is reported explicitly.
var errMiss = redis.Nil

// ItemCache is a read-through cache of items stored as Redis hashes.
// Keys are scoped by orgID: "item:{orgID}:{itemID}".
//
// Names read back from Redis are length-checked again; an entry whose name or
// owner falls outside its range is reported as an error, never returned.
type ItemCache struct {
	client *rediscache.RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *rediscache.RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by org + item ID.
// Returns an error satisfying rediscache.IsMiss when the key does not exist.
func (c *ItemCache) Get(ctx context.Context, orgID, itemID uuid.UUID) (*models.Item, error) {
	vals, err := c.client.Client().HGetAll(ctx, key(orgID, itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return itemFromHash(vals)
}

// Set writes item as a Redis hash and refreshes its TTL in one pipeline.
func (c *ItemCache) Set(ctx context.Context, item *models.Item) error {
	k := key(item.OrgID, item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, k, itemToHash(item)...)
	pipe.Expire(ctx, k, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, orgID, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, key(orgID, itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func key(orgID, itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", itemCacheKeyPrefix, orgID, itemID)
}

func itemToHash(item *models.Item) []any {
	return []any{
		"id", item.ID.String(),
		"org_id", item.OrgID.String(),
		"name", item.Name.String(),
		"owner_name", item.Owner.String(),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func itemFromHash(vals map[string]string) (*models.Item, error) {
	if len(vals) == 0 {
		return nil, errMiss
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	orgID, err := uuid.Parse(vals["org_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse org_id: %w", err)
	}
	name, err := models.NewItemName(vals["name"])
	if err != nil {
		return nil, fmt.Errorf("cache parse name: %w", err)
	}
	owner, err := models.NewOwnerName(vals["owner_name"])
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_name: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &models.Item{
		ID:        id,
		OrgID:     orgID,
		Name:      name,
		Owner:     owner,
		CreatedAt: createdAt,
	}, nil
}
