package contacts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pid-digital/leads-backend/pkg/db/models"
	"github.com/pid-digital/leads-backend/pkg/logger"
	"github.com/pid-digital/leads-backend/pkg/redis"
)

const listingTTL = 60 * time.Second

// RedisListingCache stores the serialized full listing in redis so repeat
// console loads skip the backend. Submissions and deletions drop the key.
type RedisListingCache struct {
	client *redis.Client
	logg   *logger.Logger
	key    string
}

// NewRedisListingCache builds the cache over an established redis client.
func NewRedisListingCache(client *redis.Client, logg *logger.Logger) *RedisListingCache {
	return &RedisListingCache{
		client: client,
		logg:   logg,
		key:    client.CacheKey("contacts", "listing"),
	}
}

func (c *RedisListingCache) Get(ctx context.Context) ([]models.Contact, bool) {
	raw, err := c.client.Get(ctx, c.key)
	if err != nil {
		if err != redis.ErrCacheMiss && c.logg != nil {
			c.logg.Warn(ctx, "listing cache read failed: "+err.Error())
		}
		return nil, false
	}
	var rows []models.Contact
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *RedisListingCache) Set(ctx context.Context, contacts []models.Contact) {
	raw, err := json.Marshal(contacts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key, string(raw), listingTTL); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "listing cache write failed: "+err.Error())
	}
}

func (c *RedisListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "listing cache invalidation failed: "+err.Error())
	}
}
