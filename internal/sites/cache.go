package sites

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	siteKeyPrefix = "site:slug:" // Cached payload per published slug: site:slug:{slug}
	siteTTL       = 5 * time.Minute
)

// Cache keeps rendered site payloads in Redis. Publish and unpublish drop the
// affected keys so a state change is visible immediately rather than after
// the TTL.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, slug string) (*Site, error) {
	data, err := c.client.Get(ctx, siteKeyPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Site
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Cache) Set(ctx context.Context, s *Site) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, siteKeyPrefix+s.Slug, data, siteTTL).Err()
}

// Invalidate drops the cached payloads for the given slugs. Implements the
// publish manager's Invalidator.
func (c *Cache) Invalidate(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		keys = append(keys, siteKeyPrefix+s)
	}
	return c.client.Del(ctx, keys...).Err()
}
