package notiondb

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"

	"github.com/fleetsync/fleetsync/pkg/redis_client"
)

// PageCache remembers which Notion page belongs to which vehicle so a
// pass does not have to query the dispatcher database for every device.
// Backed by Redis when one is connected, otherwise lookups go straight
// to Notion
type PageCache struct {
	cache *cache.Cache[string]
}

const pageCacheExpiration = 12 * time.Hour

func NewPageCache() *PageCache {
	if redis_client.Client == nil {
		return nil
	}

	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(pageCacheExpiration))

	return &PageCache{
		cache: cache.New[string](redisStore),
	}
}

func pageCacheKey(vehicleName string) string {
	return fmt.Sprintf("fleetsync/dispatcher-page/%s", vehicleName)
}

func (p *PageCache) Get(ctx context.Context, vehicleName string) (string, bool) {
	if p == nil {
		return "", false
	}

	pageID, err := p.cache.Get(ctx, pageCacheKey(vehicleName))
	if err != nil || pageID == "" {
		return "", false
	}

	return pageID, true
}

func (p *PageCache) Set(ctx context.Context, vehicleName string, pageID string) {
	if p == nil {
		return
	}

	// Cache failures are invisible - the next lookup just hits Notion
	p.cache.Set(ctx, pageCacheKey(vehicleName), pageID)
}
