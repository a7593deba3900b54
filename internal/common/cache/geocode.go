// internal/common/cache/geocode.go
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"compliance-engine/internal/models"

	"github.com/redis/go-redis/v9"
)

// GeocodeCache stores resolved identifier bundles keyed by normalized input
// address. Cache failures are treated as misses and never fail a request.
type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGeocodeCache(client *redis.Client, ttl time.Duration) *GeocodeCache {
	return &GeocodeCache{client: client, ttl: ttl}
}

// Key builds the cache key for one jurisdiction/address pair.
func Key(jurisdiction, address string) string {
	normalized := strings.Join(strings.Fields(strings.ToUpper(address)), " ")
	return "geocode:" + jurisdiction + ":" + normalized
}

// Lookup returns the cached bundle for the address, or nil on a miss.
func (c *GeocodeCache) Lookup(ctx context.Context, jurisdiction, address string) *models.IdentifierBundle {
	if c == nil || c.client == nil {
		return nil
	}
	val, err := c.client.Get(ctx, Key(jurisdiction, address)).Result()
	if err != nil {
		return nil
	}
	var bundle models.IdentifierBundle
	if err := json.Unmarshal([]byte(val), &bundle); err != nil {
		return nil
	}
	return &bundle
}

// Store caches the bundle for the configured TTL. Errors are discarded.
func (c *GeocodeCache) Store(ctx context.Context, jurisdiction, address string, bundle models.IdentifierBundle) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(bundle)
	if err != nil {
		return
	}
	c.client.Set(ctx, Key(jurisdiction, address), data, c.ttl)
}
