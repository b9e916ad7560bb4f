package location

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/pkg/geo"
)

// CachedService is a read-through Redis cache in front of another Geocoder.
// New locations are geocoded once and remembered; cache failures degrade to
// the inner geocoder rather than the sentinel, so Redis being down only
// costs extra provider calls.
type CachedService struct {
	inner  Geocoder
	client *redis.Client
	ttl    time.Duration
}

// NewCachedService wraps a Geocoder with a Redis cache. Entries expire after
// ttl; a non-positive ttl means they never expire.
func NewCachedService(inner Geocoder, client *redis.Client, ttl time.Duration) *CachedService {
	return &CachedService{inner: inner, client: client, ttl: ttl}
}

// ResolveName returns the cached label for the coordinates if present,
// otherwise resolves through the inner geocoder and caches the result.
// Sentinel labels are not cached, so transient provider failures do not
// stick until the TTL runs out.
func (c *CachedService) ResolveName(ctx context.Context, lat, lon float64) string {
	key := cacheKey(lat, lon)

	name, err := c.client.Get(ctx, key).Result()
	if err == nil && name != "" {
		return name
	}
	if err != nil && err != redis.Nil {
		log.Printf("Geocode cache read for %s failed: %v", key, err)
	}

	name = c.inner.ResolveName(ctx, lat, lon)
	if name == UnknownLocation {
		return name
	}

	if err := c.client.Set(ctx, key, name, c.ttl).Err(); err != nil {
		log.Printf("Geocode cache write for %s failed: %v", key, err)
	}
	return name
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("geocode:%s", geo.Identity(lat, lon))
}
