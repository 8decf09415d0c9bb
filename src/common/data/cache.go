package data

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// routeCacheTTL bounds staleness between network reloads.
const routeCacheTTL = 15 * time.Minute

func routeKey(from, to string) string {
	return fmt.Sprintf("route:%s:%s", from, to)
}

// CachedRoute returns the cached response body for a route request, or nil
// on a cache miss. Redis being unavailable degrades to a miss.
func (dc *DataClient) CachedRoute(ctx context.Context, from, to string) []byte {
	val, err := dc.rdb.Get(ctx, routeKey(from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			dc.logger.Warnw("route cache read failed", "error", err)
		}
		return nil
	}
	return val
}

// CacheRoute stores a route response body with a TTL.
func (dc *DataClient) CacheRoute(ctx context.Context, from, to string, body []byte) {
	if err := dc.rdb.Set(ctx, routeKey(from, to), body, routeCacheTTL).Err(); err != nil {
		dc.logger.Warnw("route cache write failed", "error", err)
	}
}

// FlushRouteCache drops all cached route responses, called after a network
// reload so stale paths never outlive the snapshot that produced them.
func (dc *DataClient) FlushRouteCache(ctx context.Context) {
	iter := dc.rdb.Scan(ctx, 0, "route:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := dc.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			dc.logger.Warnw("route cache delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		dc.logger.Warnw("route cache scan failed", "error", err)
	}
}

// BumpNetworkVersion increments the shared network version marker.
func (dc *DataClient) BumpNetworkVersion(ctx context.Context) (int64, error) {
	return dc.rdb.Incr(ctx, "network:version").Result()
}
