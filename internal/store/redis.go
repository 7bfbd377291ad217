package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"simtrack-svr/internal/pipeline"
)

// Cache keeps the latest event per SIM in redis so the dashboard can show
// the current position without a full history query.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(addr string, db int, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func latestKey(simID string) string {
	return "latest:" + simID
}

func (c *Cache) SetLatest(ctx context.Context, ev pipeline.TrackingEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, latestKey(ev.SimID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", latestKey(ev.SimID), err)
	}
	return nil
}

// Latest returns the cached newest event for the SIM. The second return is
// false on a cache miss.
func (c *Cache) Latest(ctx context.Context, simID string) (pipeline.TrackingEvent, bool, error) {
	val, err := c.rdb.Get(ctx, latestKey(simID)).Result()
	if err == redis.Nil {
		return pipeline.TrackingEvent{}, false, nil
	}
	if err != nil {
		return pipeline.TrackingEvent{}, false, fmt.Errorf("redis GET %s: %w", latestKey(simID), err)
	}
	var ev pipeline.TrackingEvent
	if err := json.Unmarshal([]byte(val), &ev); err != nil {
		// Treat a corrupt entry as a miss; it will be overwritten on
		// the next ingest.
		return pipeline.TrackingEvent{}, false, nil
	}
	return ev, true, nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
