package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"formsight/internal/model"

	"github.com/redis/go-redis/v9"
)

// StatsCache holds computed form summaries
type StatsCache interface {
	Get(ctx context.Context, formID string) (*model.Summary, error)
	Set(ctx context.Context, summary *model.Summary) error
	Invalidate(ctx context.Context, formID string) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a redis-backed summary cache
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &statsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *statsCache) key(formID string) string {
	return fmt.Sprintf("form:%s:stats", formID)
}

func (c *statsCache) Get(ctx context.Context, formID string) (*model.Summary, error) {
	data, err := c.client.Get(ctx, c.key(formID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *statsCache) Set(ctx context.Context, summary *model.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(summary.FormID), data, c.ttl).Err()
}

func (c *statsCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
