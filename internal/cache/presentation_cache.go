package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"formsight/internal/model"

	"github.com/redis/go-redis/v9"
)

// PresentationCache keeps issued renderings until the respondent submits or the ttl runs out.
// Take reads and removes a rendering in one step, so only one submission can claim it.
type PresentationCache interface {
	Set(ctx context.Context, p *model.Presentation) error
	Take(ctx context.Context, id string) (*model.Presentation, error)
}

type presentationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPresentationCache creates a redis-backed presentation store
func NewPresentationCache(client *redis.Client, ttl time.Duration) PresentationCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &presentationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *presentationCache) key(id string) string {
	return fmt.Sprintf("presentation:%s", id)
}

func (c *presentationCache) Set(ctx context.Context, p *model.Presentation) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(p.ID), data, c.ttl).Err()
}

func (c *presentationCache) Take(ctx context.Context, id string) (*model.Presentation, error) {
	data, err := c.client.GetDel(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p model.Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
