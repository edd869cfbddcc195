package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"formsight/internal/model"
)

// entry stores the JSON form so the memory caches behave like redis: callers never share values
type entry struct {
	data    []byte
	expires time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memoryStore{ttl: ttl, entries: make(map[string]entry)}
}

func (s *memoryStore) get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && time.Now().After(e.expires) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(e.data, v)
}

// take is get followed by del under one lock
func (s *memoryStore) take(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	if !ok || time.Now().After(e.expires) {
		return false, nil
	}
	return true, json.Unmarshal(e.data, v)
}

func (s *memoryStore) set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[key] = entry{data: data, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) del(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// MemoryStatsCache is the in-process StatsCache used when redis is disabled
type MemoryStatsCache struct{ store *memoryStore }

func NewMemoryStatsCache(ttl time.Duration) *MemoryStatsCache {
	return &MemoryStatsCache{store: newMemoryStore(ttl)}
}

func (c *MemoryStatsCache) Get(ctx context.Context, formID string) (*model.Summary, error) {
	var s model.Summary
	ok, err := c.store.get(formID, &s)
	if !ok || err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *MemoryStatsCache) Set(ctx context.Context, summary *model.Summary) error {
	return c.store.set(summary.FormID, summary)
}

func (c *MemoryStatsCache) Invalidate(ctx context.Context, formID string) error {
	c.store.del(formID)
	return nil
}

// MemoryPresentationCache is the in-process PresentationCache
type MemoryPresentationCache struct{ store *memoryStore }

func NewMemoryPresentationCache(ttl time.Duration) *MemoryPresentationCache {
	return &MemoryPresentationCache{store: newMemoryStore(ttl)}
}

func (c *MemoryPresentationCache) Set(ctx context.Context, p *model.Presentation) error {
	return c.store.set(p.ID, p)
}

func (c *MemoryPresentationCache) Take(ctx context.Context, id string) (*model.Presentation, error) {
	var p model.Presentation
	ok, err := c.store.take(id, &p)
	if !ok || err != nil {
		return nil, err
	}
	return &p, nil
}
