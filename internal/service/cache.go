package service

import (
	"sync"
	"time"
)

// resultCache cache em memória de resultados do dashboard com expiração
// por entrada. Entradas expiradas são purgadas a cada acesso.
type resultCache struct {
	mu    sync.Mutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	result    *DashboardResult
	expiresAt time.Time
}

func newResultCache() *resultCache {
	return &resultCache{
		items: make(map[string]cacheEntry),
	}
}

func (c *resultCache) get(key string) (*DashboardResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpiredLocked(time.Now())

	v, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return v.result, true
}

func (c *resultCache) put(key string, result *DashboardResult, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpiredLocked(time.Now())
	c.items[key] = cacheEntry{result: result, expiresAt: time.Now().Add(ttl)}
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheEntry)
}

func (c *resultCache) purgeExpiredLocked(now time.Time) {
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
}
