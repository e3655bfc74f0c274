// Package cache stores short-lived string values such as assistant replies.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is satisfied by Memory and Redis. A miss is (_, false, nil).
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, val string) error
}

type Memory struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	m          map[string]entry
}

type entry struct {
	val string
	exp time.Time
}

func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}

	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		m:          make(map[string]entry),
	}
}

func (c *Memory) Get(_ context.Context, key string) (string, bool, error) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return "", false, nil
	}

	return e.val, true, nil
}

func (c *Memory) Set(_ context.Context, key, val string) error {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.m[key]; !exists && len(c.m) >= c.maxEntries {
		c.evictLocked(now)
	}

	c.m[key] = entry{val: val, exp: now.Add(c.ttl)}
	return nil
}

// evictLocked drops expired entries, or the one closest to expiry if none have expired.
func (c *Memory) evictLocked(now time.Time) {
	oldestKey := ""
	var oldestExp time.Time

	for k, e := range c.m {
		if now.After(e.exp) {
			delete(c.m, k)
			continue
		}
		if oldestKey == "" || e.exp.Before(oldestExp) {
			oldestKey = k
			oldestExp = e.exp
		}
	}

	if len(c.m) >= c.maxEntries && oldestKey != "" {
		delete(c.m, oldestKey)
	}
}

func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
