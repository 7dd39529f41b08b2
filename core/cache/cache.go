package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store is the cache contract shared by the in-memory and Redis backends.
// Values are opaque bytes; GetJSON/SetJSON handle encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string)
	Delete(ctx context.Context, keys ...string)
	DeleteByTag(ctx context.Context, tag string)
}

// Cache is a thread-safe in-memory Store with TTLs and tag invalidation.
type Cache struct {
	m sync.Map
	// tagIndex maps tag -> *sync.Map of keys
	tagIndex sync.Map
	now      func() time.Time
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide in-memory cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

type cacheItem struct {
	Value     []byte
	ExpiresAt int64 // unix nanos; 0 means no expiration
}

// Set stores value under key. A zero ttl never expires.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && c.now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Delete removes keys from the cache.
func (c *Cache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.m.Delete(key)
	}
}

// Sweep drops expired entries and tag references to keys that are gone.
// It returns the number of entries removed.
func (c *Cache) Sweep() int {
	now := c.now().UnixNano()
	removed := 0
	c.m.Range(func(key, v interface{}) bool {
		if item := v.(cacheItem); item.ExpiresAt > 0 && now > item.ExpiresAt {
			c.m.Delete(key)
			removed++
		}
		return true
	})
	c.tagIndex.Range(func(tag, keys interface{}) bool {
		empty := true
		keys.(*sync.Map).Range(func(key, _ interface{}) bool {
			if _, ok := c.m.Load(key); !ok {
				keys.(*sync.Map).Delete(key)
			} else {
				empty = false
			}
			return true
		})
		if empty {
			c.tagIndex.Delete(tag)
		}
		return true
	})
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (c *Cache) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Sweep()
		}
	}
}

// Len counts stored entries, expired ones included until swept or read.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// TagKey assigns tags to key.
func (c *Cache) TagKey(key string, tags []string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

// GetKeysByTag returns all keys assigned to tag.
func (c *Cache) GetKeysByTag(tag string) []string {
	var keys []string
	if val, ok := c.tagIndex.Load(tag); ok {
		val.(*sync.Map).Range(func(key, _ interface{}) bool {
			keys = append(keys, key.(string))
			return true
		})
	}
	return keys
}

// DeleteByTag deletes all entries assigned to tag.
func (c *Cache) DeleteByTag(_ context.Context, tag string) {
	val, ok := c.tagIndex.LoadAndDelete(tag)
	if !ok {
		return
	}
	val.(*sync.Map).Range(func(key, _ interface{}) bool {
		c.m.Delete(key)
		return true
	})
}

// Key joins parts into a composite cache key.
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(s, "|")
}

// GetJSON decodes the cached value for key into out.
func GetJSON(ctx context.Context, s Store, key string, out interface{}) bool {
	b, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration, tags ...string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Set(ctx, key, b, ttl, tags)
	return nil
}
