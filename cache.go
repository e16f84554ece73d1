package csvtab

import (
	"path/filepath"
	"sync"
)

// Cache maps resolved absolute paths to already-constructed tables, so
// repeated requests for one path share one in-memory instance instead of
// re-reading the file. Entries live for the cache's lifetime: nothing is
// evicted and an on-disk change never invalidates a cached table. The
// mutex preserves the at-most-one-instance-per-path guarantee under
// concurrent lookups.
type Cache struct {
	mu     sync.Mutex
	tables map[string]*Table
}

// NewCache returns an empty instance cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[string]*Table)}
}

// Get returns the cached table for path, constructing it with opts on the
// first request. Later calls for the same resolved path return the same
// instance and ignore opts entirely. The key is always normalized to an
// absolute path, so with [WithoutPathResolution] different spellings of
// one file still share one instance.
func (c *Cache) Get(path string, opts ...Option) (*Table, error) {
	t, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	key := t.path
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.tables[key]; ok {
		return cached, nil
	}
	c.tables[key] = t
	return t, nil
}

var defaultCache = NewCache()

// GetInstance returns the process-wide cached table for path. It is
// [Cache.Get] on a package-level cache, kept for global convenience;
// prefer passing an explicit [Cache] where wiring allows.
func GetInstance(path string, opts ...Option) (*Table, error) {
	return defaultCache.Get(path, opts...)
}
