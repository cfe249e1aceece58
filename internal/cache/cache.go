package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"depsiren/internal/model"
)

const DefaultTTL = 6 * time.Hour

const storeFile = "registry_cache.json"

// entry is one persisted record: fetch time (unix seconds) plus the
// normalized metadata snapshot.
type entry struct {
	Timestamp int64          `json:"timestamp"`
	Data      model.Metadata `json:"data"`
}

// Cache is a time-bounded metadata store backed by a single JSON document.
// Reads fail open: a missing or corrupt store behaves like an empty one.
// Writes rewrite the whole document; the mutex serializes the
// reload-upsert-persist cycle within this process. Concurrent writers from
// other processes can lose updates; single-process access is assumed.
type Cache struct {
	path string
	ttl  time.Duration
	mu   sync.Mutex
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{path: filepath.Join(dir, storeFile), ttl: ttl}, nil
}

// Get returns the cached metadata for slug, or false when the entry is
// missing or older than the TTL. Stale entries are not evicted; a later Set
// overwrites them.
func (c *Cache) Get(slug string) (*model.Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.load()[slug]
	if !ok {
		return nil, false
	}
	if time.Since(time.Unix(e.Timestamp, 0)) > c.ttl {
		return nil, false
	}
	md := e.Data
	return &md, true
}

// Set upserts the entry for slug and persists the whole store before
// returning. Last writer wins; there is no merge.
func (c *Cache) Set(slug string, md model.Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	store := c.load()
	store[slug] = entry{Timestamp: time.Now().Unix(), Data: md}

	b, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0644)
}

func (c *Cache) load() map[string]entry {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return map[string]entry{}
	}
	var store map[string]entry
	if err := json.Unmarshal(b, &store); err != nil || store == nil {
		return map[string]entry{}
	}
	return store
}
