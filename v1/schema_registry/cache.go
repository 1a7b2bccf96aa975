package schema_registry

import (
	"sync"

	"github.com/hamba/avro/v2"
)

// Cache is an in-memory store for resolved schemas. It maps schema ids to
// parsed definitions and subjects to their latest known id, bounding
// registry round-trips.
//
// Entries are append-only for the lifetime of the process: they are added or
// refreshed on miss, never evicted. Definitions for a given id are immutable
// and identical across writers, so concurrent population of the same key is
// last-writer-wins without harm. The latest id per subject is the only entry
// that can go stale; Invalidate removes it so the next encode re-resolves.
//
// All methods are safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	byID   map[int]avro.Schema
	latest map[string]int
}

// NewCache returns an empty schema cache.
func NewCache() *Cache {
	return &Cache{
		byID:   make(map[int]avro.Schema),
		latest: make(map[string]int),
	}
}

// SchemaByID returns the parsed definition for a schema id, if present.
func (c *Cache) SchemaByID(id int) (avro.Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	schema, ok := c.byID[id]
	return schema, ok
}

// LatestBySubject returns the latest known id and definition for a subject.
// It only reports ok when both the latest id and its definition are cached.
func (c *Cache) LatestBySubject(subject string) (int, avro.Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.latest[subject]
	if !ok {
		return 0, nil, false
	}
	schema, ok := c.byID[id]
	if !ok {
		return 0, nil, false
	}
	return id, schema, true
}

// Put stores the parsed definition for a schema id.
func (c *Cache) Put(id int, schema avro.Schema) {
	c.mu.Lock()
	c.byID[id] = schema
	c.mu.Unlock()
}

// PutLatest records id as the latest known version of a subject.
func (c *Cache) PutLatest(subject string, id int) {
	c.mu.Lock()
	c.latest[subject] = id
	c.mu.Unlock()
}

// Invalidate drops the latest-id entry for a subject, forcing the next
// lookup to consult the registry. Definitions by id stay cached; they are
// immutable and remain valid for decoding older messages.
func (c *Cache) Invalidate(subject string) {
	c.mu.Lock()
	delete(c.latest, subject)
	c.mu.Unlock()
}
