package schema_registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) avro.Schema {
	t.Helper()
	schema, err := avro.Parse(raw)
	require.NoError(t, err)
	return schema
}

// TestCacheMiss verifies that lookups on an empty cache report a miss.
func TestCacheMiss(t *testing.T) {
	cache := NewCache()

	_, ok := cache.SchemaByID(1)
	assert.False(t, ok)

	_, _, ok = cache.LatestBySubject("UserRegistration-value")
	assert.False(t, ok)
}

// TestCachePutAndGet verifies that stored definitions are returned by id.
func TestCachePutAndGet(t *testing.T) {
	cache := NewCache()
	schema := mustParse(t, UserRegistrationSchema)

	cache.Put(1, schema)

	got, ok := cache.SchemaByID(1)
	require.True(t, ok)
	assert.Equal(t, schema, got)
}

// TestCacheLatestRequiresDefinition verifies that LatestBySubject only
// reports a hit when the latest id and its definition are both cached.
func TestCacheLatestRequiresDefinition(t *testing.T) {
	cache := NewCache()
	subject := Subject("UserRegistration")

	// Latest id without a definition is not a usable hit.
	cache.PutLatest(subject, 3)
	_, _, ok := cache.LatestBySubject(subject)
	assert.False(t, ok)

	cache.Put(3, mustParse(t, UserRegistrationSchema))

	id, schema, ok := cache.LatestBySubject(subject)
	require.True(t, ok)
	assert.Equal(t, 3, id)
	assert.NotNil(t, schema)
}

// TestCacheInvalidate verifies that invalidating a subject drops only the
// latest-id entry; definitions by id remain for decoding older messages.
func TestCacheInvalidate(t *testing.T) {
	cache := NewCache()
	subject := Subject("Order")
	cache.Put(5, mustParse(t, OrderSchema))
	cache.PutLatest(subject, 5)

	cache.Invalidate(subject)

	_, _, ok := cache.LatestBySubject(subject)
	assert.False(t, ok)

	_, ok = cache.SchemaByID(5)
	assert.True(t, ok, "definitions by id should survive invalidation")
}

// TestCacheConcurrentAccess exercises the cache from many goroutines to keep
// the race detector honest.
func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache()
	schema := mustParse(t, SensorDataSchema)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			subject := fmt.Sprintf("subject-%d", i%4)
			cache.Put(i, schema)
			cache.PutLatest(subject, i)
			cache.SchemaByID(i)
			cache.LatestBySubject(subject)
			cache.Invalidate(subject)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 32; i++ {
		_, ok := cache.SchemaByID(i)
		assert.True(t, ok)
	}
}
