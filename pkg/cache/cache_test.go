package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertAndRetrieve(t *testing.T) {
	cache := NewCache(10)

	require.NoError(t, cache.Insert("A", "valueA", 1))

	value, ok := cache.Retrieve("A")
	require.True(t, ok)
	assert.Equal(t, "valueA", value)

	_, ok = cache.Retrieve("B")
	assert.False(t, ok)
}

func TestCache_DuplicateKeyRejected(t *testing.T) {
	cache := NewCache(10)

	require.NoError(t, cache.Insert("A", "valueA", 1))
	assert.Error(t, cache.Insert("A", "valueA", 1))
}

func TestCache_WeightTracking(t *testing.T) {
	cache := NewCache(10)

	require.NoError(t, cache.Insert("A", "valueA", 2))
	require.NoError(t, cache.Insert("B", "valueB", 3))

	assert.Equal(t, 5, cache.GetWeight())
	assert.Equal(t, 10, cache.GetBudget())
}

func TestCache_EvictionStaysWithinBudget(t *testing.T) {
	cache := NewCache(2)

	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 1))
	require.NoError(t, cache.Insert("C", "valueC", 1))

	assert.Equal(t, 2, cache.GetWeight())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCache(2)

	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 1))

	// Touching A makes B the eviction candidate
	_, ok := cache.Retrieve("A")
	require.True(t, ok)

	require.NoError(t, cache.Insert("C", "valueC", 1))

	_, ok = cache.Retrieve("B")
	assert.False(t, ok)

	_, ok = cache.Retrieve("A")
	assert.True(t, ok)
	_, ok = cache.Retrieve("C")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(2)

	require.NoError(t, cache.Insert("A", "valueA", 1))
	cache.Clear()

	_, ok := cache.Retrieve("A")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.GetWeight())
}
