package rowstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/core/cache"
)

// countingStore counts List calls reaching the backend.
type countingStore struct {
	Store
	lists int
}

func (c *countingStore) List(ctx context.Context, table TableID, opts ListOptions) (*Page, error) {
	c.lists++
	return c.Store.List(ctx, table, opts)
}

func TestCachedStore_ListCachedUntilWrite(t *testing.T) {
	backend := &countingStore{Store: testStore(t)}
	s := NewCachedStore(backend, cache.NewCache(), time.Minute)
	ctx := context.Background()

	_, err := s.Create(ctx, items, Row{"name": "Capacete"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		page, err := s.List(ctx, items, ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Count)
	}
	assert.Equal(t, 1, backend.lists)

	_, err = s.Create(ctx, items, Row{"name": "Luvas"})
	require.NoError(t, err)
	page, err := s.List(ctx, items, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 2, backend.lists)
}

func TestCachedStore_GetInvalidatedByUpdate(t *testing.T) {
	s := NewCachedStore(testStore(t), cache.NewCache(), time.Minute)
	ctx := context.Background()

	created, err := s.Create(ctx, items, Row{"quantity": 1})
	require.NoError(t, err)
	_, err = s.Get(ctx, items, created.ID())
	require.NoError(t, err)

	_, err = s.Update(ctx, items, created.ID(), Row{"quantity": 9})
	require.NoError(t, err)
	got, err := s.Get(ctx, items, created.ID())
	require.NoError(t, err)
	assert.Equal(t, float64(9), got["quantity"])
}
