package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamingtechpro/storefront-backend/pkg/config"
)

func setupGormStore(t *testing.T) *Gorm {
	t.Helper()

	cfg := config.DBConfig{SQLitePath: "file::memory:?cache=shared"}
	store, err := NewGorm(context.Background(), cfg, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestGormRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupGormStore(t)

	_, err := store.Get(ctx, CartKey())
	assert.True(t, IsNotFound(err))

	require.NoError(t, store.Set(ctx, CartKey(), `{"version":1,"lines":[]}`))

	value, err := store.Get(ctx, CartKey())
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"lines":[]}`, value)

	// Upsert replaces the existing row.
	require.NoError(t, store.Set(ctx, CartKey(), `{"version":1}`))
	value, err = store.Get(ctx, CartKey())
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, value)

	require.NoError(t, store.Remove(ctx, CartKey()))
	_, err = store.Get(ctx, CartKey())
	assert.True(t, IsNotFound(err))
}

func TestGormRemoveMissingKey(t *testing.T) {
	store := setupGormStore(t)
	assert.NoError(t, store.Remove(context.Background(), "gt:absent"))
}

func TestGormPing(t *testing.T) {
	store := setupGormStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
