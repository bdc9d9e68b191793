package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	userstateout "niamverse/internal/modules/userstate/adapter/out"
)

func TestSQLiteKVStoreRoundTripAndReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), ".niamverse", "state.db")

	store, err := userstateout.NewSQLiteKVStore(dbPath)
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "favorites")
	require.NoError(t, err)
	require.False(t, ok, "missing key must report ok=false")

	require.NoError(t, store.Set(ctx, "favorites", "[1,2]"))
	require.NoError(t, store.Set(ctx, "favorites", "[2]"))
	require.NoError(t, store.Set(ctx, "theme", "forest"))
	require.NoError(t, store.Close())

	reopened, err := userstateout.NewSQLiteKVStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, ok, err := reopened.Get(ctx, "favorites")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[2]", value)

	theme, _, err := reopened.Get(ctx, "theme")
	require.NoError(t, err)
	require.Equal(t, "forest", theme)
}

func TestMemoryKVStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := userstateout.NewMemoryKVStore()
	_, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, store.Set(ctx, "theme", "light"))
	value, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "light", value)
}
