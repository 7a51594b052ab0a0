package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*ContactStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "phonebook.db")
	store, err := OpenContactStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

func TestContactStore(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	t.Run("insert and load in insertion order", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, &core.Contact{Name: "Zoe", Phone: "3", Category: core.CategoryFriends}))
		require.NoError(t, store.Insert(ctx, &core.Contact{Name: "Amy", Phone: "1", Email: "amy@x.com", Category: core.CategoryFamily}))

		loaded, err := store.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "Zoe", loaded[0].Name)
		assert.Equal(t, "", loaded[0].Email)
		assert.Equal(t, core.Contact{Name: "Amy", Phone: "1", Email: "amy@x.com", Category: core.CategoryFamily}, *loaded[1])
	})

	t.Run("duplicate phone is rejected", func(t *testing.T) {
		err := store.Insert(ctx, &core.Contact{Name: "Other", Phone: "3", Category: core.CategoryWork})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("update by old phone", func(t *testing.T) {
		err := store.Update(ctx, "3", &core.Contact{Name: "Zoe", Phone: "33", Email: "z@x.com", Category: core.CategoryFriends})
		require.NoError(t, err)

		loaded, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "33", loaded[0].Phone)
		assert.Equal(t, "z@x.com", loaded[0].Email)
	})

	t.Run("update missing row", func(t *testing.T) {
		err := store.Update(ctx, "3", &core.Contact{Name: "Zoe", Phone: "3", Category: core.CategoryFriends})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update onto taken phone", func(t *testing.T) {
		err := store.Update(ctx, "33", &core.Contact{Name: "Zoe", Phone: "1", Category: core.CategoryFriends})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "33"))
		assert.ErrorIs(t, store.Delete(ctx, "33"), storage.ErrNotFound)

		loaded, err := store.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Amy", loaded[0].Name)
	})

	t.Run("clear all", func(t *testing.T) {
		require.NoError(t, store.ClearAll(ctx))

		loaded, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
		assert.NotNil(t, loaded)
	})
}

func TestContactStore_Reopen(t *testing.T) {
	store, dbPath := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &core.Contact{Name: "Alice", Phone: "111", Category: core.CategoryFamily}))
	require.NoError(t, store.Close())

	reopened, err := OpenContactStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Alice", loaded[0].Name)
}

func TestContactStore_Closed(t *testing.T) {
	store, _ := setupTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.LoadAll(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.NoError(t, store.Close())
}
