package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFile(t.TempDir())
	assert.NoError(t, err)

	sqliteStore, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)

	return map[string]Store{
		"memory": NewMemory(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "budgetbook/entries")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, store.Put(ctx, "budgetbook/entries", []byte(`[]`)))
			got, err := store.Get(ctx, "budgetbook/entries")
			assert.NoError(t, err)
			assert.Equal(t, []byte(`[]`), got)

			// overwrite replaces the previous blob
			assert.NoError(t, store.Put(ctx, "budgetbook/entries", []byte(`[{"id":"x"}]`)))
			got, err = store.Get(ctx, "budgetbook/entries")
			assert.NoError(t, err)
			assert.Equal(t, []byte(`[{"id":"x"}]`), got)

			assert.NoError(t, store.Close())
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFile(dir)
	assert.NoError(t, err)
	assert.NoError(t, first.Put(ctx, "budgetbook/entries", []byte(`[1,2,3]`)))
	assert.NoError(t, first.Close())

	second, err := NewFile(dir)
	assert.NoError(t, err)
	got, err := second.Get(ctx, "budgetbook/entries")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), got)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := NewSQLite(path)
	assert.NoError(t, err)
	assert.NoError(t, first.Put(ctx, "k", []byte("v")))
	assert.NoError(t, first.Close())

	second, err := NewSQLite(path)
	assert.NoError(t, err)
	got, err := second.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.NoError(t, second.Close())
}

func TestFileStoreFlattensKeySeparators(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFile(dir)
	assert.NoError(t, err)

	assert.NoError(t, store.Put(ctx, "../escape/attempt", []byte("x")))
	got, err := store.Get(ctx, "../escape/attempt")
	assert.NoError(t, err)
	assert.Equal(t, []byte("x"), got)

	// nothing may be written outside the data directory
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestOpenSelectsBackend(t *testing.T) {
	store, err := Open(Options{Backend: "memory"})
	assert.NoError(t, err)
	assert.IsType(t, &Memory{}, store)

	store, err = Open(Options{Backend: "file", DataDir: t.TempDir()})
	assert.NoError(t, err)
	assert.IsType(t, &File{}, store)

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)
}
