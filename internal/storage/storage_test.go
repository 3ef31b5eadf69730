package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*KVRepo, *AwardRepo) {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVRepo(db), NewAwardRepo(db)
}

func TestKVGetMissing(t *testing.T) {
	kv, _ := openTestDB(t)
	v, ok, err := kv.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKVSetOverwrites(t *testing.T) {
	kv, _ := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "one"))
	require.NoError(t, kv.Set(ctx, "k", "two"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestKVSetManyAndDelete(t *testing.T) {
	kv, _ := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, kv.SetMany(ctx, Entry{Key: "b", Value: "2"}, Entry{Key: "a", Value: "1"}))
	for key, want := range map[string]string{"a": "1", "b": "2"} {
		v, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, want, v)
	}

	require.NoError(t, kv.Delete(ctx, "a"))
	_, ok, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "twice.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestAwardLogRecent(t *testing.T) {
	_, awards := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := awards.Insert(ctx, "quest", "1", 20, 5, base)
	require.NoError(t, err)
	_, err = awards.Insert(ctx, "quiz", "", 40, 5, base.Add(time.Hour))
	require.NoError(t, err)

	got, err := awards.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "quiz", got[0].Source)
	assert.Equal(t, 20, got[1].XP)

	n, err := awards.CountSince(ctx, "quest", base)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, awards.Clear(ctx))
	got, err = awards.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
