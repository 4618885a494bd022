package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shopify-tag-bot/internal/domain/entity"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, "Shirt", "sale;new"))
	require.NoError(t, store.Upsert(ctx, "Hat", "winter"))

	mappings, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 2)

	// product_type bo'yicha tartiblangan
	assert.Equal(t, "Hat", mappings[0].ProductType)
	assert.Equal(t, "Shirt", mappings[1].ProductType)
}

func TestUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, "Shirt", "old"))
	require.NoError(t, store.Upsert(ctx, "Shirt", "sale;new"))

	mappings, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "sale;new", mappings[0].Tags)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, "Shirt", "sale"))

	removed, err := store.Remove(ctx, "Shirt")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "Shirt")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLoadMappings(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, "Shirt", "sale; new ;winter"))

	mappings, err := store.LoadMappings(ctx)
	require.NoError(t, err)

	// Teglar trim qilingan holda qaytadi
	assert.Equal(t, map[string][]string{
		"Shirt": {"sale", "new", "winter"},
	}, mappings)
}

func TestBulkImport(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, "Shirt", "old"))

	count, err := store.BulkImport(ctx, []entity.MappingRow{
		{ProductType: "Shirt", Tags: "sale;new"},
		{ProductType: "Hat", Tags: "winter"},
		{ProductType: "", Tags: "x"},
		{ProductType: "Shoes", Tags: "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	mappings, err := store.LoadMappings(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, []string{"sale", "new"}, mappings["Shirt"])
}

func TestRunHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := entity.SyncReport{
		RunID:      "run-1",
		Mode:       "auto",
		Scanned:    10,
		Matched:    3,
		Updated:    2,
		Failed:     1,
		StartedAt:  time.Now().Add(-time.Hour).UTC(),
		FinishedAt: time.Now().Add(-time.Hour).UTC(),
	}
	second := entity.SyncReport{
		RunID:      "run-2",
		Mode:       "interactive",
		Scanned:    5,
		Matched:    1,
		Updated:    1,
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}

	require.NoError(t, store.LogRun(ctx, first))
	require.NoError(t, store.LogRun(ctx, second))

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Eng yangisi birinchi
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)
	assert.Equal(t, 2, runs[1].Updated)

	// Limit ishlaydi
	runs, err = store.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].RunID)
}
