package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), DefaultDBFile))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFindMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Find(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSaveAndFindRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pr := entity.NewProcessingRecord(7, 3)
	pr.MarkCompleted()
	require.NoError(t, store.Save(ctx, pr))

	got, err := store.Find(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.RecordStatusCompleted, got.Status)
	assert.True(t, got.Done())
}

func TestSaveUpsertsFailures(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pr := entity.NewProcessingRecord(9, 2)
	pr.MarkFailed("yt-dlp download: network")
	require.NoError(t, store.Save(ctx, pr))

	got, err := store.Find(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Attempts)
	assert.False(t, got.Done())

	got.MarkFailed("yt-dlp download: network again")
	require.NoError(t, store.Save(ctx, got))

	got, err = store.Find(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	assert.True(t, got.Done())
	assert.True(t, got.Exhausted())
}
