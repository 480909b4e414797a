package badger

import (
	"context"
	"testing"

	"github.com/poiesic/scholarly/core"
	"github.com/poiesic/scholarly/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore(t *testing.T) {
	store, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("load before any save", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save and load round-trip", func(t *testing.T) {
		snapshot := &core.Snapshot{
			Papers: []core.Paper{
				{
					Id:        0,
					Title:     "BERT",
					Author:    "Jacob Devlin",
					CoAuthors: []string{"Ming-Wei Chang"},
					Keywords:  []string{"nlp"},
					Year:      2019,
					Doi:       core.DoiNotAvailable,
				},
			},
			Vectors: [][]float32{{0.25, -0.75}},
		}
		require.NoError(t, store.Save(ctx, snapshot))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, snapshot, got)
	})

	t.Run("save fully rewrites", func(t *testing.T) {
		replacement := &core.Snapshot{
			Papers: []core.Paper{
				{Id: 0, Title: "A", Author: "X", CoAuthors: []string{"Y"}, Keywords: []string{"k"}, Doi: core.DoiNotAvailable},
				{Id: 1, Title: "B", Author: "X", CoAuthors: []string{"Z"}, Keywords: []string{"k"}, Doi: core.DoiNotAvailable},
			},
			Vectors: [][]float32{{1, 0}, {0, 1}},
		}
		require.NoError(t, store.Save(ctx, replacement))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got.Papers, 2)
		assert.Equal(t, replacement, got)
	})
}

func TestSnapshotStoreClosed(t *testing.T) {
	store, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ctx := context.Background()
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Save(ctx, &core.Snapshot{}), storage.ErrStorageClosed)
}
