package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

// RunPoolStoreContract verifies that a PoolStore implementation adheres to
// the interface contract.
func RunPoolStoreContract(t *testing.T, store PoolStore) {
	ctx := context.Background()
	id := "contract-test-pool-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		p := pool.New()
		require.NoError(t, pool.Add(p, "lowlevel.energy", domain.Real(0.25)))
		require.NoError(t, pool.Add(p, "lowlevel.mfcc", []domain.Real{1, 2, 3}))
		require.NoError(t, pool.Set(p, "metadata.version", "2.1"))

		err := store.Save(ctx, id, p)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, p.DescriptorNames(), loaded.DescriptorNames())

		energy, err := pool.Value[[]domain.Real](loaded, "lowlevel.energy")
		require.NoError(t, err)
		assert.Equal(t, []domain.Real{0.25}, energy)

		version, err := pool.Value[string](loaded, "metadata.version")
		require.NoError(t, err)
		assert.Equal(t, "2.1", version)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ErrPoolNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, pool.New()))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrPoolNotFound, "Load after Delete should return ErrPoolNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, pool.New())
		_ = store.Save(ctx, id2, pool.New())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
