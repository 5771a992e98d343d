package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, "k", "v"))
	v, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Delete(ctx, "k"))
	_, ok, _ = r.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryRepository_InTx(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "a", "old"))

	err := r.InTx(ctx, func(ctx context.Context, tx Repository) error {
		_ = tx.Set(ctx, "a", "new")
		_ = tx.Set(ctx, "b", "x")
		return errors.New("abort")
	})
	require.Error(t, err)

	v, _, _ := r.Get(ctx, "a")
	assert.Equal(t, "old", v)
	_, ok, _ := r.Get(ctx, "b")
	assert.False(t, ok)

	require.NoError(t, r.InTx(ctx, func(ctx context.Context, tx Repository) error {
		return tx.Delete(ctx, "a")
	}))
	_, ok, _ = r.Get(ctx, "a")
	assert.False(t, ok)
}

func TestRepositories_ImplementTransactional(t *testing.T) {
	var _ Transactional = (*SQLiteRepository)(nil)
	var _ Transactional = (*MemoryRepository)(nil)
}
