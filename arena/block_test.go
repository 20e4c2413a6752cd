package arena_test

import (
	"testing"

	"github.com/carvelabs/carve"
	"github.com/carvelabs/carve/arena"
	"github.com/stretchr/testify/require"
)

func TestBlockLifecycle(t *testing.T) {
	block := arena.NewBlock(1024)
	require.False(t, block.IsNil())
	require.NotNil(t, block.Head())
	require.Equal(t, 1024, block.Size())

	block.Release()
	require.True(t, block.IsNil())
	require.Nil(t, block.Head())
	require.Equal(t, 0, block.Size())

	// Releasing again is a safe no-op.
	block.Release()
	require.True(t, block.IsNil())
}

func TestBlockInvalidSize(t *testing.T) {
	if carve.DebugMargin > 0 {
		// Non-positive sizes are caller errors and fault immediately.
		require.Panics(t, func() { arena.NewBlock(0) })
		require.Panics(t, func() { arena.NewBlock(-5) })
		return
	}

	block := arena.NewBlock(0)
	require.True(t, block.IsNil())
	require.Equal(t, 0, block.Size())

	block = arena.NewBlock(-5)
	require.True(t, block.IsNil())

	block.Release()
	require.True(t, block.IsNil())
}
