package arena_test

import (
	"testing"
	"unsafe"

	"github.com/carvelabs/carve"
	"github.com/carvelabs/carve/arena"
	"github.com/stretchr/testify/require"
)

func TestTakeSliceRoundsCursorNotSlice(t *testing.T) {
	pool := arena.NewPool(256)
	defer pool.Destroy()

	s := pool.TakeSlice(10)
	require.False(t, s.IsNil())
	// The slice is exactly the requested size...
	require.Equal(t, 10, s.Size())
	// ...but the cursor advanced by the 8-byte-rounded amount, plus the
	// guard margin when one is configured.
	require.Equal(t, 16+carve.DebugMargin, pool.BytesUsed())
}

func TestTakeSliceExhaustion(t *testing.T) {
	// Scenario: 256-byte pool, TakeSlice(10) then TakeSlice(250).
	pool := arena.NewPool(256)
	defer pool.Destroy()

	first := pool.TakeSlice(10)
	require.False(t, first.IsNil())
	require.Equal(t, 16+carve.DebugMargin, pool.BytesUsed())

	// 250 rounds to 256, which cannot fit behind the first take, so the
	// request fails gracefully and consumes nothing.
	second := pool.TakeSlice(250)
	require.True(t, second.IsNil())
	require.Equal(t, 16+carve.DebugMargin, pool.BytesUsed())

	if carve.DebugMargin == 0 {
		// An exactly-fitting request still succeeds.
		third := pool.TakeSlice(240)
		require.False(t, third.IsNil())
		require.Equal(t, 256, pool.BytesUsed())
		require.Equal(t, 0, pool.RemainingBytes())
	} else {
		// Guard margins shrink the usable capacity, so the same request
		// fails gracefully instead.
		third := pool.TakeSlice(240)
		require.True(t, third.IsNil())
		require.Equal(t, 16+carve.DebugMargin, pool.BytesUsed())
	}
}

func TestTakeSliceNeverOverlaps(t *testing.T) {
	pool := arena.NewPool(1024)
	defer pool.Destroy()

	sizes := []int{1, 7, 8, 9, 24, 100, 3}
	var prevEnd uintptr
	for _, size := range sizes {
		s := pool.TakeSlice(size)
		require.False(t, s.IsNil())

		start := uintptr(s.Head())
		require.True(t, start >= prevEnd)
		prevEnd = start + uintptr(s.Size())
	}
}

func TestPoolReset(t *testing.T) {
	pool := arena.NewPool(512)
	defer pool.Destroy()

	first := pool.TakeSlice(100)
	require.False(t, first.IsNil())
	pool.TakeSlice(100)
	usedBeforeReset := pool.BytesUsed()

	pool.Reset()
	require.Equal(t, 0, pool.BytesUsed())
	require.Equal(t, usedBeforeReset, pool.MaxBytesUsed())

	// The next take reuses the pool's initial address.
	again := pool.TakeSlice(100)
	require.Equal(t, first.Head(), again.Head())

	// The high-water mark is monotonic across resets.
	pool.Reset()
	require.Equal(t, usedBeforeReset, pool.MaxBytesUsed())

	pool.TakeSlice(400)
	pool.Reset()
	require.Equal(t, 400+carve.DebugMargin, pool.MaxBytesUsed())
}

func TestResetDoesNotClearMemory(t *testing.T) {
	pool := arena.NewPool(64)
	defer pool.Destroy()

	s := pool.TakeSlice(8)
	s.Fill(0x5A)

	pool.Reset()

	// Values from the previous epoch remain visible until overwritten.
	again := pool.TakeSlice(8)
	require.Equal(t, s.Head(), again.Head())
	require.Equal(t, byte(0x5A), again.Bytes()[0])
}

func TestTakeAlignedSlice(t *testing.T) {
	pool := arena.NewPool(4096)
	defer pool.Destroy()

	// Misalign the cursor's address relative to larger boundaries first.
	pool.TakeSlice(8)

	for _, alignment := range []uint{16, 64, 256, 1024} {
		s := pool.TakeAlignedSlice(24, alignment)
		require.False(t, s.IsNil(), "alignment %d", alignment)
		require.Equal(t, 24, s.Size())
		require.True(t, s.IsAligned(alignment))
		// The cursor stays on an 8-byte boundary for subsequent plain takes.
		require.Equal(t, 0, pool.BytesUsed()%8)
	}
}

func TestTakeAlignedSliceExhaustion(t *testing.T) {
	pool := arena.NewPool(64)
	defer pool.Destroy()

	pool.TakeSlice(8)
	used := pool.BytesUsed()

	// Padding plus the request cannot fit; nothing is consumed.
	s := pool.TakeAlignedSlice(64, 64)
	require.True(t, s.IsNil())
	require.Equal(t, used, pool.BytesUsed())
}

func TestPoolOwns(t *testing.T) {
	pool := arena.NewPool(128)
	defer pool.Destroy()

	s := pool.TakeSlice(16)
	require.True(t, pool.Owns(s.Head()))
	require.True(t, pool.Owns(unsafe.Add(s.Head(), 15)))

	// Owns covers only the currently allocated prefix, not the whole block.
	// Guard bytes, when present, sit inside that prefix.
	if carve.DebugMargin == 0 {
		require.False(t, pool.Owns(unsafe.Add(s.Head(), 16)))
	} else {
		require.True(t, pool.Owns(unsafe.Add(s.Head(), 16)))
		require.False(t, pool.Owns(unsafe.Add(s.Head(), 16+carve.DebugMargin)))
	}

	outside := make([]byte, 4)
	require.False(t, pool.Owns(unsafe.Pointer(&outside[0])))

	pool.Reset()
	require.False(t, pool.Owns(s.Head()))
}

func TestPoolQueries(t *testing.T) {
	pool := arena.NewPool(256)
	defer pool.Destroy()

	require.Equal(t, 256, pool.Size())
	require.Equal(t, 0, pool.BytesUsed())
	require.Equal(t, 256, pool.RemainingBytes())
	require.Equal(t, 0, pool.MaxBytesUsed())

	pool.TakeSlice(32)
	require.Equal(t, 224-carve.DebugMargin, pool.RemainingBytes())
	require.NoError(t, pool.Validate())
	require.NoError(t, pool.CheckCorruption())
}

func TestNilBlockPropagatesThroughPool(t *testing.T) {
	if carve.DebugMargin > 0 {
		// Constructing over an invalid size is a caller error here.
		require.Panics(t, func() { arena.NewPool(0) })
		return
	}

	// A pool over an invalid block degrades to failing every take.
	pool := arena.NewPool(0)
	defer pool.Destroy()

	require.Equal(t, 0, pool.Size())
	require.True(t, pool.TakeSlice(8).IsNil())
	require.True(t, pool.TakeAlignedSlice(8, 8).IsNil())
	require.Nil(t, arena.Take[uint64](pool))
}

func TestPoolStatistics(t *testing.T) {
	pool := arena.NewPool(512)
	defer pool.Destroy()

	pool.TakeSlice(64)

	var stats carve.PoolStatistics
	pool.AddPoolStatistics(&stats)
	require.Equal(t, 512, stats.CapacityBytes)
	require.Equal(t, 64+carve.DebugMargin, stats.UsedBytes)
	require.Equal(t, 64+carve.DebugMargin, stats.MaxUsedBytes)
}

func TestCheckCorruptionDetectsGuardDamage(t *testing.T) {
	pool := arena.NewPool(256)
	defer pool.Destroy()

	s := pool.TakeSlice(10)
	require.False(t, s.IsNil())
	require.NoError(t, pool.CheckCorruption())

	if carve.DebugMargin == 0 {
		// No guard bytes exist to damage.
		return
	}

	// The guard sits right after the 8-byte-rounded allocation. Overwriting
	// any of its bytes simulates a write past the end of the slice.
	*(*byte)(unsafe.Add(s.Head(), 16)) = 0xFF
	require.Error(t, pool.CheckCorruption())

	// Reset discards the damaged guard along with the allocation.
	pool.Reset()
	require.NoError(t, pool.CheckCorruption())
}

func BenchmarkPoolTakeSlice(b *testing.B) {
	pool := arena.NewPool(1 << 20)
	defer pool.Destroy()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if pool.RemainingBytes() < 64+carve.DebugMargin {
			pool.Reset()
		}
		s := pool.TakeSlice(48)
		if s.IsNil() {
			b.Fatal("allocation failed")
		}
	}
}
