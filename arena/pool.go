package arena

import (
	"unsafe"

	"github.com/carvelabs/carve"
	"github.com/pkg/errors"
)

// Pool is a linear allocator that carves slices out of a single owned Block
// by advancing a cursor. Allocation is O(1): one addition and one
// comparison. There is no per-object deallocation; Reset reclaims the whole
// region at once, which suits temporary or per-frame allocations whose
// lifetimes end together.
//
// The cursor always sits on an 8-byte boundary, so every slice a pool hands
// out is suitably aligned for any ordinary Go type. Pools share no state
// with each other; a single pool must not be used from multiple goroutines
// without external synchronization.
type Pool struct {
	block        *Block
	nextOffset   int
	maxBytesUsed int

	// Offsets of the guard margins written after each allocation when the
	// debug_carve build tag is present. Always empty otherwise.
	guardOffsets []int
}

// NewPool creates a pool backed by a freshly allocated block of sizeInBytes
// bytes. A non-positive size is a caller error: it panics in debug_carve
// builds and otherwise yields a pool whose every take fails.
func NewPool(sizeInBytes int) *Pool {
	return &Pool{block: NewBlock(sizeInBytes)}
}

// Destroy releases the pool's backing block. Every slice the pool ever
// returned becomes invalid. Safe to call more than once.
func (p *Pool) Destroy() {
	p.block.Release()
	p.guardOffsets = nil
}

// Size returns the capacity of the pool's backing block in bytes.
func (p *Pool) Size() int {
	return p.block.Size()
}

// BytesUsed returns the number of bytes consumed since the last reset,
// including alignment rounding.
func (p *Pool) BytesUsed() int {
	return p.nextOffset
}

// RemainingBytes returns the number of bytes still available for taking.
func (p *Pool) RemainingBytes() int {
	return p.block.Size() - p.nextOffset
}

// MaxBytesUsed returns the high-water mark: the largest BytesUsed value ever
// folded in by Reset over the pool's lifetime.
func (p *Pool) MaxBytesUsed() int {
	return p.maxBytesUsed
}

// Owns reports whether ptr falls within the currently allocated prefix of
// the pool's block, [head, head+BytesUsed()). Memory beyond the cursor is
// not owned yet, even though it sits inside the block.
func (p *Pool) Owns(ptr unsafe.Pointer) bool {
	pv := uintptr(ptr)
	head := uintptr(p.block.Head())
	return pv >= head && pv < head+uintptr(p.nextOffset)
}

// TakeSlice carves out a slice of sizeInBytes bytes at the current cursor.
// The request is rounded up to the next multiple of 8 when advancing the
// cursor, keeping subsequent takes aligned; the returned slice is exactly
// the requested size. Exhaustion is a legitimate runtime condition, not a
// caller error: when the rounded request does not fit in the remaining
// capacity, TakeSlice returns the empty slice and consumes nothing, in both
// build modes. Requesting zero or fewer bytes is a caller error that panics
// in debug_carve builds.
func (p *Pool) TakeSlice(sizeInBytes int) Slice {
	carve.DebugAssert(sizeInBytes > 0, "TakeSlice: cannot request 0 bytes")
	if sizeInBytes <= 0 {
		return Slice{}
	}

	alignedReq := (sizeInBytes + 7) &^ 7

	if p.nextOffset+alignedReq+carve.DebugMargin > p.block.Size() {
		return Slice{}
	}

	ptr := unsafe.Add(p.block.Head(), p.nextOffset)
	p.nextOffset += alignedReq
	p.writeGuard()

	carve.DebugValidate(p)
	return Slice{head: ptr, size: sizeInBytes}
}

// TakeAlignedSlice carves out a slice of sizeInBytes bytes whose address
// satisfies alignment, which must be a non-zero power of two. Padding bytes
// are consumed as needed to reach the aligned address, and the cursor
// advances by the padded request rounded up to a multiple of 8 so that plain
// TakeSlice calls stay aligned afterwards. Exhaustion returns the empty
// slice and consumes nothing.
func (p *Pool) TakeAlignedSlice(sizeInBytes int, alignment uint) Slice {
	carve.DebugAssert(sizeInBytes > 0, "TakeAlignedSlice: cannot request 0 bytes")
	carve.DebugCheckPow2(alignment, "alignment")
	if sizeInBytes <= 0 || alignment == 0 || alignment&(alignment-1) != 0 {
		return Slice{}
	}

	raw := uintptr(p.block.Head()) + uintptr(p.nextOffset)
	aligned := (raw + uintptr(alignment-1)) &^ uintptr(alignment-1)
	padding := int(aligned - raw)

	totalAdvance := (padding + sizeInBytes + 7) &^ 7

	if p.nextOffset+totalAdvance+carve.DebugMargin > p.block.Size() {
		return Slice{}
	}

	ptr := unsafe.Add(p.block.Head(), p.nextOffset+padding)
	p.nextOffset += totalAdvance
	p.writeGuard()

	carve.DebugValidate(p)
	return Slice{head: ptr, size: sizeInBytes}
}

// Reset makes the pool's entire capacity available again. The high-water
// mark keeps the largest usage seen so far. No memory is cleared and no
// destructors run. Values from the previous epoch remain visible until
// overwritten, and reuse is the caller's responsibility.
func (p *Pool) Reset() {
	if p.nextOffset > p.maxBytesUsed {
		p.maxBytesUsed = p.nextOffset
	}
	p.nextOffset = 0
	p.guardOffsets = p.guardOffsets[:0]
}

// AddPoolStatistics sums this pool's capacity and usage into stats.
func (p *Pool) AddPoolStatistics(stats *carve.PoolStatistics) {
	stats.CapacityBytes += p.block.Size()
	stats.UsedBytes += p.nextOffset
	max := p.maxBytesUsed
	if p.nextOffset > max {
		max = p.nextOffset
	}
	stats.MaxUsedBytes += max
}

// Validate performs internal consistency checks on the pool's control state.
// When the implementation is functioning correctly it cannot return an
// error, but it may assist in diagnosing issues.
func (p *Pool) Validate() error {
	if p.nextOffset < 0 || p.nextOffset > p.block.Size() {
		return errors.Errorf("pool cursor %d is outside the block's %d bytes", p.nextOffset, p.block.Size())
	}
	if p.nextOffset%8 != 0 {
		return errors.Errorf("pool cursor %d is not 8-byte aligned", p.nextOffset)
	}
	if p.maxBytesUsed > p.block.Size() {
		return errors.Errorf("pool high-water mark %d exceeds the block's %d bytes", p.maxBytesUsed, p.block.Size())
	}
	return nil
}

// CheckCorruption verifies the guard margins placed after each allocation
// since the last reset. It can only detect anything when the debug_carve
// build tag is present; otherwise no guards exist and it trivially passes.
func (p *Pool) CheckCorruption() error {
	for _, offset := range p.guardOffsets {
		if !carve.ValidateMagicValue(p.block.Head(), offset) {
			return errors.Errorf("memory corruption detected in guard bytes at offset %d", offset)
		}
	}
	return nil
}

// writeGuard reserves DebugMargin bytes at the cursor and fills them with
// the magic pattern. DebugMargin is 0 without the debug_carve tag, making
// this a no-op the compiler can discard.
func (p *Pool) writeGuard() {
	if carve.DebugMargin == 0 {
		return
	}
	carve.WriteMagicValue(p.block.Head(), p.nextOffset)
	p.guardOffsets = append(p.guardOffsets, p.nextOffset)
	p.nextOffset += carve.DebugMargin
}
