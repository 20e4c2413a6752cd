package arena

import (
	"unsafe"

	"github.com/carvelabs/carve"
)

// Block owns a single contiguous heap allocation for its entire lifetime. It
// has no knowledge of how its memory is used; higher layers such as Pool
// carve it up. Ownership is strict and non-transferable: exactly one owner
// holds the Block, and that owner calls Release exactly once.
type Block struct {
	buf  []byte
	head unsafe.Pointer
	size int
}

// NewBlock allocates a contiguous block of sizeInBytes bytes. Requesting a
// non-positive size is a caller error: it panics in debug_carve builds, and
// otherwise yields a nil-headed Block that propagates failure through the
// owning pool.
func NewBlock(sizeInBytes int) *Block {
	carve.DebugAssert(sizeInBytes > 0, "NewBlock: size must be positive")
	if sizeInBytes <= 0 {
		return &Block{}
	}

	buf := make([]byte, sizeInBytes)
	return &Block{
		buf:  buf,
		head: unsafe.Pointer(&buf[0]),
		size: sizeInBytes,
	}
}

// Release returns the block's memory to the runtime. Safe to call on an
// already-released or nil-headed block.
func (b *Block) Release() {
	b.buf = nil
	b.head = nil
	b.size = 0
}

// Head returns a pointer to the start of the allocated block. The caller is
// responsible for not using the pointer after the block is released.
func (b *Block) Head() unsafe.Pointer {
	return b.head
}

// Size returns the size of the block in bytes, as requested at creation.
func (b *Block) Size() int {
	return b.size
}

// IsNil indicates whether the block holds no memory, either because the
// requested size was invalid or because it has been released.
func (b *Block) IsNil() bool {
	return b.head == nil
}
