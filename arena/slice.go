package arena

import (
	"bytes"
	"unsafe"

	"github.com/carvelabs/carve"
)

// Slice is a non-owning view into a region of memory: a head pointer and a
// length in bytes. It does not allocate or free anything, and it carries no
// lifetime relationship to the memory it describes: the slice is valid only
// as long as the underlying region is. That is a documented contract, not an
// enforced one.
//
// Slices are plain values and trivially copyable. Multiple slices may alias
// the same or overlapping regions; use Contains to reason about bounds. The
// zero value is the canonical empty slice and is what every fallible
// operation in this package returns on failure.
type Slice struct {
	head unsafe.Pointer
	size int
}

// MakeSlice constructs a slice over an existing region. The caller is
// responsible for keeping the region alive for as long as the slice is used.
// A non-nil head with a non-positive size is a caller error: it panics in
// debug_carve builds and yields the empty slice otherwise. MakeSlice(nil, 0)
// is the canonical empty slice.
func MakeSlice(head unsafe.Pointer, sizeInBytes int) Slice {
	carve.DebugAssert(head == nil || sizeInBytes > 0, "MakeSlice: size must be positive for a non-nil head")
	if head == nil || sizeInBytes <= 0 {
		return Slice{}
	}
	return Slice{head: head, size: sizeInBytes}
}

// SliceOf returns a slice viewing the full extent of buf. Handy for applying
// the slice utilities to memory the pool stack did not produce.
func SliceOf(buf []byte) Slice {
	if len(buf) == 0 {
		return Slice{}
	}
	return Slice{head: unsafe.Pointer(&buf[0]), size: len(buf)}
}

// Head returns a pointer to the start of the viewed region.
func (s Slice) Head() unsafe.Pointer {
	return s.head
}

// Size returns the size of the viewed region in bytes.
func (s Slice) Size() int {
	return s.size
}

// IsNil indicates whether this is the empty slice. An empty slice is what
// fallible operations such as Pool.TakeSlice return on failure.
func (s Slice) IsNil() bool {
	return s.head == nil
}

// Bytes returns the viewed region as a byte slice sharing the same memory.
func (s Slice) Bytes() []byte {
	return unsafe.Slice((*byte)(s.head), s.size)
}

// Contains reports whether ptr falls within the half-open range
// [head, head+size).
func (s Slice) Contains(ptr unsafe.Pointer) bool {
	p := uintptr(ptr)
	start := uintptr(s.head)
	return p >= start && p < start+uintptr(s.size)
}

// Offset returns a pointer bytes past the head of the slice, or nil if the
// offset is out of bounds.
func (s Slice) Offset(bytes int) unsafe.Pointer {
	if bytes < 0 || bytes >= s.size {
		return nil
	}
	return unsafe.Add(s.head, bytes)
}

// Subslice carves out a sub-region starting at offset. It returns the empty
// slice if the requested region would exceed this slice's bounds, never a
// truncated one.
func (s Slice) Subslice(offset, size int) Slice {
	head := s.Offset(offset)
	if head == nil || size <= 0 || offset+size > s.size {
		return Slice{}
	}
	return Slice{head: head, size: size}
}

// CopyFrom copies size bytes from other into this slice at the given
// offsets. No bytes are copied if either the source read range or the
// destination write range would exceed that slice's bounds, in which case
// CopyFrom returns false. Overlapping source and destination ranges are the
// caller's responsibility to avoid; the copy makes no move-safety guarantee.
// Copying between nil slices is a caller error that panics in debug_carve
// builds.
func (s Slice) CopyFrom(other Slice, srcOffset, dstOffset, size int) bool {
	carve.DebugAssert(!s.IsNil(), "CopyFrom: cannot copy into a nil slice")
	carve.DebugAssert(!other.IsNil(), "CopyFrom: cannot copy from a nil slice")
	carve.DebugAssert(srcOffset >= 0 && srcOffset+size <= other.size, "CopyFrom: read would exceed source bounds")
	carve.DebugAssert(dstOffset >= 0 && dstOffset+size <= s.size, "CopyFrom: write would exceed destination bounds")

	if s.IsNil() || other.IsNil() || size < 0 {
		return false
	}
	if srcOffset < 0 || srcOffset+size > other.size {
		return false
	}
	if dstOffset < 0 || dstOffset+size > s.size {
		return false
	}

	copy(s.Bytes()[dstOffset:dstOffset+size], other.Bytes()[srcOffset:srcOffset+size])
	return true
}

// Fill sets every byte of the slice to value. Filling a nil slice is a
// caller error that panics in debug_carve builds.
func (s Slice) Fill(value byte) {
	carve.DebugAssert(!s.IsNil(), "Fill: cannot fill a nil slice")

	buf := s.Bytes()
	for i := range buf {
		buf[i] = value
	}
}

// Zero sets every byte of the slice to zero. Zeroing a nil slice is a caller
// error that panics in debug_carve builds.
func (s Slice) Zero() {
	s.Fill(0)
}

// Equals compares the contents of this slice with another byte-for-byte.
// Slices of different sizes are never equal. Comparing nil slices is a
// caller error that panics in debug_carve builds.
func (s Slice) Equals(other Slice) bool {
	carve.DebugAssert(!s.IsNil(), "Equals: cannot compare a nil slice")
	carve.DebugAssert(!other.IsNil(), "Equals: cannot compare against a nil slice")

	if s.size != other.size {
		return false
	}
	return bytes.Equal(s.Bytes(), other.Bytes())
}

// IsAligned reports whether the head of the slice sits on an alignment-byte
// boundary. alignment must be a non-zero power of two.
func (s Slice) IsAligned(alignment uint) bool {
	carve.DebugCheckPow2(alignment, "alignment")
	return uintptr(s.head)&uintptr(alignment-1) == 0
}
