package arena

import (
	"unsafe"

	"github.com/carvelabs/carve"
)

// Typed access over slices and pools. Go methods cannot be generic, so these
// live as package-level functions taking the Slice or Pool as their first
// argument.

// As reinterprets the head of the slice as a *T. The slice must be non-nil
// and large enough to hold a T; violating either is a caller error that
// panics in debug_carve builds. The caller is responsible for the pointer
// being suitably aligned for T; slices produced by a Pool always are.
func As[T any](s Slice) *T {
	var zero T
	carve.DebugAssert(!s.IsNil(), "As: cannot cast a nil slice")
	carve.DebugAssert(int(unsafe.Sizeof(zero)) <= s.size, "As: slice is too small to hold T")

	return (*T)(s.head)
}

// Get returns a *T addressing the bytes at byteOffset within the slice. The
// read range must fall inside the slice; violating that is a caller error
// that panics in debug_carve builds. The returned pointer is valid only as
// long as the underlying memory.
func Get[T any](s Slice, byteOffset int) *T {
	var zero T
	carve.DebugAssert(!s.IsNil(), "Get: cannot dereference a nil slice")
	carve.DebugAssert(byteOffset >= 0 && byteOffset+int(unsafe.Sizeof(zero)) <= s.size, "Get: offset would exceed slice bounds")

	return (*T)(unsafe.Add(s.head, byteOffset))
}

// Read copies a T out of the slice at byteOffset into out. The read range
// must fall inside the slice; violating that is a caller error that panics
// in debug_carve builds. The copy is byte-wise, so T needs no particular
// alignment within the slice.
func Read[T any](s Slice, out *T, byteOffset int) {
	size := int(unsafe.Sizeof(*out))
	carve.DebugAssert(!s.IsNil(), "Read: cannot read from a nil slice")
	carve.DebugAssert(byteOffset >= 0 && byteOffset+size <= s.size, "Read: read would exceed slice bounds")

	copy(unsafe.Slice((*byte)(unsafe.Pointer(out)), size), s.Bytes()[byteOffset:byteOffset+size])
}

// Write copies value into the slice at byteOffset. Exceeding the slice
// bounds is a caller error that panics in debug_carve builds; in either
// build mode Write reports whether the write was performed, so release
// call sites can check without relying on the stripped assertion.
func Write[T any](s Slice, value T, byteOffset int) bool {
	size := int(unsafe.Sizeof(value))
	carve.DebugAssert(!s.IsNil(), "Write: cannot write to a nil slice")
	carve.DebugAssert(byteOffset >= 0 && byteOffset+size <= s.size, "Write: write would exceed slice bounds")

	if s.IsNil() || byteOffset < 0 || byteOffset+size > s.size {
		return false
	}

	copy(s.Bytes()[byteOffset:], unsafe.Slice((*byte)(unsafe.Pointer(&value)), size))
	return true
}

// Take carves space for one T from the pool and returns a pointer to a
// zero-valued T constructed in place, or nil when the pool cannot satisfy
// the request. Nothing is constructed on failure.
func Take[T any](p *Pool) *T {
	var zero T
	return TakeWith(p, zero)
}

// TakeWith carves space for one T from the pool, places value in it, and
// returns the typed pointer, or nil when the pool cannot satisfy the
// request. Nothing is constructed on failure.
func TakeWith[T any](p *Pool, value T) *T {
	s := p.TakeSlice(int(unsafe.Sizeof(value)))
	if s.IsNil() {
		return nil
	}

	ptr := (*T)(s.head)
	*ptr = value
	return ptr
}

// TakeArray carves space for count contiguous Ts from the pool, zeroes each
// element in address order, and returns them as a Go slice sharing the
// pool's memory. A count of zero or less yields nil, as does pool
// exhaustion.
func TakeArray[T any](p *Pool, count int) []T {
	if count <= 0 {
		return nil
	}

	var zero T
	s := p.TakeSlice(int(unsafe.Sizeof(zero)) * count)
	if s.IsNil() {
		return nil
	}

	arr := unsafe.Slice((*T)(s.head), count)
	for i := range arr {
		arr[i] = zero
	}
	return arr
}
