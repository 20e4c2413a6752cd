package arena

import "github.com/carvelabs/carve"

// Bit operations over the slice's bytes. Bit indices address bits across the
// whole region, least-significant bit first within each byte: bit 0 is the
// lowest bit of byte 0, bit 8 the lowest bit of byte 1, and so on.
//
// Out-of-range indices are caller errors that panic in debug_carve builds;
// IsBitInRange is the non-panicking bounds check for callers that cannot
// guarantee their index.

// GetBit returns the value of the bit at bitIndex.
func (s Slice) GetBit(bitIndex int) bool {
	carve.DebugAssert(!s.IsNil(), "GetBit: cannot read from a nil slice")
	carve.DebugAssert(bitIndex >= 0 && bitIndex < s.size*8, "GetBit: bit index out of range")

	return (s.Bytes()[bitIndex/8]>>(bitIndex%8))&1 == 1
}

// SetBit sets the bit at bitIndex to 1.
func (s Slice) SetBit(bitIndex int) {
	carve.DebugAssert(!s.IsNil(), "SetBit: cannot write to a nil slice")
	carve.DebugAssert(bitIndex >= 0 && bitIndex < s.size*8, "SetBit: bit index out of range")

	s.Bytes()[bitIndex/8] |= 1 << (bitIndex % 8)
}

// ClearBit clears the bit at bitIndex to 0.
func (s Slice) ClearBit(bitIndex int) {
	carve.DebugAssert(!s.IsNil(), "ClearBit: cannot write to a nil slice")
	carve.DebugAssert(bitIndex >= 0 && bitIndex < s.size*8, "ClearBit: bit index out of range")

	s.Bytes()[bitIndex/8] &^= 1 << (bitIndex % 8)
}

// ToggleBit flips the bit at bitIndex.
func (s Slice) ToggleBit(bitIndex int) {
	carve.DebugAssert(!s.IsNil(), "ToggleBit: cannot write to a nil slice")
	carve.DebugAssert(bitIndex >= 0 && bitIndex < s.size*8, "ToggleBit: bit index out of range")

	s.Bytes()[bitIndex/8] ^= 1 << (bitIndex % 8)
}

// IsBitSet reports whether the bit at bitIndex is set. Equivalent to GetBit
// but reads better in boolean contexts.
func (s Slice) IsBitSet(bitIndex int) bool {
	return s.GetBit(bitIndex)
}

// IsBitInRange reports whether bitIndex addresses a bit inside this slice.
// Unlike the other bit operations it never panics, making it suitable as a
// guard before them.
func (s Slice) IsBitInRange(bitIndex int) bool {
	return !s.IsNil() && bitIndex >= 0 && bitIndex < s.size*8
}

// BitCount returns the total number of addressable bits in this slice.
func (s Slice) BitCount() int {
	return s.size * 8
}
