package carve

// Byte-count helpers for the sizes handed to pools and managers. Pure
// arithmetic, provided so call sites can say MBToBytes(4) instead of
// spelling out the multiplication.

// KBToBytes returns n kilobytes expressed in bytes.
func KBToBytes(n int) int { return n * 1024 }

// MBToBytes returns n megabytes expressed in bytes.
func MBToBytes(n int) int { return n * 1024 * 1024 }

// GBToBytes returns n gigabytes expressed in bytes.
func GBToBytes(n int) int { return n * 1024 * 1024 * 1024 }
