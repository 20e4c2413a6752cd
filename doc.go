// Package carve contains shared plumbing for the carve allocator stack:
// alignment and power-of-two helpers, byte-unit conversions, pool usage
// statistics, and the debug validation layer that backs the arena and
// manage packages.
//
// Debug validation is controlled by the debug_carve build tag. With the tag
// present, misuse checks panic at the point of misuse and pools place guard
// margins between allocations for corruption detection. Without it, the
// checks compile down to no-ops and the allocation path carries no overhead.
package carve
