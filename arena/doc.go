// Package arena implements the core allocator stack: Block, a strictly
// owned backing allocation; Slice, a non-owning typed view over any memory
// region; and Pool, a linear allocator that bumps a cursor through its block
// and reclaims everything at once on Reset.
package arena
