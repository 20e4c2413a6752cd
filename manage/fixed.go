package manage

import (
	"github.com/carvelabs/carve"
	"github.com/carvelabs/carve/arena"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slog"
)

// FixedManager owns a set of pools whose count and sizes are fixed for the
// manager's whole lifetime. Every slot is always occupied; there is no
// create or delete, only access and reset. The pool count is fixed by the
// number of sizes passed to NewFixedManager and never changes afterwards.
//
// Not safe for concurrent use without external synchronization.
type FixedManager struct {
	logger *slog.Logger
	pools  []*arena.Pool
}

// NewFixedManager constructs one pool per entry of sizes, in order. The
// returned manager owns the pools until Destroy is called.
func NewFixedManager(logger *slog.Logger, sizes ...int) *FixedManager {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("FixedManager::New", slog.Int("poolCount", len(sizes)))

	pools := make([]*arena.Pool, len(sizes))
	for i, size := range sizes {
		pools[i] = arena.NewPool(size)
	}

	return &FixedManager{
		logger: logger,
		pools:  pools,
	}
}

// Destroy releases every pool's backing block. Every slice ever handed out
// by any of them becomes invalid.
func (m *FixedManager) Destroy() {
	m.logger.Debug("FixedManager::Destroy")

	for _, pool := range m.pools {
		pool.Destroy()
	}
}

// PoolCount returns the number of pools this manager holds.
func (m *FixedManager) PoolCount() int {
	return len(m.pools)
}

// ActivePoolCount returns the number of live pools, which for a fixed
// manager always equals PoolCount.
func (m *FixedManager) ActivePoolCount() int {
	return len(m.pools)
}

// Pool returns the pool at index. An out-of-range index is a caller error:
// it panics in debug_carve builds and returns nil otherwise.
func (m *FixedManager) Pool(index int) *arena.Pool {
	carve.DebugAssert(index >= 0 && index < len(m.pools), "Pool: index out of bounds")
	if index < 0 || index >= len(m.pools) {
		return nil
	}
	return m.pools[index]
}

// ResetPool resets the pool at index. An out-of-range index is a caller
// error: it panics in debug_carve builds and is ignored otherwise.
func (m *FixedManager) ResetPool(index int) {
	carve.DebugAssert(index >= 0 && index < len(m.pools), "ResetPool: index out of bounds")
	if index < 0 || index >= len(m.pools) {
		return
	}
	m.pools[index].Reset()
}

// ResetAll resets every pool, making all their memory available for reuse.
func (m *FixedManager) ResetAll() {
	m.logger.Debug("FixedManager::ResetAll")

	for _, pool := range m.pools {
		pool.Reset()
	}
}

// AddStatistics sums every pool's capacity and usage into stats.
func (m *FixedManager) AddStatistics(stats *carve.Statistics) {
	for _, pool := range m.pools {
		var poolStats carve.PoolStatistics
		pool.AddPoolStatistics(&poolStats)
		stats.AddPoolStatistics(&poolStats)
	}
}

// buildStatsJson writes one JSON object per pool into s.
func (m *FixedManager) buildStatsJson(s *jwriter.ArrayState) {
	for i, pool := range m.pools {
		o := s.Object()
		o.Name("Index").Int(i)
		printPoolParameters(&o, pool)
		o.End()
	}
}
