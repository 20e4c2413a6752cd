package manage

import (
	"github.com/carvelabs/carve"
	"github.com/carvelabs/carve/arena"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slog"
)

// DynamicManager owns a fixed number of pool slots whose occupants can be
// created, destroyed, and swapped independently at runtime. A slot is either
// empty or holds exactly one pool. The occupied-slot count is maintained
// incrementally by create and delete rather than recomputed.
//
// Slots may optionally be created with a name, which registers them for
// FindPool lookup.
//
// Not safe for concurrent use without external synchronization.
type DynamicManager struct {
	logger      *slog.Logger
	pools       []*arena.Pool
	slotNames   []string
	activeCount int
	names       *swiss.Map[string, int]
}

// NewDynamicManager constructs a manager with slotCount empty slots. The
// slot count is fixed for the manager's lifetime.
func NewDynamicManager(logger *slog.Logger, slotCount int) *DynamicManager {
	if logger == nil {
		logger = slog.Default()
	}
	carve.DebugAssert(slotCount >= 0, "NewDynamicManager: slot count cannot be negative")
	if slotCount < 0 {
		slotCount = 0
	}
	logger.Debug("DynamicManager::New", slog.Int("slotCount", slotCount))

	nameCapacity := slotCount
	if nameCapacity < 1 {
		nameCapacity = 1
	}

	return &DynamicManager{
		logger:    logger,
		pools:     make([]*arena.Pool, slotCount),
		slotNames: make([]string, slotCount),
		names:     swiss.NewMap[string, int](uint32(nameCapacity)),
	}
}

// Destroy deletes every occupied slot, releasing each pool's backing block.
func (m *DynamicManager) Destroy() {
	m.logger.Debug("DynamicManager::Destroy")

	for i := range m.pools {
		m.DeletePool(i)
	}
}

// MaxPoolCount returns the number of slots this manager holds, occupied or
// not.
func (m *DynamicManager) MaxPoolCount() int {
	return len(m.pools)
}

// ActivePoolCount returns the number of currently occupied slots.
func (m *DynamicManager) ActivePoolCount() int {
	return m.activeCount
}

// CreatePool allocates a new pool of poolSize bytes in the slot at index.
// An existing occupant is never disturbed: creating over an occupied slot,
// like an out-of-range index, is a caller error that panics in debug_carve
// builds and degrades to a false return otherwise, with no allocation
// performed. Returns true if the pool was created.
func (m *DynamicManager) CreatePool(index int, poolSize int) bool {
	return m.CreateNamedPool(index, "", poolSize)
}

// CreateNamedPool behaves like CreatePool and additionally registers the
// slot under name for FindPool lookup. An empty name registers nothing. A
// name already registered to another slot is a caller error that panics in
// debug_carve builds and degrades to a false return otherwise.
func (m *DynamicManager) CreateNamedPool(index int, name string, poolSize int) bool {
	carve.DebugAssert(index >= 0 && index < len(m.pools), "CreatePool: index out of bounds")
	carve.DebugAssert(index < 0 || index >= len(m.pools) || m.pools[index] == nil,
		"CreatePool: pool already exists at this index, call DeletePool first")

	if index < 0 || index >= len(m.pools) || m.pools[index] != nil {
		return false
	}
	if name != "" {
		_, taken := m.names.Get(name)
		carve.DebugAssert(!taken, "CreatePool: pool name is already registered")
		if taken {
			return false
		}
	}

	m.logger.Debug("DynamicManager::CreatePool",
		slog.Int("index", index),
		slog.String("name", name),
		slog.Int("poolSize", poolSize),
	)

	m.pools[index] = arena.NewPool(poolSize)
	m.slotNames[index] = name
	if name != "" {
		m.names.Put(name, index)
	}
	m.activeCount++
	return true
}

// DeletePool destroys the pool at index and empties the slot. Deleting an
// already-empty slot is a safe no-op, unlike most other slot operations. An
// out-of-range index is a caller error that panics in debug_carve builds
// and is ignored otherwise.
func (m *DynamicManager) DeletePool(index int) {
	carve.DebugAssert(index >= 0 && index < len(m.pools), "DeletePool: index out of bounds")
	if index < 0 || index >= len(m.pools) || m.pools[index] == nil {
		return
	}

	m.logger.Debug("DynamicManager::DeletePool", slog.Int("index", index))

	m.pools[index].Destroy()
	m.pools[index] = nil
	if m.slotNames[index] != "" {
		m.names.Delete(m.slotNames[index])
		m.slotNames[index] = ""
	}
	m.activeCount--
}

// Pool returns the pool at index. An out-of-range index or an empty slot is
// a caller error: it panics in debug_carve builds and returns nil otherwise.
// Use PoolExists to query occupancy without risk.
func (m *DynamicManager) Pool(index int) *arena.Pool {
	carve.DebugAssert(index >= 0 && index < len(m.pools), "Pool: index out of bounds")
	if index < 0 || index >= len(m.pools) {
		return nil
	}
	carve.DebugAssert(m.pools[index] != nil, "Pool: attempted to access an empty slot")
	return m.pools[index]
}

// PoolExists reports whether a pool occupies the slot at index. It never
// panics: out-of-range indices simply report false.
func (m *DynamicManager) PoolExists(index int) bool {
	return index >= 0 && index < len(m.pools) && m.pools[index] != nil
}

// FindPool returns the pool registered under name along with its slot
// index. It never panics; an unknown name reports found == false.
func (m *DynamicManager) FindPool(name string) (pool *arena.Pool, index int, found bool) {
	index, found = m.names.Get(name)
	if !found {
		return nil, 0, false
	}
	return m.pools[index], index, true
}

// ResetPool resets the pool at index. An out-of-range index or an empty
// slot is a caller error: it panics in debug_carve builds and is ignored
// otherwise.
func (m *DynamicManager) ResetPool(index int) {
	carve.DebugAssert(index >= 0 && index < len(m.pools), "ResetPool: index out of bounds")
	if index < 0 || index >= len(m.pools) {
		return
	}
	carve.DebugAssert(m.pools[index] != nil, "ResetPool: cannot reset an empty slot")
	if m.pools[index] == nil {
		return
	}
	m.pools[index].Reset()
}

// ResetAll resets every occupied slot, silently skipping empty ones,
// deliberately more permissive than ResetPool.
func (m *DynamicManager) ResetAll() {
	m.logger.Debug("DynamicManager::ResetAll")

	for _, pool := range m.pools {
		if pool != nil {
			pool.Reset()
		}
	}
}

// SwapPools exchanges the contents of two slots, including their
// empty-or-occupied status and registered names. Safe regardless of
// occupancy. An out-of-range index is a caller error that panics in
// debug_carve builds and is ignored otherwise.
func (m *DynamicManager) SwapPools(indexA, indexB int) {
	carve.DebugAssert(indexA >= 0 && indexA < len(m.pools), "SwapPools: indexA out of bounds")
	carve.DebugAssert(indexB >= 0 && indexB < len(m.pools), "SwapPools: indexB out of bounds")
	if indexA < 0 || indexA >= len(m.pools) || indexB < 0 || indexB >= len(m.pools) {
		return
	}

	m.logger.Debug("DynamicManager::SwapPools", slog.Int("indexA", indexA), slog.Int("indexB", indexB))

	m.pools[indexA], m.pools[indexB] = m.pools[indexB], m.pools[indexA]
	m.slotNames[indexA], m.slotNames[indexB] = m.slotNames[indexB], m.slotNames[indexA]
	if m.slotNames[indexA] != "" {
		m.names.Put(m.slotNames[indexA], indexA)
	}
	if m.slotNames[indexB] != "" {
		m.names.Put(m.slotNames[indexB], indexB)
	}
}

// AddStatistics sums every occupied slot's capacity and usage into stats.
func (m *DynamicManager) AddStatistics(stats *carve.Statistics) {
	for _, pool := range m.pools {
		if pool == nil {
			continue
		}
		var poolStats carve.PoolStatistics
		pool.AddPoolStatistics(&poolStats)
		stats.AddPoolStatistics(&poolStats)
	}
}

// buildStatsJson writes one JSON object per occupied slot into s.
func (m *DynamicManager) buildStatsJson(s *jwriter.ArrayState) {
	for i, pool := range m.pools {
		if pool == nil {
			continue
		}
		o := s.Object()
		o.Name("Index").Int(i)
		if m.slotNames[i] != "" {
			o.Name("Name").String(m.slotNames[i])
		}
		printPoolParameters(&o, pool)
		o.End()
	}
}
