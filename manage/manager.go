package manage

import (
	"github.com/carvelabs/carve"
	"github.com/carvelabs/carve/arena"
	"golang.org/x/exp/slog"
)

// ManagerCreateInfo contains the settings for creating a Manager.
type ManagerCreateInfo struct {
	// FixedPoolSizes holds one size in bytes per fixed pool. The number of
	// entries fixes the fixed-pool count for the manager's lifetime.
	FixedPoolSizes []int
	// DynamicSlotCount is the number of dynamic pool slots. The slots begin
	// empty; populate them with CreateDynamicPool.
	DynamicSlotCount int
	// Logger is an optional logger for operation traces. When nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Manager composes one FixedManager and one DynamicManager behind a single
// interface, routing calls by pool kind. It holds no state of its own beyond
// the two sub-managers.
//
// Not safe for concurrent use without external synchronization.
type Manager struct {
	logger  *slog.Logger
	fixed   *FixedManager
	dynamic *DynamicManager
}

// New creates a Manager from the provided settings.
func New(info ManagerCreateInfo) *Manager {
	logger := info.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		logger:  logger,
		fixed:   NewFixedManager(logger, info.FixedPoolSizes...),
		dynamic: NewDynamicManager(logger, info.DynamicSlotCount),
	}
}

// Destroy releases every pool in both sub-managers.
func (m *Manager) Destroy() {
	m.logger.Debug("Manager::Destroy")

	m.fixed.Destroy()
	m.dynamic.Destroy()
}

// FixedPool returns the fixed pool at index. An out-of-range index is a
// caller error: it panics in debug_carve builds and returns nil otherwise.
func (m *Manager) FixedPool(index int) *arena.Pool {
	return m.fixed.Pool(index)
}

// ResetFixedPool resets the fixed pool at index.
func (m *Manager) ResetFixedPool(index int) {
	m.fixed.ResetPool(index)
}

// ResetAllFixed resets every fixed pool.
func (m *Manager) ResetAllFixed() {
	m.fixed.ResetAll()
}

// FixedCapacity returns the number of fixed pool slots.
func (m *Manager) FixedCapacity() int {
	return m.fixed.PoolCount()
}

// CreateDynamicPool allocates a new pool in the dynamic slot at index,
// returning true on success. See DynamicManager.CreatePool for the failure
// contract.
func (m *Manager) CreateDynamicPool(index int, poolSize int) bool {
	return m.dynamic.CreatePool(index, poolSize)
}

// CreateNamedDynamicPool allocates a new named pool in the dynamic slot at
// index, returning true on success.
func (m *Manager) CreateNamedDynamicPool(index int, name string, poolSize int) bool {
	return m.dynamic.CreateNamedPool(index, name, poolSize)
}

// DeleteDynamicPool destroys the dynamic pool at index. Safe no-op if the
// slot is empty.
func (m *Manager) DeleteDynamicPool(index int) {
	m.dynamic.DeletePool(index)
}

// DynamicPool returns the dynamic pool at index. An out-of-range index or
// an empty slot is a caller error: it panics in debug_carve builds and
// returns nil otherwise.
func (m *Manager) DynamicPool(index int) *arena.Pool {
	return m.dynamic.Pool(index)
}

// DynamicPoolExists reports whether a pool occupies the dynamic slot at
// index. Never panics.
func (m *Manager) DynamicPoolExists(index int) bool {
	return m.dynamic.PoolExists(index)
}

// FindDynamicPool returns the dynamic pool registered under name, if any.
func (m *Manager) FindDynamicPool(name string) (pool *arena.Pool, index int, found bool) {
	return m.dynamic.FindPool(name)
}

// SwapDynamicPools exchanges two dynamic slots, occupancy and all.
func (m *Manager) SwapDynamicPools(indexA, indexB int) {
	m.dynamic.SwapPools(indexA, indexB)
}

// ResetDynamicPool resets the dynamic pool at index.
func (m *Manager) ResetDynamicPool(index int) {
	m.dynamic.ResetPool(index)
}

// ResetAllDynamic resets every occupied dynamic slot, skipping empty ones.
func (m *Manager) ResetAllDynamic() {
	m.dynamic.ResetAll()
}

// DynamicCapacity returns the number of dynamic pool slots.
func (m *Manager) DynamicCapacity() int {
	return m.dynamic.MaxPoolCount()
}

// ActiveDynamicCount returns the number of occupied dynamic slots.
func (m *Manager) ActiveDynamicCount() int {
	return m.dynamic.ActivePoolCount()
}

// ResetAll resets every pool in both sub-managers.
func (m *Manager) ResetAll() {
	m.logger.Debug("Manager::ResetAll")

	m.fixed.ResetAll()
	m.dynamic.ResetAll()
}

// CalculateStatistics aggregates capacity and usage over every pool in both
// sub-managers.
func (m *Manager) CalculateStatistics() carve.Statistics {
	var stats carve.Statistics
	stats.Clear()
	m.fixed.AddStatistics(&stats)
	m.dynamic.AddStatistics(&stats)
	return stats
}
