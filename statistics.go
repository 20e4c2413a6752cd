package carve

// PoolStatistics describes the capacity and usage of a single pool.
type PoolStatistics struct {
	CapacityBytes int
	UsedBytes     int
	MaxUsedBytes  int
}

func (s *PoolStatistics) Clear() {
	s.CapacityBytes = 0
	s.UsedBytes = 0
	s.MaxUsedBytes = 0
}

// Statistics aggregates capacity and usage over a set of pools.
type Statistics struct {
	PoolCount     int
	CapacityBytes int
	UsedBytes     int
}

func (s *Statistics) Clear() {
	s.PoolCount = 0
	s.CapacityBytes = 0
	s.UsedBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.PoolCount += other.PoolCount
	s.CapacityBytes += other.CapacityBytes
	s.UsedBytes += other.UsedBytes
}

func (s *Statistics) AddPoolStatistics(other *PoolStatistics) {
	s.PoolCount++
	s.CapacityBytes += other.CapacityBytes
	s.UsedBytes += other.UsedBytes
}
