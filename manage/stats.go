package manage

import (
	"github.com/carvelabs/carve/arena"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// printPoolParameters writes one pool's capacity and usage fields into json.
func printPoolParameters(json *jwriter.ObjectState, pool *arena.Pool) {
	json.Name("CapacityBytes").Int(pool.Size())
	json.Name("UsedBytes").Int(pool.BytesUsed())
	json.Name("MaxUsedBytes").Int(pool.MaxBytesUsed())
	json.Name("RemainingBytes").Int(pool.RemainingBytes())
}

// BuildStatsString builds a JSON string documenting the current usage of
// every pool in both sub-managers, suitable for logging or offline
// inspection. When detailed is true, a per-pool breakdown is included
// alongside the aggregate totals.
func (m *Manager) BuildStatsString(detailed bool) string {
	writer := jwriter.NewWriter()

	obj := writer.Object()

	stats := m.CalculateStatistics()
	general := obj.Name("General").Object()
	general.Name("PoolCount").Int(stats.PoolCount)
	general.Name("CapacityBytes").Int(stats.CapacityBytes)
	general.Name("UsedBytes").Int(stats.UsedBytes)
	general.End()

	if detailed {
		fixedArray := obj.Name("FixedPools").Array()
		m.fixed.buildStatsJson(&fixedArray)
		fixedArray.End()

		dynamicObj := obj.Name("DynamicPools").Object()
		dynamicObj.Name("SlotCount").Int(m.dynamic.MaxPoolCount())
		dynamicObj.Name("ActiveCount").Int(m.dynamic.ActivePoolCount())
		slotArray := dynamicObj.Name("Slots").Array()
		m.dynamic.buildStatsJson(&slotArray)
		slotArray.End()
		dynamicObj.End()
	}

	obj.End()

	return string(writer.Bytes())
}
