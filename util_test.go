package carve_test

import (
	"testing"

	"github.com/carvelabs/carve"
	"github.com/stretchr/testify/require"
)

func TestCheckPow2(t *testing.T) {
	require.NoError(t, carve.CheckPow2(1, "value"))
	require.NoError(t, carve.CheckPow2(2, "value"))
	require.NoError(t, carve.CheckPow2(4096, "value"))

	err := carve.CheckPow2(0, "value")
	require.Error(t, err)
	require.ErrorIs(t, err, carve.PowerOfTwoError)

	err = carve.CheckPow2(24, "value")
	require.Error(t, err)
	require.ErrorIs(t, err, carve.PowerOfTwoError)
}

func TestAlignUp(t *testing.T) {
	require.Equal(t, 0, carve.AlignUp(0, 8))
	require.Equal(t, 8, carve.AlignUp(1, 8))
	require.Equal(t, 8, carve.AlignUp(8, 8))
	require.Equal(t, 16, carve.AlignUp(9, 8))
	require.Equal(t, 256, carve.AlignUp(129, 128))
}

func TestAlignDown(t *testing.T) {
	require.Equal(t, 0, carve.AlignDown(7, 8))
	require.Equal(t, 8, carve.AlignDown(8, 8))
	require.Equal(t, 8, carve.AlignDown(15, 8))
	require.Equal(t, 128, carve.AlignDown(255, 128))
}

func TestUnits(t *testing.T) {
	require.Equal(t, 1024, carve.KBToBytes(1))
	require.Equal(t, 4*1024*1024, carve.MBToBytes(4))
	require.Equal(t, 2*1024*1024*1024, carve.GBToBytes(2))
}

func TestStatisticsAggregation(t *testing.T) {
	var total carve.Statistics
	total.Clear()

	poolStats := carve.PoolStatistics{
		CapacityBytes: 1024,
		UsedBytes:     128,
		MaxUsedBytes:  512,
	}
	total.AddPoolStatistics(&poolStats)
	total.AddPoolStatistics(&poolStats)

	require.Equal(t, carve.Statistics{
		PoolCount:     2,
		CapacityBytes: 2048,
		UsedBytes:     256,
	}, total)

	var other carve.Statistics
	other.AddStatistics(&total)
	require.Equal(t, total, other)
}
