package ordset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	require.Equal(t, 500, cfg.MaxBucketSize)
	require.Equal(t, 0, cfg.InitialSetCapacity)
}

func TestNewConfigurationRejectsZeroMaxBucketSize(t *testing.T) {
	_, err := NewConfiguration(0, 10)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewConfigurationNegativeInitialCapacityClampsToZero(t *testing.T) {
	cfg, err := NewConfiguration(10, -5)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.InitialSetCapacity)
}

func TestConfigurationForItemCapacityDerivation(t *testing.T) {
	cfg, err := ConfigurationForItemCapacity(1200, 500)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.InitialSetCapacity) // 1200/500 + 1
}

func TestEmptyPanicsOnZeroMaxBucketSize(t *testing.T) {
	require.Panics(t, func() {
		Empty(Configuration{MaxBucketSize: 0})
	})
}
