package ordset

// DefaultMaxBucketSize is the bucket capacity used by DefaultConfiguration.
const DefaultMaxBucketSize = 500

// Configuration is an immutable tuning record for a SortedSet.
//
// MaxBucketSize bounds how many terms a single bucket holds before it
// is split; InitialSetCapacity is a hint for how many buckets to
// reserve up front, useful when the caller knows roughly how many
// items it will insert.
type Configuration struct {
	MaxBucketSize      int
	InitialSetCapacity int
}

// DefaultConfiguration returns the library default: MaxBucketSize=500,
// InitialSetCapacity=0.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxBucketSize:      DefaultMaxBucketSize,
		InitialSetCapacity: 0,
	}
}

// NewConfiguration constructs a Configuration, rejecting a
// non-positive maxBucketSize.
func NewConfiguration(maxBucketSize, initialSetCapacity int) (Configuration, error) {
	if maxBucketSize <= 0 {
		return Configuration{}, ErrInvalidConfiguration
	}
	if initialSetCapacity < 0 {
		initialSetCapacity = 0
	}
	return Configuration{
		MaxBucketSize:      maxBucketSize,
		InitialSetCapacity: initialSetCapacity,
	}, nil
}

// ConfigurationForItemCapacity derives InitialSetCapacity from an
// expected item count:
// initial_set_capacity = initial_item_capacity / max_bucket_size + 1.
func ConfigurationForItemCapacity(initialItemCapacity, maxBucketSize int) (Configuration, error) {
	if maxBucketSize <= 0 {
		return Configuration{}, ErrInvalidConfiguration
	}
	if initialItemCapacity < 0 {
		initialItemCapacity = 0
	}
	return Configuration{
		MaxBucketSize:      maxBucketSize,
		InitialSetCapacity: initialItemCapacity/maxBucketSize + 1,
	}, nil
}
