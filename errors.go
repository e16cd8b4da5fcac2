package ordset

import "errors"

// Logical, non-fatal outcomes returned as values, never panicked.
// ErrNotFound, ErrIndexOutOfBounds and ErrMaxBucketSizeExceeded are
// raised by SortedSet and leave the set's state unchanged;
// ErrInvalidConfiguration comes from the Configuration constructors.
var (
	// ErrNotFound is returned by Remove and FindIndex when the item is absent.
	ErrNotFound = errors.New("ordset: item not found")

	// ErrIndexOutOfBounds is returned by At when the index is >= Size().
	ErrIndexOutOfBounds = errors.New("ordset: index out of bounds")

	// ErrMaxBucketSizeExceeded is returned by AppendBucket when the
	// caller-supplied slice is not strictly smaller than MaxBucketSize.
	ErrMaxBucketSizeExceeded = errors.New("ordset: append bucket exceeds max bucket size")

	// ErrInvalidConfiguration is returned by NewConfiguration when
	// MaxBucketSize is not positive.
	ErrInvalidConfiguration = errors.New("ordset: max bucket size must be positive")
)
