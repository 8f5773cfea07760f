package cache

import "errors"

// Sentinel errors for cache operations. These stay inside the cache
// boundary: Store methods degrade to misses or no-ops instead of
// propagating transport failures to callers.
var (
	// ErrKeyNotFound is returned when a cache key doesn't exist (not an error condition)
	ErrKeyNotFound = errors.New("cache key not found")

	// ErrCacheDisabled is returned when attempting operations on a disabled cache
	ErrCacheDisabled = errors.New("cache is disabled")

	// ErrConnectionFailed is returned when the distributed backend cannot be reached
	ErrConnectionFailed = errors.New("cache connection failed")

	// ErrSerializationFailed is returned when encoding/decoding a cached value fails
	ErrSerializationFailed = errors.New("cache serialization failed")
)

// IsKeyNotFound checks if an error is ErrKeyNotFound
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// IsConnectionFailed checks if an error is ErrConnectionFailed
func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}
