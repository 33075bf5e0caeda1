package cache

import "errors"

// Failure kinds surfaced by the cache. Per-pointer failures are swallowed
// during reconstruction; these sentinels classify the ones that reach
// callers or logs.
var (
	// ErrSerialization indicates an encode, decode, compress, or
	// decompress failure. On load it is treated as a cache miss.
	ErrSerialization = errors.New("cache serialization failure")

	// ErrSecurityViolation indicates a pointer path that resolves outside
	// the repository root. The pointer is dropped without reading the file.
	ErrSecurityViolation = errors.New("pointer path escapes repository root")

	// ErrCacheDir indicates the cache directory could not be created or
	// enumerated. Unlike per-pointer failures this propagates.
	ErrCacheDir = errors.New("cache directory unavailable")
)
