package cache

// Cache stores encoded avatars by cache key. Returned slices are shared with
// the cache and must not be modified.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Has(key string) bool // Check if the key exists without reading it (lightweight check)
}
