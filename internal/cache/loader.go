package cache

import (
	"golang.org/x/sync/singleflight"

	"letteravatar/internal/metrics"
)

// Loader fronts a Cache with get-or-compute semantics. Concurrent misses on
// the same key share a single call to the producer, and a value is stored
// only when the producer succeeds.
type Loader struct {
	cache Cache
	group singleflight.Group
}

func NewLoader(c Cache) *Loader {
	return &Loader{cache: c}
}

// Get is a plain lookup, it never computes anything.
func (l *Loader) Get(key string) ([]byte, bool) {
	return l.cache.Get(key)
}

// GetOrCompute returns the cached value for key, calling produce on a miss.
func (l *Loader) GetOrCompute(key string, produce func() ([]byte, error)) ([]byte, error) {
	if value, ok := l.cache.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return value, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		// A flight for the same key may have completed between the lookup
		// above and this call.
		if value, ok := l.cache.Get(key); ok {
			return value, nil
		}

		value, err := produce()
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) Cache() Cache {
	return l.cache
}
