// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a typed LRU cache backed by golang-lru, counting hits and misses.
type LRU[K comparable, V any] struct {
	inner *lru.Cache
	stats Stats
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	inner, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{inner: inner}, nil
}

// Loader defines loader to load value.
type Loader[K comparable, V any] func(key K) (V, error)

// Get looks up key and records the lookup as a hit or miss.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.inner.Get(key); ok {
		l.stats.Hit()
		return v.(V), true
	}
	l.stats.Miss()
	var zero V
	return zero, false
}

// Add adds a value to the cache.
func (l *LRU[K, V]) Add(key K, value V) {
	l.inner.Add(key, value)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.inner.Len()
}

// Purge clears all entries.
func (l *LRU[K, V]) Purge() {
	l.inner.Purge()
}

// Stats returns hit/miss counters, see Stats.Stats.
func (l *LRU[K, V]) Stats() (bool, int64, int64) {
	return l.stats.Stats()
}

// GetOrLoad first try to get from cache, do load if missed.
// The returned bool tells whether the value came from the cache.
func (l *LRU[K, V]) GetOrLoad(key K, loader Loader[K, V]) (V, bool, error) {
	if v, ok := l.Get(key); ok {
		return v, true, nil
	}
	v, err := loader(key)
	if err != nil {
		var zero V
		return zero, false, err
	}

	l.Add(key, v)
	return v, false, nil
}
