package articles

import (
	"github.com/coocood/freecache"
)

const (
	listCacheSize      = 10 * 1024 * 1024 // 10 MB
	listCacheExpirySec = 60
)

// ListCache holds rendered public article list responses for a short
// while, so that front page traffic does not hit postgres on every
// request. Any article mutation clears it.
type ListCache struct {
	cache *freecache.Cache
}

func NewListCache() *ListCache {
	return &ListCache{
		cache: freecache.NewCache(listCacheSize),
	}
}

func (lc *ListCache) Get(key string) ([]byte, bool) {
	value, err := lc.cache.Get([]byte(key))
	if err != nil {
		// freecache returns ErrNotFound for misses and expired entries
		return nil, false
	}
	return value, true
}

func (lc *ListCache) Set(key string, value []byte) {
	// setting can fail only for oversized entries, in which case we
	// simply serve uncached
	_ = lc.cache.Set([]byte(key), value, listCacheExpirySec)
}

func (lc *ListCache) Clear() {
	lc.cache.Clear()
}
