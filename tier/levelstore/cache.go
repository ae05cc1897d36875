package levelstore

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// pageCache holds recently used pages in front of LevelDB. A cached entry
// either carries the page bytes or records that the page has no key, so
// repeated reads of never-written pages skip the database too.
type pageCache struct {
	cache      *cache.Cache
	expiration time.Duration
}

type cachedPage struct {
	absent bool
	data   []byte
}

func newPageCache(expiration time.Duration) *pageCache {
	return &pageCache{
		cache:      cache.New(expiration, 2*expiration),
		expiration: expiration,
	}
}

// get returns the cached page. found is false on a cache miss; a hit on an
// absent page returns nil data.
func (c *pageCache) get(key []byte) (data []byte, found bool) {
	obj, ok := c.cache.Get(string(key))
	if !ok {
		return nil, false
	}
	page := obj.(cachedPage)
	if page.absent {
		return nil, true
	}
	return append([]byte(nil), page.data...), true
}

// put caches a copy of data, or an absent marker when data is nil.
func (c *pageCache) put(key, data []byte) {
	if data == nil {
		c.cache.Set(string(key), cachedPage{absent: true}, c.expiration)
		return
	}
	c.cache.Set(string(key), cachedPage{data: append([]byte(nil), data...)}, c.expiration)
}

func (c *pageCache) len() int { return c.cache.ItemCount() }

func (c *pageCache) clear() { c.cache.Flush() }
