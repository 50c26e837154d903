package web

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed size ring of encoded frames, keyed by the hash
// of their encoding. Clients mirror the ring, so that a repeated
// frame is sent as its index alone.
type cache struct {
	cache []*cacheEntry
	idx   int
	size  int
	sync.RWMutex
}

func newCache(size int) *cache {
	c := &cache{
		cache: make([]*cacheEntry, size),
		size:  size,
	}
	for i := 0; i < size; i++ {
		c.cache[i] = &cacheEntry{}
	}

	return c
}

// add stores data in the next slot of the ring, returning the
// index it was stored at.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.cache[i].data = data
	c.cache[i].hash = hash

	c.idx = (c.idx + 1) % c.size
	return i
}

// index returns the index of hash, or -1 if it is not cached.
func (c *cache) index(hash uint64) int {
	for i, e := range c.cache {
		if len(e.data) > 0 && e.hash == hash {
			return i
		}
	}

	return -1
}
