package detection

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// DefaultCacheSize matches the bounded memoization size used for repeated inputs.
const DefaultCacheSize = 256

type cacheKey struct {
	sum    uint64
	length int
	ctx    piiDomain.Context
}

type cacheEntry struct {
	text string
	set  piiDomain.ResolvedMatchSet
}

// Cache is a bounded LRU of detection results keyed by input digest and context.
// Entries keep the input so a digest collision is never served. Safe for concurrent use.
type Cache struct {
	lru *lru.Cache[cacheKey, cacheEntry]
}

// NewCache creates a cache holding at most size results. A non-positive size
// returns nil, which Engine treats as caching disabled.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

func keyFor(text string, ctx piiDomain.Context) cacheKey {
	return cacheKey{sum: xxhash.Sum64String(text), length: len(text), ctx: ctx}
}

func (c *Cache) get(text string, ctx piiDomain.Context) (piiDomain.ResolvedMatchSet, bool) {
	entry, ok := c.lru.Get(keyFor(text, ctx))
	if !ok || entry.text != text {
		return piiDomain.ResolvedMatchSet{}, false
	}
	return entry.set.Clone(), true
}

func (c *Cache) add(text string, ctx piiDomain.Context, set piiDomain.ResolvedMatchSet) {
	c.lru.Add(keyFor(text, ctx), cacheEntry{text: text, set: set.Clone()})
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge removes every cached result.
func (c *Cache) Purge() {
	c.lru.Purge()
}
