package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
)

// AuctionCache provides fast access to recently queried auctions.
// Writers must invalidate an id whenever they touch it.
type AuctionCache struct {
	mu sync.RWMutex

	recent *lru.Cache[uint64, auction.Auction]

	// Metrics
	hits   uint64
	misses uint64
}

// DefaultSize is the number of auctions kept in memory when no size is
// configured.
const DefaultSize = 256

// New creates a cache holding up to size auctions.
func New(size int) (*AuctionCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[uint64, auction.Auction](size)
	if err != nil {
		return nil, err
	}
	return &AuctionCache{recent: c}, nil
}

// Get returns the cached auction for an id, if present.
func (c *AuctionCache) Get(id uint64) (auction.Auction, bool) {
	a, ok := c.recent.Get(id)

	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	return a, ok
}

// Put stores an auction under its id.
func (c *AuctionCache) Put(id uint64, a auction.Auction) {
	c.recent.Add(id, a)
}

// Invalidate drops an id from the cache.
func (c *AuctionCache) Invalidate(id uint64) {
	c.recent.Remove(id)
}

// Stats returns hit/miss counters.
func (c *AuctionCache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
