package cache

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/types"
)

func sampleAuction(creator string) auction.Auction {
	return auction.New(
		creator,
		types.NewInt64Coin("uatom", 1000),
		"uusd",
		sdkmath.LegacyNewDec(100),
		sdkmath.LegacyNewDec(10),
		time.Unix(1000, 0).UTC(),
		time.Unix(2000, 0).UTC(),
	)
}

func TestCachePutGetInvalidate(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := c.Get(1); ok {
		t.Error("empty cache should miss")
	}

	c.Put(1, sampleAuction("alice"))
	got, ok := c.Get(1)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.Creator != "alice" {
		t.Errorf("creator = %s, want alice", got.Creator)
	}

	c.Invalidate(1)
	if _, ok := c.Get(1); ok {
		t.Error("expected miss after Invalidate")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("stats = %d hits, %d misses; want 1, 2", hits, misses)
	}
}

func TestCacheEviction(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.Put(1, sampleAuction("a"))
	c.Put(2, sampleAuction("b"))
	c.Put(3, sampleAuction("c"))

	if _, ok := c.Get(1); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("newest entry should be present")
	}
}
