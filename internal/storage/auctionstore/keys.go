package auctionstore

import "encoding/binary"

// Storage regions. Auction keys are the prefix plus the big-endian id
// so that byte-order iteration is ascending id order.
var (
	auctionKeyPrefix = []byte("auctions/")
	counterKey       = []byte("auction_index")
	paramsKey        = []byte("params")
)

func auctionKey(id uint64) []byte {
	key := make([]byte, len(auctionKeyPrefix)+8)
	copy(key, auctionKeyPrefix)
	binary.BigEndian.PutUint64(key[len(auctionKeyPrefix):], id)
	return key
}

func auctionIDFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(auctionKeyPrefix):])
}

// auctionKeyEnd is the exclusive upper bound of the auctions region.
func auctionKeyEnd() []byte {
	end := make([]byte, len(auctionKeyPrefix))
	copy(end, auctionKeyPrefix)
	end[len(end)-1]++
	return end
}

func encodeCounter(n uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}

func decodeCounter(data []byte) uint64 {
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}
