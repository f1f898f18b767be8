package auctionstore

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/storage/compression"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb"
)

const (
	// DefaultPageLimit is the page size used when a query supplies none.
	DefaultPageLimit uint32 = 10
	// MaxPageLimit is the hard page-size cap; larger requests are clamped.
	MaxPageLimit uint32 = 30
)

// ErrAlreadyInitialized is returned when genesis runs against a store
// that already holds a params record.
var ErrAlreadyInitialized = errors.New("store is already initialized")

// Store is the auction registry: the auctions region, the identifier
// counter and the params singleton, all on one keyValueDb. Reads are
// direct; writes are staged as batch operations so an operation commits
// all of its mutations atomically (or none).
type Store struct {
	db           keyValueDb.DB
	comp         compression.Compressor
	defaultLimit uint32
	maxLimit     uint32
}

// Option configures a Store.
type Option func(*Store)

// WithCompressor sets the value compressor for stored records.
func WithCompressor(c compression.Compressor) Option {
	return func(s *Store) { s.comp = c }
}

// WithPageLimits overrides the default and maximum page sizes.
func WithPageLimits(def, max uint32) Option {
	return func(s *Store) {
		if def > 0 {
			s.defaultLimit = def
		}
		if max > 0 {
			s.maxLimit = max
		}
	}
}

// New creates a Store on the given keyValueDb.
func New(db keyValueDb.DB, opts ...Option) *Store {
	s := &Store{
		db:           db,
		comp:         &compression.NoCompressor{},
		defaultLimit: DefaultPageLimit,
		maxLimit:     MaxPageLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entry pairs an auction with its registry identifier.
type Entry struct {
	ID      uint64
	Auction auction.Auction
}

// InitGenesis writes the initial params record and a zero counter.
// It refuses to run twice.
func (s *Store) InitGenesis(ctx context.Context, p auction.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if _, err := s.db.Read(ctx, paramsKey); err == nil {
		return ErrAlreadyInitialized
	} else if !errors.Is(err, keyValueDb.ErrKeyNotFound) {
		return fmt.Errorf("read params: %w", err)
	}

	paramsOp, err := s.SetParamsOp(p)
	if err != nil {
		return err
	}
	return s.db.Batch(ctx, []keyValueDb.BatchOperation{
		paramsOp,
		{Type: keyValueDb.BatchPut, Key: counterKey, Value: encodeCounter(0)},
	})
}

// Params loads the global params record.
func (s *Store) Params(ctx context.Context) (auction.Params, error) {
	data, err := s.db.Read(ctx, paramsKey)
	if err != nil {
		if errors.Is(err, keyValueDb.ErrKeyNotFound) {
			return auction.Params{}, fmt.Errorf("params not initialized: %w", err)
		}
		return auction.Params{}, fmt.Errorf("read params: %w", err)
	}

	payload, err := compression.Decode(data)
	if err != nil {
		return auction.Params{}, err
	}
	return unmarshalParams(payload)
}

// SetParamsOp stages a params overwrite.
func (s *Store) SetParamsOp(p auction.Params) (keyValueDb.BatchOperation, error) {
	payload, err := marshalParams(p)
	if err != nil {
		return keyValueDb.BatchOperation{}, err
	}
	value, err := compression.Encode(s.comp, payload)
	if err != nil {
		return keyValueDb.BatchOperation{}, err
	}
	return keyValueDb.BatchOperation{Type: keyValueDb.BatchPut, Key: paramsKey, Value: value}, nil
}

// Counter returns the last allocated identifier; zero when none has
// been allocated yet.
func (s *Store) Counter(ctx context.Context) (uint64, error) {
	data, err := s.db.Read(ctx, counterKey)
	if err != nil {
		if errors.Is(err, keyValueDb.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("read auction counter: %w", err)
	}
	return decodeCounter(data), nil
}

// AllocateID returns the next identifier and the staged counter write.
// The counter strictly increases; when the identifier space is spent
// the allocation fails instead of wrapping.
func (s *Store) AllocateID(ctx context.Context) (uint64, keyValueDb.BatchOperation, error) {
	current, err := s.Counter(ctx)
	if err != nil {
		return 0, keyValueDb.BatchOperation{}, err
	}
	if current == math.MaxUint64 {
		return 0, keyValueDb.BatchOperation{}, auction.ErrIDSpaceExhausted
	}

	next := current + 1
	op := keyValueDb.BatchOperation{Type: keyValueDb.BatchPut, Key: counterKey, Value: encodeCounter(next)}
	return next, op, nil
}

// Auction loads a single auction by id.
func (s *Store) Auction(ctx context.Context, id uint64) (auction.Auction, error) {
	data, err := s.db.Read(ctx, auctionKey(id))
	if err != nil {
		if errors.Is(err, keyValueDb.ErrKeyNotFound) {
			return auction.Auction{}, fmt.Errorf("%w: id %d", auction.ErrAuctionNotFound, id)
		}
		return auction.Auction{}, fmt.Errorf("read auction %d: %w", id, err)
	}

	payload, err := compression.Decode(data)
	if err != nil {
		return auction.Auction{}, err
	}
	return unmarshalAuction(payload)
}

// PutAuctionOp stages an auction write.
func (s *Store) PutAuctionOp(id uint64, a auction.Auction) (keyValueDb.BatchOperation, error) {
	payload, err := marshalAuction(a)
	if err != nil {
		return keyValueDb.BatchOperation{}, err
	}
	value, err := compression.Encode(s.comp, payload)
	if err != nil {
		return keyValueDb.BatchOperation{}, err
	}
	return keyValueDb.BatchOperation{Type: keyValueDb.BatchPut, Key: auctionKey(id), Value: value}, nil
}

// DeleteAuctionOp stages an auction removal.
func (s *Store) DeleteAuctionOp(id uint64) keyValueDb.BatchOperation {
	return keyValueDb.BatchOperation{Type: keyValueDb.BatchDelete, Key: auctionKey(id)}
}

// Auctions scans the registry in ascending id order. startAfter is an
// exclusive cursor; limit defaults and clamps to the configured page
// sizes, never rejecting an oversized request.
func (s *Store) Auctions(ctx context.Context, startAfter *uint64, limit *uint32) ([]Entry, error) {
	pageSize := s.defaultLimit
	if limit != nil && *limit > 0 {
		pageSize = *limit
	}
	if pageSize > s.maxLimit {
		pageSize = s.maxLimit
	}

	start := auctionKey(0)
	if startAfter != nil {
		if *startAfter == math.MaxUint64 {
			return []Entry{}, nil
		}
		start = auctionKey(*startAfter + 1)
	}

	it, err := s.db.Iterator(ctx, start, auctionKeyEnd())
	if err != nil {
		return nil, fmt.Errorf("iterate auctions: %w", err)
	}
	defer it.Close()

	entries := make([]Entry, 0, pageSize)
	for it.Next() {
		if uint32(len(entries)) >= pageSize {
			break
		}
		payload, err := compression.Decode(it.Value())
		if err != nil {
			return nil, err
		}
		a, err := unmarshalAuction(payload)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: auctionIDFromKey(it.Key()), Auction: a})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate auctions: %w", err)
	}
	return entries, nil
}

// ForEachAuction walks the whole registry in ascending id order,
// calling fn for every entry. A non-nil error from fn stops the walk
// and is returned.
func (s *Store) ForEachAuction(ctx context.Context, fn func(Entry) error) error {
	it, err := s.db.Iterator(ctx, auctionKey(0), auctionKeyEnd())
	if err != nil {
		return fmt.Errorf("iterate auctions: %w", err)
	}
	defer it.Close()

	for it.Next() {
		payload, err := compression.Decode(it.Value())
		if err != nil {
			return err
		}
		a, err := unmarshalAuction(payload)
		if err != nil {
			return err
		}
		if err := fn(Entry{ID: auctionIDFromKey(it.Key()), Auction: a}); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("iterate auctions: %w", err)
	}
	return nil
}

// Apply commits staged operations as one atomic batch.
func (s *Store) Apply(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	if len(ops) == 0 {
		return nil
	}
	return s.db.Batch(ctx, ops)
}
