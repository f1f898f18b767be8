package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/auctionlaunch/auctiond/internal/bank"
	"github.com/auctionlaunch/auctiond/internal/cache"
	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/types"
	"github.com/auctionlaunch/auctiond/internal/storage/auctionstore"
	"github.com/auctionlaunch/auctiond/internal/storage/history"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb"
)

// Engine is the auction lifecycle orchestrator. It applies one
// operation at a time against the registry: every handler stages all
// of its state mutations and transfer instructions first, runs the
// transfers through the bank and only then writes the batch, so no
// failure path leaves a partial write behind.
type Engine struct {
	mu sync.Mutex

	store   *auctionstore.Store
	bank    bank.Bank
	history history.Recorder
	cache   *cache.AuctionCache
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistory enables best-effort operation history recording.
func WithHistory(rec history.Recorder) Option {
	return func(e *Engine) { e.history = rec }
}

// WithCache enables the read-through auction cache.
func WithCache(c *cache.AuctionCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine on a registry and a transfer executor.
func New(store *auctionstore.Store, b bank.Bank, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		bank:    b,
		history: history.Nop{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RestoreCustody re-deposits the undelivered offered assets of every
// stored auction into the bank. The registry is durable while the bank
// custody is in-process state, so a restarted daemon must rebuild it
// before serving operations.
func (e *Engine) RestoreCustody(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	restored := 0
	err := e.store.ForEachAuction(ctx, func(entry auctionstore.Entry) error {
		remaining := types.NewCoins(types.NewCoin(entry.Auction.OfferedAsset.Denom, entry.Auction.RemainingAmount))
		if len(remaining) == 0 {
			return nil
		}
		if err := e.bank.Deposit(ctx, remaining); err != nil {
			return fmt.Errorf("restore custody for auction %d: %w", entry.ID, err)
		}
		restored++
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Info().Int("auctions", restored).Msg("custody restored")
	return nil
}

// Apply executes one operation. Operations are serialized; each either
// fully commits (state mutations plus transfers) or fails with no
// durable effect.
func (e *Engine) Apply(ctx context.Context, op OpContext, msg Msg) (*Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch m := msg.(type) {
	case MsgCreateAuction:
		return e.createAuction(ctx, op, m)
	case MsgBid:
		return e.bid(ctx, op, m)
	case MsgCancelAuction:
		return e.cancelAuction(ctx, op, m)
	case MsgChangeParams:
		return e.changeParams(ctx, op, m)
	default:
		return nil, fmt.Errorf("unknown message type %T", msg)
	}
}

func (e *Engine) createAuction(ctx context.Context, op OpContext, m MsgCreateAuction) (*Response, error) {
	params, err := e.store.Params(ctx)
	if err != nil {
		return nil, err
	}

	if !m.OfferedAsset.IsValid() || !m.OfferedAsset.IsPositive() {
		return nil, fmt.Errorf("%w: offered asset %s must be positive",
			auction.ErrInvalidFunds, m.OfferedAsset)
	}

	// Attached funds must exactly cover the creation fee and the
	// offered asset, nothing more and nothing less.
	expected := types.NewCoins(params.AuctionCreationFee, m.OfferedAsset)
	if !op.Funds.Equal(expected) {
		return nil, fmt.Errorf("%w: attached %s, expected %s",
			auction.ErrInvalidFunds, op.Funds.Normalize(), expected)
	}

	a := auction.New(op.Sender, m.OfferedAsset, m.InDenom, m.StartingPrice, m.EndPrice, m.StartTime, m.EndTime)
	if err := a.Validate(op.Now, params); err != nil {
		return nil, err
	}

	id, counterOp, err := e.store.AllocateID(ctx)
	if err != nil {
		return nil, err
	}
	putOp, err := e.store.PutAuctionOp(id, a)
	if err != nil {
		return nil, err
	}

	feeTransfer := bank.Transfer{To: params.Admin, Amount: params.AuctionCreationFee}
	if err := e.commit(ctx, op.Funds, []keyValueDb.BatchOperation{counterOp, putOp}, []bank.Transfer{feeTransfer}); err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Put(id, a)
	}

	e.record(ctx, history.Record{
		Operation: m.Action(),
		AuctionID: id,
		Actor:     op.Sender,
		Denom:     a.OfferedAsset.Denom,
		Amount:    a.OfferedAsset.Amount.String(),
		Price:     a.StartingPrice.String(),
		At:        op.Now,
	})

	e.log.Info().
		Uint64("auction_id", id).
		Str("creator", op.Sender).
		Str("offered", a.OfferedAsset.String()).
		Msg("auction created")

	resp := &Response{}
	resp.addAttribute("action", m.Action()).
		addAttribute("auction_id", strconv.FormatUint(id, 10)).
		addAttribute("creator", op.Sender).
		addAttribute("offered_asset_denom", a.OfferedAsset.Denom).
		addAttribute("offered_asset_amount", a.OfferedAsset.Amount.String()).
		addTransfer(feeTransfer)
	return resp, nil
}

func (e *Engine) bid(ctx context.Context, op OpContext, m MsgBid) (*Response, error) {
	a, err := e.store.Auction(ctx, m.AuctionID)
	if err != nil {
		return nil, err
	}

	if !a.IsActive(op.Now) {
		return nil, fmt.Errorf("%w: id %d at %s", auction.ErrAuctionNotActive, m.AuctionID, op.Now.UTC())
	}

	price := a.PriceAt(op.Now)

	paid, err := types.MustPay(op.Funds, a.InDenom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auction.ErrInvalidFunds, err)
	}

	// Settlement is payment-driven: the payment converts at the
	// prevailing price and the result is floored, so the bidder bears
	// the rounding remainder.
	acquired := price.MulInt(paid).TruncateInt()
	if acquired.IsZero() {
		return nil, fmt.Errorf("%w: paid %s%s at price %s", auction.ErrBidTooSmall, paid, a.InDenom, price)
	}
	if acquired.GT(a.RemainingAmount) {
		return nil, fmt.Errorf("%w: requested %s, remaining %s",
			auction.ErrInsufficientRemainingAmount, acquired, a.RemainingAmount)
	}

	a.RemainingAmount = a.RemainingAmount.Sub(acquired)
	putOp, err := e.store.PutAuctionOp(m.AuctionID, a)
	if err != nil {
		return nil, err
	}

	acquiredCoin := types.NewCoin(a.OfferedAsset.Denom, acquired)
	assetTransfer := bank.Transfer{To: op.Sender, Amount: acquiredCoin}
	if err := e.commit(ctx, op.Funds, []keyValueDb.BatchOperation{putOp}, []bank.Transfer{assetTransfer}); err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Put(m.AuctionID, a)
	}

	e.record(ctx, history.Record{
		Operation: m.Action(),
		AuctionID: m.AuctionID,
		Actor:     op.Sender,
		Denom:     acquiredCoin.Denom,
		Amount:    acquired.String(),
		Price:     price.String(),
		At:        op.Now,
	})

	e.log.Info().
		Uint64("auction_id", m.AuctionID).
		Str("bidder", op.Sender).
		Str("paid", paid.String()+a.InDenom).
		Str("acquired", acquiredCoin.String()).
		Msg("bid filled")

	resp := &Response{}
	resp.addAttribute("action", m.Action()).
		addAttribute("auction_id", strconv.FormatUint(m.AuctionID, 10)).
		addAttribute("bidder", op.Sender).
		addAttribute("amount", paid.String()).
		addAttribute("acquired_asset_denom", acquiredCoin.Denom).
		addAttribute("acquired_asset_amount", acquired.String()).
		addTransfer(assetTransfer)
	return resp, nil
}

func (e *Engine) cancelAuction(ctx context.Context, op OpContext, m MsgCancelAuction) (*Response, error) {
	a, err := e.store.Auction(ctx, m.AuctionID)
	if err != nil {
		return nil, err
	}

	if op.Sender != a.Creator {
		return nil, fmt.Errorf("%w: only the creator may cancel auction %d", auction.ErrUnauthorized, m.AuctionID)
	}
	if a.IsStarted(op.Now) {
		return nil, fmt.Errorf("%w: id %d started at %s", auction.ErrAuctionCannotBeCanceled, m.AuctionID, a.StartTime.UTC())
	}

	// The offered asset has been in custody since creation; cancelling
	// returns it to the creator along with removing the entry.
	refund := bank.Transfer{To: a.Creator, Amount: types.NewCoin(a.OfferedAsset.Denom, a.RemainingAmount)}
	deleteOp := e.store.DeleteAuctionOp(m.AuctionID)
	if err := e.commit(ctx, nil, []keyValueDb.BatchOperation{deleteOp}, []bank.Transfer{refund}); err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Invalidate(m.AuctionID)
	}

	e.record(ctx, history.Record{
		Operation: m.Action(),
		AuctionID: m.AuctionID,
		Actor:     op.Sender,
		Denom:     a.OfferedAsset.Denom,
		Amount:    a.RemainingAmount.String(),
		Price:     "",
		At:        op.Now,
	})

	e.log.Info().
		Uint64("auction_id", m.AuctionID).
		Str("creator", op.Sender).
		Msg("auction canceled")

	resp := &Response{}
	resp.addAttribute("action", m.Action()).
		addAttribute("auction_id", strconv.FormatUint(m.AuctionID, 10)).
		addTransfer(refund)
	return resp, nil
}

func (e *Engine) changeParams(ctx context.Context, op OpContext, m MsgChangeParams) (*Response, error) {
	params, err := e.store.Params(ctx)
	if err != nil {
		return nil, err
	}

	if op.Sender != params.Admin {
		return nil, fmt.Errorf("%w: only the admin may change params", auction.ErrUnauthorized)
	}

	updated := params.Apply(m.Update)
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	setOp, err := e.store.SetParamsOp(updated)
	if err != nil {
		return nil, err
	}
	if err := e.commit(ctx, nil, []keyValueDb.BatchOperation{setOp}, nil); err != nil {
		return nil, err
	}

	e.log.Info().Str("admin", op.Sender).Msg("params changed")

	resp := &Response{}
	resp.addAttribute("action", m.Action())
	return resp, nil
}

// commit runs the staged value movements and makes the staged mutations
// durable. The batch is written only once the bank has accepted the
// deposit and every transfer, so a rejected transfer leaves the stored
// state untouched.
func (e *Engine) commit(ctx context.Context, deposit types.Coins, ops []keyValueDb.BatchOperation, transfers []bank.Transfer) error {
	if len(deposit) > 0 || len(transfers) > 0 {
		if err := e.bank.Execute(ctx, deposit, transfers); err != nil {
			return fmt.Errorf("execute transfers: %w", err)
		}
	}
	if err := e.store.Apply(ctx, ops); err != nil {
		return fmt.Errorf("commit state: %w", err)
	}
	return nil
}

func (e *Engine) record(ctx context.Context, r history.Record) {
	if err := e.history.Record(ctx, r); err != nil {
		e.log.Warn().Err(err).Str("operation", r.Operation).Msg("history record failed")
	}
}

// Auction returns a single auction, read through the cache when one is
// configured.
func (e *Engine) Auction(ctx context.Context, id uint64) (auction.Auction, error) {
	if e.cache != nil {
		if a, ok := e.cache.Get(id); ok {
			return a, nil
		}
	}
	a, err := e.store.Auction(ctx, id)
	if err != nil {
		return auction.Auction{}, err
	}
	if e.cache != nil {
		e.cache.Put(id, a)
	}
	return a, nil
}

// Auctions returns a page of auctions in ascending id order.
func (e *Engine) Auctions(ctx context.Context, startAfter *uint64, limit *uint32) ([]auctionstore.Entry, error) {
	return e.store.Auctions(ctx, startAfter, limit)
}

// Params returns the current global params.
func (e *Engine) Params(ctx context.Context) (auction.Params, error) {
	return e.store.Params(ctx)
}
