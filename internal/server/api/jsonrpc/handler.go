package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/auctionlaunch/auctiond/internal/core/engine"
)

// ErrMethodNotFound reports an unregistered method name.
type ErrMethodNotFound struct {
	Method string
}

func (e ErrMethodNotFound) Error() string {
	return fmt.Sprintf("method %s not found", e.Method)
}

// ErrBadParams reports a request body that could not be decoded into
// the method's parameter shape.
type ErrBadParams struct {
	err error
}

func (e ErrBadParams) Error() string { return "invalid params: " + e.err.Error() }
func (e ErrBadParams) Unwrap() error { return e.err }

// AuctionHandler dispatches auction JSON-RPC methods to the engine.
type AuctionHandler struct {
	engine  *engine.Engine
	now     func() time.Time
	methods map[string]func(context.Context, json.RawMessage) (interface{}, error)
}

// NewAuctionHandler initializes a handler over an engine.
func NewAuctionHandler(e *engine.Engine) *AuctionHandler {
	h := &AuctionHandler{
		engine: e,
		now:    time.Now,
	}
	h.methods = map[string]func(context.Context, json.RawMessage) (interface{}, error){
		"create_auction": h.handleCreateAuction,
		"bid":            h.handleBid,
		"cancel_auction": h.handleCancelAuction,
		"change_params":  h.handleChangeParams,
		"auction":        h.handleAuction,
		"auctions":       h.handleAuctions,
		"params":         h.handleParams,
	}
	return h
}

// Handle dispatches a method call to the matching handler.
func (h *AuctionHandler) Handle(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	handler, exists := h.methods[method]
	if !exists {
		return nil, ErrMethodNotFound{Method: method}
	}
	return handler(ctx, params)
}

func decodeParams[T any](params json.RawMessage) (T, error) {
	var out T
	if len(params) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(params, &out); err != nil {
		return out, ErrBadParams{err: err}
	}
	return out, nil
}

func (h *AuctionHandler) handleCreateAuction(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := decodeParams[CreateAuctionParams](params)
	if err != nil {
		return nil, err
	}

	offered, err := coinFromJSON(p.OfferedAsset)
	if err != nil {
		return nil, fmt.Errorf("invalid offered_asset: %w", err)
	}
	funds, err := coinsFromJSON(p.Funds)
	if err != nil {
		return nil, fmt.Errorf("invalid funds: %w", err)
	}
	startingPrice, err := decFromJSON("starting_price", p.StartingPrice)
	if err != nil {
		return nil, err
	}
	endPrice, err := decFromJSON("end_price", p.EndPrice)
	if err != nil {
		return nil, err
	}

	resp, err := h.engine.Apply(ctx,
		engine.OpContext{Sender: p.Sender, Funds: funds, Now: h.now()},
		engine.MsgCreateAuction{
			OfferedAsset:  offered,
			InDenom:       p.InDenom,
			StartingPrice: startingPrice,
			EndPrice:      endPrice,
			StartTime:     time.Unix(p.StartTime, 0).UTC(),
			EndTime:       time.Unix(p.EndTime, 0).UTC(),
		})
	if err != nil {
		return nil, err
	}
	return executeResult(resp), nil
}

func (h *AuctionHandler) handleBid(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := decodeParams[BidParams](params)
	if err != nil {
		return nil, err
	}
	funds, err := coinsFromJSON(p.Funds)
	if err != nil {
		return nil, fmt.Errorf("invalid funds: %w", err)
	}

	resp, err := h.engine.Apply(ctx,
		engine.OpContext{Sender: p.Sender, Funds: funds, Now: h.now()},
		engine.MsgBid{AuctionID: p.AuctionID})
	if err != nil {
		return nil, err
	}
	return executeResult(resp), nil
}

func (h *AuctionHandler) handleCancelAuction(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := decodeParams[CancelAuctionParams](params)
	if err != nil {
		return nil, err
	}

	resp, err := h.engine.Apply(ctx,
		engine.OpContext{Sender: p.Sender, Now: h.now()},
		engine.MsgCancelAuction{AuctionID: p.AuctionID})
	if err != nil {
		return nil, err
	}
	return executeResult(resp), nil
}

func (h *AuctionHandler) handleChangeParams(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := decodeParams[ChangeParamsParams](params)
	if err != nil {
		return nil, err
	}
	update, err := p.Update.toUpdate()
	if err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}

	resp, err := h.engine.Apply(ctx,
		engine.OpContext{Sender: p.Sender, Now: h.now()},
		engine.MsgChangeParams{Update: update})
	if err != nil {
		return nil, err
	}
	return executeResult(resp), nil
}

func (h *AuctionHandler) handleAuction(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := decodeParams[AuctionQueryParams](params)
	if err != nil {
		return nil, err
	}

	a, err := h.engine.Auction(ctx, p.AuctionID)
	if err != nil {
		return nil, err
	}
	return auctionToJSON(p.AuctionID, a, h.now()), nil
}

func (h *AuctionHandler) handleAuctions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := decodeParams[AuctionsQueryParams](params)
	if err != nil {
		return nil, err
	}

	entries, err := h.engine.Auctions(ctx, p.StartAfter, p.Limit)
	if err != nil {
		return nil, err
	}

	now := h.now()
	out := AuctionsJSON{Auctions: make([]AuctionJSON, 0, len(entries))}
	for _, e := range entries {
		out.Auctions = append(out.Auctions, auctionToJSON(e.ID, e.Auction, now))
	}
	return out, nil
}

func (h *AuctionHandler) handleParams(ctx context.Context, params json.RawMessage) (interface{}, error) {
	p, err := h.engine.Params(ctx)
	if err != nil {
		return nil, err
	}
	return paramsToJSON(p), nil
}
