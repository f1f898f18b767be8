package jsonrpc

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/engine"
	"github.com/auctionlaunch/auctiond/internal/core/types"
)

// CoinJSON is the wire form of a coin. Amounts travel as decimal
// strings so they survive arbitrary precision.
type CoinJSON struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func coinFromJSON(c CoinJSON) (types.Coin, error) {
	amount, ok := sdkmath.NewIntFromString(c.Amount)
	if !ok {
		return types.Coin{}, fmt.Errorf("invalid amount %q", c.Amount)
	}
	return types.NewCoin(c.Denom, amount), nil
}

func coinToJSON(c types.Coin) CoinJSON {
	return CoinJSON{Denom: c.Denom, Amount: c.Amount.String()}
}

func coinsFromJSON(cs []CoinJSON) (types.Coins, error) {
	out := make(types.Coins, 0, len(cs))
	for _, c := range cs {
		coin, err := coinFromJSON(c)
		if err != nil {
			return nil, err
		}
		out = append(out, coin)
	}
	return out, nil
}

func decFromJSON(field, s string) (sdkmath.LegacyDec, error) {
	d, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}

// CreateAuctionParams is the request body for create_auction.
type CreateAuctionParams struct {
	Sender        string     `json:"sender"`
	Funds         []CoinJSON `json:"funds"`
	OfferedAsset  CoinJSON   `json:"offered_asset"`
	InDenom       string     `json:"in_denom"`
	StartingPrice string     `json:"starting_price"`
	EndPrice      string     `json:"end_price"`
	StartTime     int64      `json:"start_time"`
	EndTime       int64      `json:"end_time"`
}

// BidParams is the request body for bid.
type BidParams struct {
	Sender    string     `json:"sender"`
	Funds     []CoinJSON `json:"funds"`
	AuctionID uint64     `json:"auction_id"`
}

// CancelAuctionParams is the request body for cancel_auction.
type CancelAuctionParams struct {
	Sender    string `json:"sender"`
	AuctionID uint64 `json:"auction_id"`
}

// ParamsUpdateJSON mirrors the optional fields of a params change.
type ParamsUpdateJSON struct {
	AuctionCreationFee   *CoinJSON `json:"auction_creation_fee,omitempty"`
	Admin                *string   `json:"admin,omitempty"`
	MinSecondsUntilStart *uint64   `json:"min_seconds_until_auction_start,omitempty"`
	MaxAuctionDuration   *uint64   `json:"max_auction_duration,omitempty"`
	AcceptedDenoms       []string  `json:"accepted_denoms,omitempty"`
}

func (u ParamsUpdateJSON) toUpdate() (auction.Update, error) {
	out := auction.Update{
		Admin:                u.Admin,
		MinSecondsUntilStart: u.MinSecondsUntilStart,
		MaxAuctionDuration:   u.MaxAuctionDuration,
		AcceptedDenoms:       u.AcceptedDenoms,
	}
	if u.AuctionCreationFee != nil {
		fee, err := coinFromJSON(*u.AuctionCreationFee)
		if err != nil {
			return auction.Update{}, err
		}
		out.AuctionCreationFee = &fee
	}
	return out, nil
}

// ChangeParamsParams is the request body for change_params.
type ChangeParamsParams struct {
	Sender string           `json:"sender"`
	Update ParamsUpdateJSON `json:"update"`
}

// AuctionQueryParams is the request body for the auction query.
type AuctionQueryParams struct {
	AuctionID uint64 `json:"auction_id"`
}

// AuctionsQueryParams is the request body for the auctions page query.
type AuctionsQueryParams struct {
	StartAfter *uint64 `json:"start_after,omitempty"`
	Limit      *uint32 `json:"limit,omitempty"`
}

// AuctionJSON is the wire form of a stored auction, annotated with the
// price prevailing at query time.
type AuctionJSON struct {
	ID              uint64   `json:"id"`
	Creator         string   `json:"creator"`
	OfferedAsset    CoinJSON `json:"offered_asset"`
	InDenom         string   `json:"in_denom"`
	StartingPrice   string   `json:"starting_price"`
	EndPrice        string   `json:"end_price"`
	StartTime       int64    `json:"start_time"`
	EndTime         int64    `json:"end_time"`
	RemainingAmount string   `json:"remaining_amount"`
	CurrentPrice    string   `json:"current_price"`
	Active          bool     `json:"active"`
}

func auctionToJSON(id uint64, a auction.Auction, now time.Time) AuctionJSON {
	return AuctionJSON{
		ID:              id,
		Creator:         a.Creator,
		OfferedAsset:    coinToJSON(a.OfferedAsset),
		InDenom:         a.InDenom,
		StartingPrice:   a.StartingPrice.String(),
		EndPrice:        a.EndPrice.String(),
		StartTime:       a.StartTime.Unix(),
		EndTime:         a.EndTime.Unix(),
		RemainingAmount: a.RemainingAmount.String(),
		CurrentPrice:    a.PriceAt(now).String(),
		Active:          a.IsActive(now),
	}
}

// AuctionsJSON is the auctions page response.
type AuctionsJSON struct {
	Auctions []AuctionJSON `json:"auctions"`
}

// ParamsJSON is the wire form of the global params.
type ParamsJSON struct {
	AuctionCreationFee   CoinJSON `json:"auction_creation_fee"`
	Admin                string   `json:"admin"`
	MinSecondsUntilStart uint64   `json:"min_seconds_until_auction_start"`
	MaxAuctionDuration   uint64   `json:"max_auction_duration"`
	AcceptedDenoms       []string `json:"accepted_denoms"`
}

func paramsToJSON(p auction.Params) ParamsJSON {
	return ParamsJSON{
		AuctionCreationFee:   coinToJSON(p.AuctionCreationFee),
		Admin:                p.Admin,
		MinSecondsUntilStart: p.MinSecondsUntilStart,
		MaxAuctionDuration:   p.MaxAuctionDuration,
		AcceptedDenoms:       p.AcceptedDenoms,
	}
}

// AttributeJSON is one observable effect of an executed operation.
type AttributeJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TransferJSON is one value transfer executed with an operation.
type TransferJSON struct {
	To     string   `json:"to"`
	Amount CoinJSON `json:"amount"`
}

// ExecuteResult is the response for the four execute methods.
type ExecuteResult struct {
	Attributes []AttributeJSON `json:"attributes"`
	Transfers  []TransferJSON  `json:"transfers"`
}

func executeResult(resp *engine.Response) ExecuteResult {
	out := ExecuteResult{
		Attributes: make([]AttributeJSON, 0, len(resp.Attributes)),
		Transfers:  make([]TransferJSON, 0, len(resp.Transfers)),
	}
	for _, a := range resp.Attributes {
		out.Attributes = append(out.Attributes, AttributeJSON{Key: a.Key, Value: a.Value})
	}
	for _, tr := range resp.Transfers {
		out.Transfers = append(out.Transfers, TransferJSON{To: tr.To, Amount: coinToJSON(tr.Amount)})
	}
	return out
}
