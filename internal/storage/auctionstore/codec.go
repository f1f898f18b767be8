package auctionstore

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/ugorji/go/codec"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/types"
)

var cborHandle codec.CborHandle

// auctionRecord is the stored form of an Auction. Amounts and prices
// are strings so the record stays independent of the in-memory math
// representation.
type auctionRecord struct {
	Creator         string `codec:"creator"`
	OfferedDenom    string `codec:"offered_denom"`
	OfferedAmount   string `codec:"offered_amount"`
	InDenom         string `codec:"in_denom"`
	StartingPrice   string `codec:"starting_price"`
	EndPrice        string `codec:"end_price"`
	StartTimeNanos  int64  `codec:"start_time"`
	EndTimeNanos    int64  `codec:"end_time"`
	RemainingAmount string `codec:"remaining_amount"`
}

type paramsRecord struct {
	FeeDenom             string   `codec:"fee_denom"`
	FeeAmount            string   `codec:"fee_amount"`
	Admin                string   `codec:"admin"`
	MinSecondsUntilStart uint64   `codec:"min_seconds_until_auction_start"`
	MaxAuctionDuration   uint64   `codec:"max_auction_duration"`
	AcceptedDenoms       []string `codec:"accepted_denoms"`
}

func marshalAuction(a auction.Auction) ([]byte, error) {
	rec := auctionRecord{
		Creator:         a.Creator,
		OfferedDenom:    a.OfferedAsset.Denom,
		OfferedAmount:   a.OfferedAsset.Amount.String(),
		InDenom:         a.InDenom,
		StartingPrice:   a.StartingPrice.String(),
		EndPrice:        a.EndPrice.String(),
		StartTimeNanos:  a.StartTime.UnixNano(),
		EndTimeNanos:    a.EndTime.UnixNano(),
		RemainingAmount: a.RemainingAmount.String(),
	}

	var buf []byte
	if err := codec.NewEncoderBytes(&buf, &cborHandle).Encode(rec); err != nil {
		return nil, fmt.Errorf("encode auction record: %w", err)
	}
	return buf, nil
}

func unmarshalAuction(data []byte) (auction.Auction, error) {
	var rec auctionRecord
	if err := codec.NewDecoderBytes(data, &cborHandle).Decode(&rec); err != nil {
		return auction.Auction{}, fmt.Errorf("decode auction record: %w", err)
	}

	offered, ok := sdkmath.NewIntFromString(rec.OfferedAmount)
	if !ok {
		return auction.Auction{}, fmt.Errorf("corrupt offered amount %q", rec.OfferedAmount)
	}
	remaining, ok := sdkmath.NewIntFromString(rec.RemainingAmount)
	if !ok {
		return auction.Auction{}, fmt.Errorf("corrupt remaining amount %q", rec.RemainingAmount)
	}
	startPrice, err := sdkmath.LegacyNewDecFromStr(rec.StartingPrice)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("corrupt starting price %q: %w", rec.StartingPrice, err)
	}
	endPrice, err := sdkmath.LegacyNewDecFromStr(rec.EndPrice)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("corrupt end price %q: %w", rec.EndPrice, err)
	}

	return auction.Auction{
		Creator:         rec.Creator,
		OfferedAsset:    types.NewCoin(rec.OfferedDenom, offered),
		InDenom:         rec.InDenom,
		StartingPrice:   startPrice,
		EndPrice:        endPrice,
		StartTime:       time.Unix(0, rec.StartTimeNanos).UTC(),
		EndTime:         time.Unix(0, rec.EndTimeNanos).UTC(),
		RemainingAmount: remaining,
	}, nil
}

func marshalParams(p auction.Params) ([]byte, error) {
	rec := paramsRecord{
		FeeDenom:             p.AuctionCreationFee.Denom,
		FeeAmount:            p.AuctionCreationFee.Amount.String(),
		Admin:                p.Admin,
		MinSecondsUntilStart: p.MinSecondsUntilStart,
		MaxAuctionDuration:   p.MaxAuctionDuration,
		AcceptedDenoms:       p.AcceptedDenoms,
	}

	var buf []byte
	if err := codec.NewEncoderBytes(&buf, &cborHandle).Encode(rec); err != nil {
		return nil, fmt.Errorf("encode params record: %w", err)
	}
	return buf, nil
}

func unmarshalParams(data []byte) (auction.Params, error) {
	var rec paramsRecord
	if err := codec.NewDecoderBytes(data, &cborHandle).Decode(&rec); err != nil {
		return auction.Params{}, fmt.Errorf("decode params record: %w", err)
	}

	feeAmount, ok := sdkmath.NewIntFromString(rec.FeeAmount)
	if !ok {
		return auction.Params{}, fmt.Errorf("corrupt fee amount %q", rec.FeeAmount)
	}

	return auction.Params{
		AuctionCreationFee:   types.NewCoin(rec.FeeDenom, feeAmount),
		Admin:                rec.Admin,
		MinSecondsUntilStart: rec.MinSecondsUntilStart,
		MaxAuctionDuration:   rec.MaxAuctionDuration,
		AcceptedDenoms:       rec.AcceptedDenoms,
	}, nil
}
