package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
)

// Coin is the wire form of a single-denom amount. Amounts travel as
// decimal strings.
type Coin struct {
	Denom  string
	Amount string
}

// AuctionInfo describes one stored auction.
type AuctionInfo struct {
	// ID is the registry identifier
	ID uint64

	// Creator is the address that opened the auction
	Creator string

	// OfferedAsset is the asset put up for sale
	OfferedAsset Coin

	// InDenom is the denom payments must use
	InDenom string

	// StartingPrice is the price at the start time
	StartingPrice string

	// EndPrice is the price at the end time
	EndPrice string

	// StartTime is the opening instant in unix seconds
	StartTime int64

	// EndTime is the closing instant in unix seconds
	EndTime int64

	// RemainingAmount is the unsold quantity
	RemainingAmount string
}

func auctionInfo(id uint64, a auction.Auction) AuctionInfo {
	return AuctionInfo{
		ID:              id,
		Creator:         a.Creator,
		OfferedAsset:    Coin{Denom: a.OfferedAsset.Denom, Amount: a.OfferedAsset.Amount.String()},
		InDenom:         a.InDenom,
		StartingPrice:   a.StartingPrice.String(),
		EndPrice:        a.EndPrice.String(),
		StartTime:       a.StartTime.Unix(),
		EndTime:         a.EndTime.Unix(),
		RemainingAmount: a.RemainingAmount.String(),
	}
}

// GetAuctionRequest identifies a single auction.
type GetAuctionRequest struct {
	ID uint64
}

// GetAuctionResponse carries the requested auction.
type GetAuctionResponse struct {
	Auction AuctionInfo
}

// GetAuction retrieves a single auction by id.
func (s *Server) GetAuction(ctx context.Context, req *GetAuctionRequest) (*GetAuctionResponse, error) {
	if s.engine == nil {
		return nil, status.Error(codes.Internal, "auction engine not available")
	}

	a, err := s.engine.Auction(ctx, req.ID)
	if err != nil {
		if errors.Is(err, auction.ErrAuctionNotFound) {
			return nil, status.Error(codes.NotFound, "auction not found")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &GetAuctionResponse{Auction: auctionInfo(req.ID, a)}, nil
}

// ListAuctionsRequest asks for a page of auctions in ascending id order.
type ListAuctionsRequest struct {
	// StartAfter is an exclusive cursor; nil starts from the beginning
	StartAfter *uint64

	// Limit is the page size; nil or zero uses the server default
	Limit *uint32
}

// ListAuctionsResponse carries one page of auctions.
type ListAuctionsResponse struct {
	Auctions []AuctionInfo
}

// ListAuctions retrieves a page of the auction registry.
func (s *Server) ListAuctions(ctx context.Context, req *ListAuctionsRequest) (*ListAuctionsResponse, error) {
	if s.engine == nil {
		return nil, status.Error(codes.Internal, "auction engine not available")
	}

	entries, err := s.engine.Auctions(ctx, req.StartAfter, req.Limit)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	resp := &ListAuctionsResponse{Auctions: make([]AuctionInfo, 0, len(entries))}
	for _, e := range entries {
		resp.Auctions = append(resp.Auctions, auctionInfo(e.ID, e.Auction))
	}
	return resp, nil
}

// GetParamsRequest asks for the global params record.
type GetParamsRequest struct{}

// GetParamsResponse carries the global params.
type GetParamsResponse struct {
	AuctionCreationFee   Coin
	Admin                string
	MinSecondsUntilStart uint64
	MaxAuctionDuration   uint64
	AcceptedDenoms       []string
}

// GetParams retrieves the global params record.
func (s *Server) GetParams(ctx context.Context, req *GetParamsRequest) (*GetParamsResponse, error) {
	if s.engine == nil {
		return nil, status.Error(codes.Internal, "auction engine not available")
	}

	p, err := s.engine.Params(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &GetParamsResponse{
		AuctionCreationFee:   Coin{Denom: p.AuctionCreationFee.Denom, Amount: p.AuctionCreationFee.Amount.String()},
		Admin:                p.Admin,
		MinSecondsUntilStart: p.MinSecondsUntilStart,
		MaxAuctionDuration:   p.MaxAuctionDuration,
		AcceptedDenoms:       p.AcceptedDenoms,
	}, nil
}
