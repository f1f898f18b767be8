package auction

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/auctionlaunch/auctiond/internal/core/types"
)

// Auction is a single-asset Dutch auction: a fixed quantity of the
// offered asset is sold against the input denom with the unit price
// decaying linearly from StartingPrice at StartTime to EndPrice at
// EndTime. RemainingAmount tracks the unsold quantity.
type Auction struct {
	Creator         string
	OfferedAsset    types.Coin
	InDenom         string
	StartingPrice   sdkmath.LegacyDec
	EndPrice        sdkmath.LegacyDec
	StartTime       time.Time
	EndTime         time.Time
	RemainingAmount sdkmath.Int
}

// New builds an Auction with the remaining amount initialized to the
// offered quantity. It performs no validation; a constructed value can
// be inspected or logged before Validate rejects it.
func New(creator string, offered types.Coin, inDenom string, startingPrice, endPrice sdkmath.LegacyDec, start, end time.Time) Auction {
	return Auction{
		Creator:         creator,
		OfferedAsset:    offered,
		InDenom:         inDenom,
		StartingPrice:   startingPrice,
		EndPrice:        endPrice,
		StartTime:       start,
		EndTime:         end,
		RemainingAmount: offered.Amount,
	}
}

// Validate checks the auction against the current time and the global
// params. Checks run in a fixed order and the first failure wins.
func (a Auction) Validate(now time.Time, p Params) error {
	if a.EndPrice.GT(a.StartingPrice) {
		return fmt.Errorf("%w: end price %s, starting price %s",
			ErrEndPriceAboveStartingPrice, a.EndPrice, a.StartingPrice)
	}
	if a.StartTime.After(a.EndTime) {
		return fmt.Errorf("%w: start %s, end %s",
			ErrInvalidTimeRange, a.StartTime.UTC(), a.EndTime.UTC())
	}
	if a.OfferedAsset.Denom == a.InDenom {
		return fmt.Errorf("%w: %s", ErrSameDenomination, a.InDenom)
	}
	if a.StartTime.Before(now) {
		return fmt.Errorf("%w: start %s, now %s",
			ErrStartTimeInPast, a.StartTime.UTC(), now.UTC())
	}
	if now.Add(time.Duration(p.MinSecondsUntilStart) * time.Second).After(a.StartTime) {
		return fmt.Errorf("%w: must start at least %ds from now (now %s, start %s)",
			ErrStartTimeTooSoon, p.MinSecondsUntilStart, now.UTC(), a.StartTime.UTC())
	}
	if a.EndTime.Sub(a.StartTime) > time.Duration(p.MaxAuctionDuration)*time.Second {
		return fmt.Errorf("%w: duration %s, maximum %ds",
			ErrDurationTooLong, a.EndTime.Sub(a.StartTime), p.MaxAuctionDuration)
	}
	if !p.AcceptsDenom(a.InDenom) {
		return fmt.Errorf("%w: %s", ErrDenomNotAccepted, a.InDenom)
	}
	return nil
}

// PriceAt returns the unit price prevailing at the given instant,
// linearly interpolated between the starting and end prices. The domain
// is clamped: instants before the start return the starting price and
// instants at or past the end return the end price. The end boundary is
// checked first so that when the two instants coincide a zero-duration
// auction yields the end price, never a division by zero.
func (a Auction) PriceAt(now time.Time) sdkmath.LegacyDec {
	if !now.Before(a.EndTime) {
		return a.EndPrice
	}
	if !now.After(a.StartTime) {
		return a.StartingPrice
	}

	total := a.EndTime.Sub(a.StartTime).Nanoseconds()
	elapsed := now.Sub(a.StartTime).Nanoseconds()
	fraction := sdkmath.LegacyNewDec(elapsed).Quo(sdkmath.LegacyNewDec(total))
	return a.StartingPrice.Sub(a.StartingPrice.Sub(a.EndPrice).Mul(fraction))
}

// IsStarted reports whether the auction has reached its start time.
func (a Auction) IsStarted(now time.Time) bool {
	return !now.Before(a.StartTime)
}

// IsActive reports whether the instant falls within the biddable window.
func (a Auction) IsActive(now time.Time) bool {
	return a.IsStarted(now) && !now.After(a.EndTime)
}

// IsExpired reports whether the biddable window has closed.
func (a Auction) IsExpired(now time.Time) bool {
	return now.After(a.EndTime)
}

// IsExhausted reports whether the supply has been fully sold. Exhausted
// auctions stay in the registry and remain queryable.
func (a Auction) IsExhausted() bool {
	return a.RemainingAmount.IsZero()
}
