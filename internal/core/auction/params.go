package auction

import (
	"fmt"

	"github.com/auctionlaunch/auctiond/internal/core/types"
)

// Params is the single global configuration record every creation is
// validated against. It is written once at genesis and mutated only by
// the stored admin identity.
type Params struct {
	AuctionCreationFee   types.Coin
	Admin                string
	MinSecondsUntilStart uint64
	MaxAuctionDuration   uint64
	AcceptedDenoms       []string
}

// Validate checks the params record. The lead time and the maximum
// duration must both be non-zero, matching the genesis rules.
func (p Params) Validate() error {
	if p.Admin == "" {
		return fmt.Errorf("%w: admin must not be empty", ErrInvalidParams)
	}
	if !p.AuctionCreationFee.IsValid() {
		return fmt.Errorf("%w: invalid creation fee %s", ErrInvalidParams, p.AuctionCreationFee)
	}
	if p.MinSecondsUntilStart == 0 {
		return fmt.Errorf("%w: min seconds until auction start must be non-zero", ErrInvalidParams)
	}
	if p.MaxAuctionDuration == 0 {
		return fmt.Errorf("%w: max auction duration must be non-zero", ErrInvalidParams)
	}
	for _, d := range p.AcceptedDenoms {
		if d == "" {
			return fmt.Errorf("%w: accepted denoms must not contain empty entries", ErrInvalidParams)
		}
	}
	return nil
}

// AcceptsDenom reports whether the denom may be used as an input denom.
// An empty accepted set means no restriction.
func (p Params) AcceptsDenom(denom string) bool {
	if len(p.AcceptedDenoms) == 0 {
		return true
	}
	for _, d := range p.AcceptedDenoms {
		if d == denom {
			return true
		}
	}
	return false
}

// Update carries the optional fields of a params change. Nil fields
// keep their prior value; the update is a partial overwrite, not a
// whole-record replacement.
type Update struct {
	AuctionCreationFee   *types.Coin
	Admin                *string
	MinSecondsUntilStart *uint64
	MaxAuctionDuration   *uint64
	AcceptedDenoms       []string
}

// Apply returns the params with the supplied fields overwritten.
func (p Params) Apply(u Update) Params {
	if u.AuctionCreationFee != nil {
		p.AuctionCreationFee = *u.AuctionCreationFee
	}
	if u.Admin != nil {
		p.Admin = *u.Admin
	}
	if u.MinSecondsUntilStart != nil {
		p.MinSecondsUntilStart = *u.MinSecondsUntilStart
	}
	if u.MaxAuctionDuration != nil {
		p.MaxAuctionDuration = *u.MaxAuctionDuration
	}
	if u.AcceptedDenoms != nil {
		p.AcceptedDenoms = u.AcceptedDenoms
	}
	return p
}
