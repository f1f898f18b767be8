package engine

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/auctionlaunch/auctiond/internal/core/auction"
	"github.com/auctionlaunch/auctiond/internal/core/types"
)

// Msg is one inbound operation. Exactly one handler exists per
// variant; Apply dispatches on the concrete type.
type Msg interface {
	// Action is the operation name emitted in the response attributes.
	Action() string
}

// MsgCreateAuction opens a new auction. The attached funds must equal
// the creation fee plus the offered asset.
type MsgCreateAuction struct {
	OfferedAsset  types.Coin
	InDenom       string
	StartingPrice sdkmath.LegacyDec
	EndPrice      sdkmath.LegacyDec
	StartTime     time.Time
	EndTime       time.Time
}

func (MsgCreateAuction) Action() string { return "create_auction" }

// MsgBid purchases part of the remaining supply at the prevailing
// price. The payment is the attached funds in the auction's input
// denom.
type MsgBid struct {
	AuctionID uint64
}

func (MsgBid) Action() string { return "bid" }

// MsgCancelAuction removes a not-yet-started auction. Only the creator
// may cancel.
type MsgCancelAuction struct {
	AuctionID uint64
}

func (MsgCancelAuction) Action() string { return "cancel_auction" }

// MsgChangeParams partially updates the global params. Only the stored
// admin may change them.
type MsgChangeParams struct {
	Update auction.Update
}

func (MsgChangeParams) Action() string { return "change_params" }

// OpContext carries the host-attested facts about an operation: the
// authenticated sender, the funds actually attached to the call, and
// the single authoritative timestamp for the operation.
type OpContext struct {
	Sender string
	Funds  types.Coins
	Now    time.Time
}
