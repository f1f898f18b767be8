package auction

import "errors"

var (
	// ErrUnauthorized is returned when the sender may not perform the action
	ErrUnauthorized = errors.New("unauthorized: the sender is not authorized to perform this action")

	// ErrEndPriceAboveStartingPrice is returned when the end price exceeds the starting price
	ErrEndPriceAboveStartingPrice = errors.New("end price cannot be higher than starting price")

	// ErrInvalidTimeRange is returned when the start time is after the end time
	ErrInvalidTimeRange = errors.New("start time must not be after end time")

	// ErrSameDenomination is returned when the offered asset and the input denom match
	ErrSameDenomination = errors.New("offered asset and input denom cannot be the same")

	// ErrStartTimeInPast is returned when the auction would start before the current time
	ErrStartTimeInPast = errors.New("auction start time cannot be in the past")

	// ErrStartTimeTooSoon is returned when the start time violates the configured lead time
	ErrStartTimeTooSoon = errors.New("auction start time is too soon")

	// ErrDurationTooLong is returned when the auction window exceeds the configured maximum
	ErrDurationTooLong = errors.New("auction duration exceeds the maximum allowed duration")

	// ErrDenomNotAccepted is returned when the input denom is not in the accepted set
	ErrDenomNotAccepted = errors.New("input denom is not accepted")

	// ErrInvalidParams is returned when a params record fails validation
	ErrInvalidParams = errors.New("invalid params")

	// ErrInvalidFunds is returned when attached funds do not match what the operation requires
	ErrInvalidFunds = errors.New("attached funds do not match the required funds")

	// ErrBidTooSmall is returned when a payment acquires nothing at the current price
	ErrBidTooSmall = errors.New("payment too small to acquire any amount at the current price")

	// ErrAuctionNotFound is returned when the auction id is not in the registry
	ErrAuctionNotFound = errors.New("auction not found")

	// ErrAuctionNotActive is returned when bidding outside the active window
	ErrAuctionNotActive = errors.New("auction is not active")

	// ErrAuctionCannotBeCanceled is returned when cancelling at or after the start time
	ErrAuctionCannotBeCanceled = errors.New("auction cannot be canceled once started")

	// ErrInsufficientRemainingAmount is returned when a fill exceeds the remaining supply
	ErrInsufficientRemainingAmount = errors.New("auction remaining amount is insufficient")

	// ErrIDSpaceExhausted is returned when the identifier counter cannot be incremented
	ErrIDSpaceExhausted = errors.New("auction identifier space is exhausted")
)
