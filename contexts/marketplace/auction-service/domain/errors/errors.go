package errors

import "errors"

var ErrAuctionNotFound = errors.New("auction not found")

var ErrListingNotFound = errors.New("listing not found")

// Invalid-state errors.
var (
	ErrAuctionClosed        = errors.New("auction is closed")
	ErrAuctionAlreadyClosed = errors.New("auction is already closed")
	ErrAuctionAlreadyExists = errors.New("listing already has an auction")
	ErrListingNotActive     = errors.New("listing is not active")
	ErrListingNotApproved   = errors.New("listing is not approved")
	ErrBuyNowListing        = errors.New("listing is sold at a fixed buy-now price")
	ErrBidsNotAvailable     = errors.New("bids are not available for this listing")
)

// Validation errors.
var (
	ErrInvalidAuctionInput = errors.New("invalid auction input")
	ErrInvalidBidAmount    = errors.New("bid amount must be positive")
	ErrBidIncrementTooLow  = errors.New("bid does not meet the minimum increment")
	ErrInvalidListFilter   = errors.New("invalid list filter")
)
