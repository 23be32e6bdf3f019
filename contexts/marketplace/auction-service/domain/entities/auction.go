package entities

import "time"

// AuctionType selects the bidding format.
type AuctionType string

const (
	AuctionTypeEnglish AuctionType = "english"
	AuctionTypeSealed  AuctionType = "sealed"
)

func (t AuctionType) Valid() bool {
	return t == AuctionTypeEnglish || t == AuctionTypeSealed
}

// Auction runs bidding for a single listing. The Closed flag is the only
// authoritative lifecycle signal: StartsAt and EndsAt are informational and
// never consulted when deciding whether a bid may be placed.
type Auction struct {
	AuctionID string
	TenantID  string
	ListingID string

	Type       AuctionType
	SealedBids bool

	StartsAt *time.Time
	EndsAt   *time.Time

	StartingPrice float64
	ReservePrice  *float64
	BuyNowPrice   *float64

	Closed       bool
	WinningBidID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bid is append-only: once placed it is never amended or removed.
type Bid struct {
	BidID     string
	TenantID  string
	AuctionID string
	BidderID  string

	Amount       float64
	CurrencyCode string

	PlacedAt time.Time
}
