package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAuctionRequest struct {
	ListingID string `json:"listing_id"`

	Type         string   `json:"type,omitempty"`
	SealedBids   bool     `json:"sealed_bids,omitempty"`
	StartsAt     string   `json:"starts_at,omitempty"`
	EndsAt       string   `json:"ends_at,omitempty"`
	ReservePrice *float64 `json:"reserve_price,omitempty"`
}

type UpdateAuctionRequest struct {
	Type         string   `json:"type,omitempty"`
	SealedBids   bool     `json:"sealed_bids,omitempty"`
	StartsAt     string   `json:"starts_at,omitempty"`
	EndsAt       string   `json:"ends_at,omitempty"`
	ReservePrice *float64 `json:"reserve_price,omitempty"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount"`
}

type AuctionDTO struct {
	AuctionID string `json:"auction_id"`
	TenantID  string `json:"tenant_id"`
	ListingID string `json:"listing_id"`

	Type       string `json:"type"`
	SealedBids bool   `json:"sealed_bids"`

	StartsAt string `json:"starts_at,omitempty"`
	EndsAt   string `json:"ends_at,omitempty"`

	StartingPrice float64  `json:"starting_price"`
	ReservePrice  *float64 `json:"reserve_price,omitempty"`
	BuyNowPrice   *float64 `json:"buy_now_price,omitempty"`

	Closed       bool   `json:"closed"`
	WinningBidID string `json:"winning_bid_id,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type BidDTO struct {
	BidID     string `json:"bid_id"`
	AuctionID string `json:"auction_id"`
	BidderID  string `json:"bidder_id"`

	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currency_code"`

	PlacedAt string `json:"placed_at"`
}

type AuctionResponse struct {
	Auction AuctionDTO `json:"auction"`
}

type CloseAuctionResponse struct {
	Auction    AuctionDTO `json:"auction"`
	WinningBid *BidDTO    `json:"winning_bid,omitempty"`
}

type PlaceBidResponse struct {
	Bid BidDTO `json:"bid"`
}

type CurrentPriceResponse struct {
	AuctionID string  `json:"auction_id"`
	Amount    float64 `json:"amount,omitempty"`
	Available bool    `json:"available"`
}

type ListBidsResponse struct {
	Items []BidDTO `json:"items"`
	Total int      `json:"total"`
}
