package postgresadapter

import (
	"time"

	"stockyard/contexts/marketplace/auction-service/domain/entities"
)

type auctionModel struct {
	AuctionID string `gorm:"primaryKey;column:auction_id"`
	TenantID  string `gorm:"column:tenant_id;index"`
	ListingID string `gorm:"column:listing_id;uniqueIndex"`

	Type       string `gorm:"column:auction_type"`
	SealedBids bool   `gorm:"column:sealed_bids"`

	StartsAt *time.Time `gorm:"column:starts_at"`
	EndsAt   *time.Time `gorm:"column:ends_at"`

	StartingPrice float64  `gorm:"column:starting_price"`
	ReservePrice  *float64 `gorm:"column:reserve_price"`
	BuyNowPrice   *float64 `gorm:"column:buy_now_price"`

	Closed       bool   `gorm:"column:closed;index"`
	WinningBidID string `gorm:"column:winning_bid_id"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (auctionModel) TableName() string { return "auctions" }

type bidModel struct {
	BidID     string `gorm:"primaryKey;column:bid_id"`
	TenantID  string `gorm:"column:tenant_id;index"`
	AuctionID string `gorm:"column:auction_id;index"`
	BidderID  string `gorm:"column:bidder_id;index"`

	Amount       float64 `gorm:"column:amount"`
	CurrencyCode string  `gorm:"column:currency_code"`

	PlacedAt time.Time `gorm:"column:placed_at;index"`
}

func (bidModel) TableName() string { return "bids" }

type outboxModel struct {
	OutboxID    string     `gorm:"primaryKey;column:outbox_id"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "auction_outbox" }

func auctionModelFromEntity(auction entities.Auction) auctionModel {
	return auctionModel{
		AuctionID:     auction.AuctionID,
		TenantID:      auction.TenantID,
		ListingID:     auction.ListingID,
		Type:          string(auction.Type),
		SealedBids:    auction.SealedBids,
		StartsAt:      auction.StartsAt,
		EndsAt:        auction.EndsAt,
		StartingPrice: auction.StartingPrice,
		ReservePrice:  auction.ReservePrice,
		BuyNowPrice:   auction.BuyNowPrice,
		Closed:        auction.Closed,
		WinningBidID:  auction.WinningBidID,
		CreatedAt:     auction.CreatedAt,
		UpdatedAt:     auction.UpdatedAt,
	}
}

func (m auctionModel) toEntity() entities.Auction {
	return entities.Auction{
		AuctionID:     m.AuctionID,
		TenantID:      m.TenantID,
		ListingID:     m.ListingID,
		Type:          entities.AuctionType(m.Type),
		SealedBids:    m.SealedBids,
		StartsAt:      m.StartsAt,
		EndsAt:        m.EndsAt,
		StartingPrice: m.StartingPrice,
		ReservePrice:  m.ReservePrice,
		BuyNowPrice:   m.BuyNowPrice,
		Closed:        m.Closed,
		WinningBidID:  m.WinningBidID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func bidModelFromEntity(bid entities.Bid) bidModel {
	return bidModel{
		BidID:        bid.BidID,
		TenantID:     bid.TenantID,
		AuctionID:    bid.AuctionID,
		BidderID:     bid.BidderID,
		Amount:       bid.Amount,
		CurrencyCode: bid.CurrencyCode,
		PlacedAt:     bid.PlacedAt,
	}
}

func (m bidModel) toEntity() entities.Bid {
	return entities.Bid{
		BidID:        m.BidID,
		TenantID:     m.TenantID,
		AuctionID:    m.AuctionID,
		BidderID:     m.BidderID,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		PlacedAt:     m.PlacedAt,
	}
}
