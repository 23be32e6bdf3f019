package ports

import (
	"context"
	"time"

	"stockyard/contexts/marketplace/auction-service/domain/entities"
	"stockyard/internal/shared/events"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"
)

// ListingView is the slice of a listing the auction engine needs. It is a
// read projection over the listing service's store; the auction service never
// writes listings.
type ListingView struct {
	ListingID    string
	TenantID     string
	SellerID     string
	IsActive     bool
	Approved     bool
	BuyNowPrice  *float64
	CurrencyCode string

	StartingPrice float64
}

// ListingReader resolves listing projections within a tenant scope. Missing
// or out-of-scope listings report ErrListingNotFound.
type ListingReader interface {
	GetListing(ctx context.Context, scope tenancy.Scope, listingID string) (ListingView, error)
}

// AuctionRepository is the tenant-scoped auction store. At most one auction
// exists per listing.
type AuctionRepository interface {
	CreateAuction(ctx context.Context, scope tenancy.Scope, auction entities.Auction) error
	GetAuction(ctx context.Context, scope tenancy.Scope, auctionID string) (entities.Auction, error)
	GetAuctionByListing(ctx context.Context, scope tenancy.Scope, listingID string) (entities.Auction, error)
	UpdateAuction(ctx context.Context, scope tenancy.Scope, auction entities.Auction) error
}

type BidPage struct {
	Items []entities.Bid
	Total int
}

// BidRepository appends and reads bids. AppendBid must serialize concurrent
// placements at the store level; the engine itself takes no lock.
type BidRepository interface {
	AppendBid(ctx context.Context, scope tenancy.Scope, bid entities.Bid) error
	ListBids(ctx context.Context, scope tenancy.Scope, auctionID string, skip, take int) (BidPage, error)
	AllBids(ctx context.Context, scope tenancy.Scope, auctionID string) ([]entities.Bid, error)
}

// PriceCache holds current prices keyed by auction. A miss is not an error.
type PriceCache interface {
	GetPrice(ctx context.Context, auctionID string) (float64, bool, error)
	SetPrice(ctx context.Context, auctionID string, amount float64) error
	InvalidatePrice(ctx context.Context, auctionID string) error
}

// OutboxRepository persists and relays auction lifecycle events.
type OutboxRepository interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher publishes envelopes to a topic on the platform bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
