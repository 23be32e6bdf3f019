package commands

import (
	"context"
	"log/slog"
	"strings"

	application "stockyard/contexts/marketplace/auction-service/application"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/domain/services"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

type PlaceBidCommand struct {
	Actor     tenancy.Actor
	ListingID string
	Amount    float64
}

// PlaceBidUseCase appends bids. Precondition order is part of the contract:
// listing exists, listing active, compliance approved, no buy-now price,
// auction exists, auction open, then the amount against the policy. The
// engine holds no lock across the checks; the bid store serializes appends.
type PlaceBidUseCase struct {
	Auctions ports.AuctionRepository
	Bids     ports.BidRepository
	Listings ports.ListingReader
	Outbox   ports.OutboxRepository
	Cache    ports.PriceCache
	Policy   services.BidPolicy
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidCommand) (entities.Bid, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "place bids"); err != nil {
		return entities.Bid{}, err
	}
	if err := tenancy.RequireTenantUser(cmd.Actor); err != nil {
		return entities.Bid{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleBuyer); err != nil {
		return entities.Bid{}, err
	}
	if cmd.Actor.ActorID == "" {
		return entities.Bid{}, tenancy.ErrActorRequired
	}
	if cmd.Amount <= 0 {
		return entities.Bid{}, domainerrors.ErrInvalidBidAmount
	}

	scope := cmd.Actor.Scope()
	listing, err := uc.Listings.GetListing(ctx, scope, strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return entities.Bid{}, err
	}
	if !listing.IsActive {
		return entities.Bid{}, domainerrors.ErrListingNotActive
	}
	if !listing.Approved {
		return entities.Bid{}, domainerrors.ErrListingNotApproved
	}
	if listing.BuyNowPrice != nil {
		return entities.Bid{}, domainerrors.ErrBuyNowListing
	}

	auction, err := uc.Auctions.GetAuctionByListing(ctx, scope, listing.ListingID)
	if err != nil {
		return entities.Bid{}, err
	}
	if auction.Closed {
		return entities.Bid{}, domainerrors.ErrAuctionClosed
	}

	bids, err := uc.Bids.AllBids(ctx, scope, auction.AuctionID)
	if err != nil {
		return entities.Bid{}, err
	}
	current, hasCurrent := services.CurrentPrice(bids)
	if err := uc.Policy.Check(cmd.Amount, current, hasCurrent); err != nil {
		return entities.Bid{}, err
	}

	bidID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Bid{}, err
	}
	now := uc.Clock.Now().UTC()
	bid := entities.Bid{
		BidID:        bidID,
		TenantID:     auction.TenantID,
		AuctionID:    auction.AuctionID,
		BidderID:     cmd.Actor.ActorID,
		Amount:       cmd.Amount,
		CurrencyCode: listing.CurrencyCode,
		PlacedAt:     now,
	}

	if err := uc.Bids.AppendBid(ctx, scope, bid); err != nil {
		return entities.Bid{}, err
	}
	if err := appendAuctionEvent(ctx, uc.Outbox, uc.IDGen, "bid.placed", bid.TenantID, "bid", bid.BidID, now, map[string]any{
		"auction_id": bid.AuctionID,
		"listing_id": listing.ListingID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
	}); err != nil {
		return entities.Bid{}, err
	}

	// The cached price is stale the moment the bid lands. Invalidation
	// failures are logged, not surfaced: the bid is already durable.
	if uc.Cache != nil {
		if err := uc.Cache.InvalidatePrice(ctx, auction.AuctionID); err != nil {
			logger.Warn("price cache invalidation failed",
				"event", "price_cache_invalidate_failed",
				"module", sourceService,
				"layer", "application",
				"auction_id", auction.AuctionID,
				"error", err,
			)
		}
	}

	logger.Info("bid placed",
		"event", "bid_placed",
		"module", sourceService,
		"layer", "application",
		"auction_id", bid.AuctionID,
		"listing_id", listing.ListingID,
		"tenant_id", bid.TenantID,
		"amount", bid.Amount,
	)
	return bid, nil
}

// ExecuteByAuction is the compatibility path for callers holding an auction
// id: it resolves the listing and delegates to the canonical checks.
func (uc PlaceBidUseCase) ExecuteByAuction(ctx context.Context, actor tenancy.Actor, auctionID string, amount float64) (entities.Bid, error) {
	auction, err := uc.Auctions.GetAuction(ctx, actor.Scope(), strings.TrimSpace(auctionID))
	if err != nil {
		return entities.Bid{}, err
	}
	return uc.Execute(ctx, PlaceBidCommand{Actor: actor, ListingID: auction.ListingID, Amount: amount})
}
