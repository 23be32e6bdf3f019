package commands

import (
	"context"
	"log/slog"
	"strings"

	application "stockyard/contexts/marketplace/auction-service/application"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

type OpenAuctionCommand struct {
	Actor     tenancy.Actor
	AuctionID string
}

type OpenAuctionUseCase struct {
	Auctions ports.AuctionRepository
	Listings ports.ListingReader
	Outbox   ports.OutboxRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Execute opens an auction for bidding. Opening an already open auction is a
// no-op; the backing listing must be publicly visible before bidding starts.
func (uc OpenAuctionUseCase) Execute(ctx context.Context, cmd OpenAuctionCommand) (entities.Auction, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "open auctions"); err != nil {
		return entities.Auction{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin); err != nil {
		return entities.Auction{}, err
	}

	auction, err := uc.Auctions.GetAuction(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.AuctionID))
	if err != nil {
		return entities.Auction{}, err
	}
	if !auction.Closed {
		return auction, nil
	}

	listing, err := uc.Listings.GetListing(ctx, cmd.Actor.Scope(), auction.ListingID)
	if err != nil {
		return entities.Auction{}, err
	}
	if !listing.IsActive {
		return entities.Auction{}, domainerrors.ErrListingNotActive
	}
	if !listing.Approved {
		return entities.Auction{}, domainerrors.ErrListingNotApproved
	}

	now := uc.Clock.Now().UTC()
	auction.Closed = false
	if auction.StartsAt == nil {
		auction.StartsAt = &now
	}
	auction.UpdatedAt = now

	if err := uc.Auctions.UpdateAuction(ctx, cmd.Actor.Scope(), auction); err != nil {
		return entities.Auction{}, err
	}
	if err := appendAuctionEvent(ctx, uc.Outbox, uc.IDGen, "auction.opened", auction.TenantID, "auction", auction.AuctionID, now, map[string]any{
		"listing_id": auction.ListingID,
	}); err != nil {
		return entities.Auction{}, err
	}

	logger.Info("auction opened",
		"event", "auction_opened",
		"module", sourceService,
		"layer", "application",
		"auction_id", auction.AuctionID,
		"tenant_id", auction.TenantID,
	)
	return auction, nil
}
