package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "stockyard/contexts/marketplace/auction-service/application"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

// CreateAuctionCommand opens the door to bidding on a listing. The auction
// inherits tenant, starting price, and buy-now price from the listing and
// starts closed; OpenAuction turns it live.
type CreateAuctionCommand struct {
	Actor     tenancy.Actor
	ListingID string

	Type         entities.AuctionType
	SealedBids   bool
	StartsAt     *time.Time
	EndsAt       *time.Time
	ReservePrice *float64
}

type CreateAuctionUseCase struct {
	Auctions ports.AuctionRepository
	Listings ports.ListingReader
	Outbox   ports.OutboxRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CreateAuctionUseCase) Execute(ctx context.Context, cmd CreateAuctionCommand) (entities.Auction, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "create auctions"); err != nil {
		return entities.Auction{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return entities.Auction{}, err
	}

	listing, err := uc.Listings.GetListing(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return entities.Auction{}, err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, listing.SellerID); err != nil {
		return entities.Auction{}, err
	}

	auctionType := cmd.Type
	if auctionType == "" {
		auctionType = entities.AuctionTypeEnglish
	}
	if !auctionType.Valid() {
		return entities.Auction{}, domainerrors.ErrInvalidAuctionInput
	}
	if cmd.ReservePrice != nil && *cmd.ReservePrice <= 0 {
		return entities.Auction{}, domainerrors.ErrInvalidAuctionInput
	}

	if _, err := uc.Auctions.GetAuctionByListing(ctx, cmd.Actor.Scope(), listing.ListingID); err == nil {
		return entities.Auction{}, domainerrors.ErrAuctionAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrAuctionNotFound) {
		return entities.Auction{}, err
	}

	auctionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Auction{}, err
	}
	now := uc.Clock.Now().UTC()

	auction := entities.Auction{
		AuctionID:     auctionID,
		TenantID:      listing.TenantID,
		ListingID:     listing.ListingID,
		Type:          auctionType,
		SealedBids:    cmd.SealedBids || auctionType == entities.AuctionTypeSealed,
		StartsAt:      cmd.StartsAt,
		EndsAt:        cmd.EndsAt,
		StartingPrice: listing.StartingPrice,
		ReservePrice:  cmd.ReservePrice,
		BuyNowPrice:   listing.BuyNowPrice,
		Closed:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.Auctions.CreateAuction(ctx, cmd.Actor.Scope(), auction); err != nil {
		return entities.Auction{}, err
	}
	if err := appendAuctionEvent(ctx, uc.Outbox, uc.IDGen, "auction.created", auction.TenantID, "auction", auction.AuctionID, now, map[string]any{
		"listing_id":   auction.ListingID,
		"auction_type": string(auction.Type),
	}); err != nil {
		return entities.Auction{}, err
	}

	logger.Info("auction created",
		"event", "auction_created",
		"module", sourceService,
		"layer", "application",
		"auction_id", auction.AuctionID,
		"listing_id", auction.ListingID,
		"tenant_id", auction.TenantID,
	)
	return auction, nil
}
