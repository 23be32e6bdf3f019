package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "stockyard/contexts/marketplace/auction-service/application"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

// UpdateAuctionCommand edits scheduling and reserve settings. The lifecycle
// flag and the listing binding are not editable here.
type UpdateAuctionCommand struct {
	Actor     tenancy.Actor
	AuctionID string

	Type         entities.AuctionType
	SealedBids   bool
	StartsAt     *time.Time
	EndsAt       *time.Time
	ReservePrice *float64
}

type UpdateAuctionUseCase struct {
	Auctions ports.AuctionRepository
	Listings ports.ListingReader
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc UpdateAuctionUseCase) Execute(ctx context.Context, cmd UpdateAuctionCommand) (entities.Auction, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "update auctions"); err != nil {
		return entities.Auction{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return entities.Auction{}, err
	}

	auction, err := uc.Auctions.GetAuction(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.AuctionID))
	if err != nil {
		return entities.Auction{}, err
	}
	listing, err := uc.Listings.GetListing(ctx, cmd.Actor.Scope(), auction.ListingID)
	if err != nil {
		return entities.Auction{}, err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, listing.SellerID); err != nil {
		return entities.Auction{}, err
	}

	if cmd.Type != "" {
		if !cmd.Type.Valid() {
			return entities.Auction{}, domainerrors.ErrInvalidAuctionInput
		}
		auction.Type = cmd.Type
	}
	if cmd.ReservePrice != nil && *cmd.ReservePrice <= 0 {
		return entities.Auction{}, domainerrors.ErrInvalidAuctionInput
	}

	auction.SealedBids = cmd.SealedBids || auction.Type == entities.AuctionTypeSealed
	auction.StartsAt = cmd.StartsAt
	auction.EndsAt = cmd.EndsAt
	auction.ReservePrice = cmd.ReservePrice
	auction.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Auctions.UpdateAuction(ctx, cmd.Actor.Scope(), auction); err != nil {
		return entities.Auction{}, err
	}

	logger.Info("auction updated",
		"event", "auction_updated",
		"module", sourceService,
		"layer", "application",
		"auction_id", auction.AuctionID,
		"tenant_id", auction.TenantID,
	)
	return auction, nil
}
