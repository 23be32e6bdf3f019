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

type CloseAuctionCommand struct {
	Actor     tenancy.Actor
	AuctionID string
}

// CloseAuctionResult reports the final state and, when any bids were placed,
// the resolved winner. Settlement is not part of closing.
type CloseAuctionResult struct {
	Auction    entities.Auction
	WinningBid *entities.Bid
}

type CloseAuctionUseCase struct {
	Auctions ports.AuctionRepository
	Bids     ports.BidRepository
	Outbox   ports.OutboxRepository
	Cache    ports.PriceCache
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CloseAuctionUseCase) Execute(ctx context.Context, cmd CloseAuctionCommand) (CloseAuctionResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "close auctions"); err != nil {
		return CloseAuctionResult{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin); err != nil {
		return CloseAuctionResult{}, err
	}

	auction, err := uc.Auctions.GetAuction(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.AuctionID))
	if err != nil {
		return CloseAuctionResult{}, err
	}
	if auction.Closed {
		return CloseAuctionResult{}, domainerrors.ErrAuctionAlreadyClosed
	}

	bids, err := uc.Bids.AllBids(ctx, cmd.Actor.Scope(), auction.AuctionID)
	if err != nil {
		return CloseAuctionResult{}, err
	}

	now := uc.Clock.Now().UTC()
	auction.Closed = true
	if auction.EndsAt == nil {
		auction.EndsAt = &now
	}
	auction.UpdatedAt = now

	result := CloseAuctionResult{Auction: auction}
	if winner, ok := services.WinningBid(bids); ok {
		auction.WinningBidID = winner.BidID
		result.Auction = auction
		result.WinningBid = &winner
	}

	if err := uc.Auctions.UpdateAuction(ctx, cmd.Actor.Scope(), auction); err != nil {
		return CloseAuctionResult{}, err
	}
	payload := map[string]any{"listing_id": auction.ListingID, "bid_count": len(bids)}
	if result.WinningBid != nil {
		payload["winning_bid_id"] = result.WinningBid.BidID
		payload["winning_amount"] = result.WinningBid.Amount
	}
	if err := appendAuctionEvent(ctx, uc.Outbox, uc.IDGen, "auction.closed", auction.TenantID, "auction", auction.AuctionID, now, payload); err != nil {
		return CloseAuctionResult{}, err
	}

	// A closed auction's price no longer changes; drop the cached value so
	// readers fall back to the store.
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

	logger.Info("auction closed",
		"event", "auction_closed",
		"module", sourceService,
		"layer", "application",
		"auction_id", auction.AuctionID,
		"tenant_id", auction.TenantID,
		"bid_count", len(bids),
	)
	return result, nil
}
