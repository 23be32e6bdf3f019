package queries

import (
	"context"
	"log/slog"
	"strings"

	application "stockyard/contexts/marketplace/auction-service/application"
	"stockyard/contexts/marketplace/auction-service/domain/services"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

// PriceResult carries the current price; Available is false when the auction
// has no bids yet.
type PriceResult struct {
	AuctionID string
	Amount    float64
	Available bool
}

type CurrentPriceUseCase struct {
	Auctions ports.AuctionRepository
	Bids     ports.BidRepository
	Cache    ports.PriceCache
	Logger   *slog.Logger
}

// Execute serves the current price read-through: cache hit wins, a miss is
// recomputed from the bid store and written back. Cache failures degrade to
// store reads.
func (uc CurrentPriceUseCase) Execute(ctx context.Context, actor tenancy.Actor, auctionID string) (PriceResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantUser(actor); err != nil {
		return PriceResult{}, err
	}

	auction, err := uc.Auctions.GetAuction(ctx, actor.Scope(), strings.TrimSpace(auctionID))
	if err != nil {
		return PriceResult{}, err
	}

	if uc.Cache != nil {
		amount, hit, err := uc.Cache.GetPrice(ctx, auction.AuctionID)
		if err != nil {
			logger.Warn("price cache read failed",
				"event", "price_cache_read_failed",
				"module", "marketplace/auction-service",
				"layer", "application",
				"auction_id", auction.AuctionID,
				"error", err,
			)
		} else if hit {
			return PriceResult{AuctionID: auction.AuctionID, Amount: amount, Available: true}, nil
		}
	}

	bids, err := uc.Bids.AllBids(ctx, actor.Scope(), auction.AuctionID)
	if err != nil {
		return PriceResult{}, err
	}
	amount, available := services.CurrentPrice(bids)
	if available && uc.Cache != nil {
		if err := uc.Cache.SetPrice(ctx, auction.AuctionID, amount); err != nil {
			logger.Warn("price cache write failed",
				"event", "price_cache_write_failed",
				"module", "marketplace/auction-service",
				"layer", "application",
				"auction_id", auction.AuctionID,
				"error", err,
			)
		}
	}
	return PriceResult{AuctionID: auction.AuctionID, Amount: amount, Available: available}, nil
}
