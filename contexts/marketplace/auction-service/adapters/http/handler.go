package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"stockyard/contexts/marketplace/auction-service/application/commands"
	"stockyard/contexts/marketplace/auction-service/application/queries"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	httptransport "stockyard/contexts/marketplace/auction-service/transport/http"
	"stockyard/internal/shared/tenancy"
)

type Handler struct {
	CreateAuction commands.CreateAuctionUseCase
	UpdateAuction commands.UpdateAuctionUseCase
	OpenAuction   commands.OpenAuctionUseCase
	CloseAuction  commands.CloseAuctionUseCase
	PlaceBid      commands.PlaceBidUseCase
	CurrentPrice  queries.CurrentPriceUseCase
	ListBids      queries.ListBidsUseCase
	Logger        *slog.Logger
}

func (h Handler) CreateAuctionHandler(
	ctx context.Context,
	actor tenancy.Actor,
	req httptransport.CreateAuctionRequest,
) (httptransport.AuctionResponse, error) {
	startsAt, err := parseOptionalTime(req.StartsAt)
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}
	endsAt, err := parseOptionalTime(req.EndsAt)
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}

	auction, err := h.CreateAuction.Execute(ctx, commands.CreateAuctionCommand{
		Actor:        actor,
		ListingID:    req.ListingID,
		Type:         entities.AuctionType(req.Type),
		SealedBids:   req.SealedBids,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		ReservePrice: req.ReservePrice,
	})
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}
	return httptransport.AuctionResponse{Auction: mapAuction(auction)}, nil
}

func (h Handler) UpdateAuctionHandler(
	ctx context.Context,
	actor tenancy.Actor,
	auctionID string,
	req httptransport.UpdateAuctionRequest,
) (httptransport.AuctionResponse, error) {
	startsAt, err := parseOptionalTime(req.StartsAt)
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}
	endsAt, err := parseOptionalTime(req.EndsAt)
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}

	auction, err := h.UpdateAuction.Execute(ctx, commands.UpdateAuctionCommand{
		Actor:        actor,
		AuctionID:    auctionID,
		Type:         entities.AuctionType(req.Type),
		SealedBids:   req.SealedBids,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		ReservePrice: req.ReservePrice,
	})
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}
	return httptransport.AuctionResponse{Auction: mapAuction(auction)}, nil
}

func (h Handler) OpenAuctionHandler(ctx context.Context, actor tenancy.Actor, auctionID string) (httptransport.AuctionResponse, error) {
	auction, err := h.OpenAuction.Execute(ctx, commands.OpenAuctionCommand{Actor: actor, AuctionID: auctionID})
	if err != nil {
		return httptransport.AuctionResponse{}, err
	}
	return httptransport.AuctionResponse{Auction: mapAuction(auction)}, nil
}

func (h Handler) CloseAuctionHandler(ctx context.Context, actor tenancy.Actor, auctionID string) (httptransport.CloseAuctionResponse, error) {
	result, err := h.CloseAuction.Execute(ctx, commands.CloseAuctionCommand{Actor: actor, AuctionID: auctionID})
	if err != nil {
		return httptransport.CloseAuctionResponse{}, err
	}
	resp := httptransport.CloseAuctionResponse{Auction: mapAuction(result.Auction)}
	if result.WinningBid != nil {
		bid := mapBid(*result.WinningBid)
		resp.WinningBid = &bid
	}
	return resp, nil
}

func (h Handler) PlaceBidHandler(
	ctx context.Context,
	actor tenancy.Actor,
	listingID string,
	req httptransport.PlaceBidRequest,
) (httptransport.PlaceBidResponse, error) {
	bid, err := h.PlaceBid.Execute(ctx, commands.PlaceBidCommand{
		Actor:     actor,
		ListingID: listingID,
		Amount:    req.Amount,
	})
	if err != nil {
		return httptransport.PlaceBidResponse{}, err
	}
	return httptransport.PlaceBidResponse{Bid: mapBid(bid)}, nil
}

func (h Handler) PlaceBidByAuctionHandler(
	ctx context.Context,
	actor tenancy.Actor,
	auctionID string,
	req httptransport.PlaceBidRequest,
) (httptransport.PlaceBidResponse, error) {
	bid, err := h.PlaceBid.ExecuteByAuction(ctx, actor, auctionID, req.Amount)
	if err != nil {
		return httptransport.PlaceBidResponse{}, err
	}
	return httptransport.PlaceBidResponse{Bid: mapBid(bid)}, nil
}

func (h Handler) CurrentPriceHandler(ctx context.Context, actor tenancy.Actor, auctionID string) (httptransport.CurrentPriceResponse, error) {
	result, err := h.CurrentPrice.Execute(ctx, actor, auctionID)
	if err != nil {
		return httptransport.CurrentPriceResponse{}, err
	}
	return httptransport.CurrentPriceResponse{
		AuctionID: result.AuctionID,
		Amount:    result.Amount,
		Available: result.Available,
	}, nil
}

func (h Handler) ListBidsHandler(ctx context.Context, actor tenancy.Actor, query queries.ListBidsQuery) (httptransport.ListBidsResponse, error) {
	page, err := h.ListBids.Execute(ctx, actor, query)
	if err != nil {
		return httptransport.ListBidsResponse{}, err
	}
	items := make([]httptransport.BidDTO, 0, len(page.Items))
	for _, bid := range page.Items {
		items = append(items, mapBid(bid))
	}
	return httptransport.ListBidsResponse{Items: items, Total: page.Total}, nil
}

func mapAuction(auction entities.Auction) httptransport.AuctionDTO {
	return httptransport.AuctionDTO{
		AuctionID:     auction.AuctionID,
		TenantID:      auction.TenantID,
		ListingID:     auction.ListingID,
		Type:          string(auction.Type),
		SealedBids:    auction.SealedBids,
		StartsAt:      formatTime(auction.StartsAt),
		EndsAt:        formatTime(auction.EndsAt),
		StartingPrice: auction.StartingPrice,
		ReservePrice:  auction.ReservePrice,
		BuyNowPrice:   auction.BuyNowPrice,
		Closed:        auction.Closed,
		WinningBidID:  auction.WinningBidID,
		CreatedAt:     auction.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     auction.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func mapBid(bid entities.Bid) httptransport.BidDTO {
	return httptransport.BidDTO{
		BidID:        bid.BidID,
		AuctionID:    bid.AuctionID,
		BidderID:     bid.BidderID,
		Amount:       bid.Amount,
		CurrencyCode: bid.CurrencyCode,
		PlacedAt:     bid.PlacedAt.UTC().Format(time.RFC3339),
	}
}

func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domainerrors.ErrInvalidAuctionInput
	}
	utc := parsed.UTC()
	return &utc, nil
}
