package queries

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type ListBidsQuery struct {
	AuctionID string
	Skip      int
	Take      int
}

type ListBidsUseCase struct {
	Auctions ports.AuctionRepository
	Bids     ports.BidRepository
	Listings ports.ListingReader
	Logger   *slog.Logger
}

// Execute pages bids newest first. Buyers only see the bid history while the
// listing is publicly visible; sellers, tenant admins, and platform roles see
// it in any state within their scope.
func (uc ListBidsUseCase) Execute(ctx context.Context, actor tenancy.Actor, query ListBidsQuery) (ports.BidPage, error) {
	if err := tenancy.RequireTenantUser(actor); err != nil {
		return ports.BidPage{}, err
	}
	if query.Skip < 0 || query.Take < 0 {
		return ports.BidPage{}, domainerrors.ErrInvalidListFilter
	}
	take := query.Take
	if take == 0 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}

	auction, err := uc.Auctions.GetAuction(ctx, actor.Scope(), strings.TrimSpace(query.AuctionID))
	if err != nil {
		return ports.BidPage{}, err
	}

	if actor.HasRole(tenancy.RoleBuyer) && !actor.HasRole(tenancy.RoleTenantAdmin) && !actor.HasRole(tenancy.RoleSeller) {
		listing, err := uc.Listings.GetListing(ctx, actor.Scope(), auction.ListingID)
		if err != nil {
			return ports.BidPage{}, err
		}
		if !listing.IsActive || !listing.Approved {
			return ports.BidPage{}, domainerrors.ErrBidsNotAvailable
		}
	}

	return uc.Bids.ListBids(ctx, actor.Scope(), auction.AuctionID, query.Skip, take)
}
