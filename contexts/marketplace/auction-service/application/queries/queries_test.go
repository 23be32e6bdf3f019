package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockyard/contexts/marketplace/auction-service/adapters/memory"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

func buyerActor() tenancy.Actor {
	return tenancy.Actor{ActorID: "buyer-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleBuyer}}
}

func adminActor() tenancy.Actor {
	return tenancy.Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleTenantAdmin}}
}

func seedAuction(t *testing.T, store *memory.Store, listing ports.ListingView, bids []entities.Bid) entities.Auction {
	t.Helper()
	store.PutListing(listing)
	auction := entities.Auction{
		AuctionID: "a-1",
		TenantID:  listing.TenantID,
		ListingID: listing.ListingID,
		Type:      entities.AuctionTypeEnglish,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.CreateAuction(context.Background(), tenancy.Scope{TenantID: listing.TenantID}, auction); err != nil {
		t.Fatalf("seed auction failed: %v", err)
	}
	for _, bid := range bids {
		if err := store.AppendBid(context.Background(), tenancy.Scope{TenantID: listing.TenantID}, bid); err != nil {
			t.Fatalf("seed bid failed: %v", err)
		}
	}
	return auction
}

func publicListing() ports.ListingView {
	return ports.ListingView{
		ListingID:    "l-1",
		TenantID:     "tenant-1",
		SellerID:     "seller-1",
		IsActive:     true,
		Approved:     true,
		CurrencyCode: "USD",
	}
}

func seedBid(id string, amount float64, placedAt time.Time) entities.Bid {
	return entities.Bid{
		BidID:        id,
		TenantID:     "tenant-1",
		AuctionID:    "a-1",
		BidderID:     "buyer-9",
		Amount:       amount,
		CurrencyCode: "USD",
		PlacedAt:     placedAt,
	}
}

func TestCurrentPriceReadThrough(t *testing.T) {
	store := memory.NewStore(nil)
	now := time.Now().UTC()
	auction := seedAuction(t, store, publicListing(), []entities.Bid{
		seedBid("b-1", 100, now),
		seedBid("b-2", 80, now.Add(time.Second)),
	})
	uc := CurrentPriceUseCase{Auctions: store, Bids: store, Cache: store}
	ctx := context.Background()

	result, err := uc.Execute(ctx, buyerActor(), auction.AuctionID)
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !result.Available || result.Amount != 100 {
		t.Fatalf("expected price 100, got %+v", result)
	}

	// The miss must have repopulated the cache.
	if amount, hit, _ := store.GetPrice(ctx, auction.AuctionID); !hit || amount != 100 {
		t.Fatalf("cache not repopulated: hit=%v amount=%v", hit, amount)
	}

	// A stale cached value is served as-is until invalidated.
	if err := store.SetPrice(ctx, auction.AuctionID, 999); err != nil {
		t.Fatalf("seed cache failed: %v", err)
	}
	result, _ = uc.Execute(ctx, buyerActor(), auction.AuctionID)
	if result.Amount != 999 {
		t.Fatalf("cache hit must win, got %v", result.Amount)
	}
}

func TestCurrentPriceWithoutBids(t *testing.T) {
	store := memory.NewStore(nil)
	auction := seedAuction(t, store, publicListing(), nil)
	uc := CurrentPriceUseCase{Auctions: store, Bids: store, Cache: store}

	result, err := uc.Execute(context.Background(), buyerActor(), auction.AuctionID)
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if result.Available {
		t.Fatalf("no bids must mean no price, got %+v", result)
	}
}

func TestCurrentPriceRequiresTenantUser(t *testing.T) {
	store := memory.NewStore(nil)
	auction := seedAuction(t, store, publicListing(), nil)
	uc := CurrentPriceUseCase{Auctions: store, Bids: store, Cache: store}

	_, err := uc.Execute(context.Background(), tenancy.Actor{}, auction.AuctionID)
	if !errors.Is(err, tenancy.ErrUnauthorized) {
		t.Fatalf("anonymous price reads must fail, got %v", err)
	}
}

func TestListBidsNewestFirstAndPaged(t *testing.T) {
	store := memory.NewStore(nil)
	now := time.Now().UTC()
	auction := seedAuction(t, store, publicListing(), []entities.Bid{
		seedBid("b-1", 100, now),
		seedBid("b-2", 120, now.Add(time.Second)),
		seedBid("b-3", 140, now.Add(2*time.Second)),
	})
	uc := ListBidsUseCase{Auctions: store, Bids: store, Listings: store}

	page, err := uc.Execute(context.Background(), adminActor(), ListBidsQuery{AuctionID: auction.AuctionID, Take: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 {
		t.Fatalf("expected total 3 with 2 items, got %d/%d", page.Total, len(page.Items))
	}
	if page.Items[0].BidID != "b-3" || page.Items[1].BidID != "b-2" {
		t.Fatalf("expected newest first, got %s %s", page.Items[0].BidID, page.Items[1].BidID)
	}

	if _, err := uc.Execute(context.Background(), adminActor(), ListBidsQuery{AuctionID: auction.AuctionID, Skip: -1}); !errors.Is(err, domainerrors.ErrInvalidListFilter) {
		t.Fatalf("negative skip must fail, got %v", err)
	}
}

func TestListBidsBuyerVisibility(t *testing.T) {
	store := memory.NewStore(nil)
	auction := seedAuction(t, store, publicListing(), []entities.Bid{
		seedBid("b-1", 100, time.Now().UTC()),
	})
	uc := ListBidsUseCase{Auctions: store, Bids: store, Listings: store}
	ctx := context.Background()

	if _, err := uc.Execute(ctx, buyerActor(), ListBidsQuery{AuctionID: auction.AuctionID}); err != nil {
		t.Fatalf("buyer must see bids on a public listing: %v", err)
	}

	hidden := publicListing()
	hidden.IsActive = false
	store.PutListing(hidden)
	if _, err := uc.Execute(ctx, buyerActor(), ListBidsQuery{AuctionID: auction.AuctionID}); !errors.Is(err, domainerrors.ErrBidsNotAvailable) {
		t.Fatalf("buyer must not see bids once the listing is hidden, got %v", err)
	}

	// The tenant admin still sees the history.
	if _, err := uc.Execute(ctx, adminActor(), ListBidsQuery{AuctionID: auction.AuctionID}); err != nil {
		t.Fatalf("admin must see bids in any state: %v", err)
	}
}
