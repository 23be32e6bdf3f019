package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stockyard/contexts/marketplace/auction-service/adapters/memory"
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/domain/services"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"
)

func buyer(id string) tenancy.Actor {
	return tenancy.Actor{ActorID: id, TenantID: "tenant-1", Roles: []string{tenancy.RoleBuyer}}
}

func admin() tenancy.Actor {
	return tenancy.Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleTenantAdmin}}
}

func sellerActor() tenancy.Actor {
	return tenancy.Actor{ActorID: "seller-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleSeller}}
}

func approvedListing(id string) ports.ListingView {
	return ports.ListingView{
		ListingID:     id,
		TenantID:      "tenant-1",
		SellerID:      "seller-1",
		IsActive:      true,
		Approved:      true,
		CurrencyCode:  "USD",
		StartingPrice: 50,
	}
}

func placeBidFixture(store *memory.Store, policy services.BidPolicy) PlaceBidUseCase {
	return PlaceBidUseCase{
		Auctions: store,
		Bids:     store,
		Listings: store,
		Outbox:   store,
		Cache:    store,
		Policy:   policy,
		Clock:    store,
		IDGen:    store,
	}
}

func openAuctionOn(t *testing.T, store *memory.Store, listingID string) entities.Auction {
	t.Helper()
	create := CreateAuctionUseCase{Auctions: store, Listings: store, Outbox: store, Clock: store, IDGen: store}
	auction, err := create.Execute(context.Background(), CreateAuctionCommand{Actor: sellerActor(), ListingID: listingID})
	if err != nil {
		t.Fatalf("create auction failed: %v", err)
	}
	open := OpenAuctionUseCase{Auctions: store, Listings: store, Outbox: store, Clock: store, IDGen: store}
	opened, err := open.Execute(context.Background(), OpenAuctionCommand{Actor: admin(), AuctionID: auction.AuctionID})
	if err != nil {
		t.Fatalf("open auction failed: %v", err)
	}
	return opened
}

func TestPlaceBidAppendsAndKeepsLowerBids(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	auction := openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{})

	if _, err := uc.Execute(context.Background(), PlaceBidCommand{Actor: buyer("b-1"), ListingID: "l-1", Amount: 100}); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	// A lower later bid still lands; it just never becomes the price.
	if _, err := uc.Execute(context.Background(), PlaceBidCommand{Actor: buyer("b-2"), ListingID: "l-1", Amount: 50}); err != nil {
		t.Fatalf("lower bid failed: %v", err)
	}

	bids, err := store.AllBids(context.Background(), tenancy.Scope{TenantID: "tenant-1"}, auction.AuctionID)
	if err != nil {
		t.Fatalf("all bids failed: %v", err)
	}
	if len(bids) != 2 {
		t.Fatalf("both bids must persist, got %d", len(bids))
	}
	price, ok := services.CurrentPrice(bids)
	if !ok || price != 100 {
		t.Fatalf("current price must stay at 100, got %v", price)
	}
}

func TestPlaceBidGuardChain(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{})
	ctx := context.Background()

	platform := tenancy.Actor{ActorID: "pa-1", PlatformAdmin: true, Roles: []string{tenancy.RoleBuyer}}
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: platform, ListingID: "l-1", Amount: 10}); !errors.Is(err, tenancy.ErrPlatformWriteForbidden) {
		t.Fatalf("platform admins must not bid, got %v", err)
	}
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: sellerActor(), ListingID: "l-1", Amount: 10}); !errors.Is(err, tenancy.ErrNotAuthorized) {
		t.Fatalf("sellers must not bid, got %v", err)
	}
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: buyer("b-1"), ListingID: "l-1", Amount: 0}); !errors.Is(err, domainerrors.ErrInvalidBidAmount) {
		t.Fatalf("zero amounts must fail, got %v", err)
	}
}

func TestPlaceBidPreconditionOrder(t *testing.T) {
	store := memory.NewStore(nil)
	uc := placeBidFixture(store, services.BidPolicy{})
	ctx := context.Background()
	b := buyer("b-1")

	// Listing existence comes first.
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: b, ListingID: "missing", Amount: 10}); !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("expected listing not found, got %v", err)
	}

	inactive := approvedListing("l-1")
	inactive.IsActive = false
	store.PutListing(inactive)
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: b, ListingID: "l-1", Amount: 10}); !errors.Is(err, domainerrors.ErrListingNotActive) {
		t.Fatalf("expected inactive listing error, got %v", err)
	}

	unapproved := approvedListing("l-1")
	unapproved.Approved = false
	store.PutListing(unapproved)
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: b, ListingID: "l-1", Amount: 10}); !errors.Is(err, domainerrors.ErrListingNotApproved) {
		t.Fatalf("expected unapproved listing error, got %v", err)
	}

	buyNow := approvedListing("l-1")
	price := 500.0
	buyNow.BuyNowPrice = &price
	store.PutListing(buyNow)
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: b, ListingID: "l-1", Amount: 10}); !errors.Is(err, domainerrors.ErrBuyNowListing) {
		t.Fatalf("expected buy-now error, got %v", err)
	}

	store.PutListing(approvedListing("l-1"))
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: b, ListingID: "l-1", Amount: 10}); !errors.Is(err, domainerrors.ErrAuctionNotFound) {
		t.Fatalf("expected auction not found, got %v", err)
	}
}

func TestPlaceBidOnClosedAuction(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	auction := openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{})

	closeUC := CloseAuctionUseCase{Auctions: store, Bids: store, Outbox: store, Cache: store, Clock: store, IDGen: store}
	if _, err := closeUC.Execute(context.Background(), CloseAuctionCommand{Actor: admin(), AuctionID: auction.AuctionID}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), PlaceBidCommand{Actor: buyer("b-1"), ListingID: "l-1", Amount: 10})
	if !errors.Is(err, domainerrors.ErrAuctionClosed) {
		t.Fatalf("expected closed auction error, got %v", err)
	}
}

func TestPlaceBidEnforcesIncrementPolicy(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{MinIncrement: 10})
	ctx := context.Background()

	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: buyer("b-1"), ListingID: "l-1", Amount: 100}); err != nil {
		t.Fatalf("opening bid failed: %v", err)
	}
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: buyer("b-2"), ListingID: "l-1", Amount: 105}); !errors.Is(err, domainerrors.ErrBidIncrementTooLow) {
		t.Fatalf("105 must miss the increment, got %v", err)
	}
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: buyer("b-2"), ListingID: "l-1", Amount: 110}); err != nil {
		t.Fatalf("110 must pass, got %v", err)
	}
}

func TestPlaceBidInvalidatesPriceCache(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	auction := openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{})
	ctx := context.Background()

	if err := store.SetPrice(ctx, auction.AuctionID, 42); err != nil {
		t.Fatalf("seed cache failed: %v", err)
	}
	if _, err := uc.Execute(ctx, PlaceBidCommand{Actor: buyer("b-1"), ListingID: "l-1", Amount: 100}); err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	if _, hit, _ := store.GetPrice(ctx, auction.AuctionID); hit {
		t.Fatalf("placement must invalidate the cached price")
	}
}

func TestConcurrentPlacementsBothPersist(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	auction := openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{})

	var wg sync.WaitGroup
	amounts := []float64{100, 120}
	errs := make([]error, len(amounts))
	for i, amount := range amounts {
		wg.Add(1)
		go func(i int, amount float64) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), PlaceBidCommand{
				Actor:     buyer("b-1"),
				ListingID: "l-1",
				Amount:    amount,
			})
		}(i, amount)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent bid %d failed: %v", i, err)
		}
	}

	bids, err := store.AllBids(context.Background(), tenancy.Scope{TenantID: "tenant-1"}, auction.AuctionID)
	if err != nil {
		t.Fatalf("all bids failed: %v", err)
	}
	if len(bids) != 2 {
		t.Fatalf("both concurrent bids must persist, got %d", len(bids))
	}
	price, ok := services.CurrentPrice(bids)
	if !ok || price != 120 {
		t.Fatalf("price must equal the true maximum, got %v", price)
	}
}

func TestPlaceBidByAuctionDelegates(t *testing.T) {
	store := memory.NewStore([]ports.ListingView{approvedListing("l-1")})
	auction := openAuctionOn(t, store, "l-1")
	uc := placeBidFixture(store, services.BidPolicy{})

	bid, err := uc.ExecuteByAuction(context.Background(), buyer("b-1"), auction.AuctionID, 75)
	if err != nil {
		t.Fatalf("auction-path bid failed: %v", err)
	}
	if bid.AuctionID != auction.AuctionID || bid.CurrencyCode != "USD" {
		t.Fatalf("bid must inherit auction and listing currency: %+v", bid)
	}
}
