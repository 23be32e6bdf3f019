package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockyard/contexts/marketplace/listing-service/adapters/memory"
	"stockyard/contexts/marketplace/listing-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	"stockyard/internal/shared/tenancy"
)

func seedListing(id, tenantID, sellerID string, status entities.ComplianceStatus, active bool, createdAt time.Time) entities.Listing {
	return entities.Listing{
		ListingID:     id,
		TenantID:      tenantID,
		SellerID:      sellerID,
		Title:         "Listing " + id,
		StartingPrice: 100,
		CurrencyCode:  "USD",
		Quantity:      1,
		IsActive:      active,
		AnimalClass:   entities.AnimalClassBird,
		Bird:          &entities.BirdDetails{SpeciesID: "species-1"},
		Compliance: entities.Compliance{
			ListingID: id,
			TenantID:  tenantID,
			Status:    status,
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func seededStore() *memory.Store {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return memory.NewStore([]entities.Listing{
		seedListing("l-1", "tenant-1", "seller-1", entities.ComplianceStatusApproved, true, base),
		seedListing("l-2", "tenant-1", "seller-1", entities.ComplianceStatusDraft, false, base.Add(time.Minute)),
		seedListing("l-3", "tenant-1", "seller-2", entities.ComplianceStatusApproved, true, base.Add(2*time.Minute)),
		seedListing("l-4", "tenant-2", "seller-9", entities.ComplianceStatusApproved, true, base.Add(3*time.Minute)),
	})
}

func TestBrowseShowsOnlyActiveApprovedInTenant(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}
	buyer := tenancy.Actor{ActorID: "buyer-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleBuyer}}

	// Requesting draft status is overridden by the public visibility rule.
	page, err := uc.Browse(context.Background(), buyer, ListingsQuery{Status: "draft"})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 public listings in tenant-1, got %d", page.Total)
	}
	for _, item := range page.Items {
		if item.Compliance.Status != entities.ComplianceStatusApproved || !item.IsActive {
			t.Fatalf("non-public listing leaked: %+v", item)
		}
		if item.TenantID != "tenant-1" {
			t.Fatalf("foreign tenant listing leaked: %s", item.ListingID)
		}
	}
	// Newest first.
	if page.Items[0].ListingID != "l-3" {
		t.Fatalf("expected newest listing first, got %s", page.Items[0].ListingID)
	}
}

func TestBrowseAnonymousSeesNothing(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}

	page, err := uc.Browse(context.Background(), tenancy.Actor{}, ListingsQuery{})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("anonymous scope must match no rows, got %d", page.Total)
	}
}

func TestMyListingsIncludesDrafts(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}
	seller := tenancy.Actor{ActorID: "seller-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleSeller}}

	page, err := uc.MyListings(context.Background(), seller, "seller-1", ListingsQuery{})
	if err != nil {
		t.Fatalf("my listings failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("seller-1 owns 2 listings, got %d", page.Total)
	}
}

func TestMyListingsEnforcesOwnership(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}
	seller := tenancy.Actor{ActorID: "seller-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleSeller}}

	if _, err := uc.MyListings(context.Background(), seller, "seller-2", ListingsQuery{}); !errors.Is(err, tenancy.ErrOwnershipRequired) {
		t.Fatalf("expected ownership error, got %v", err)
	}

	admin := tenancy.Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleTenantAdmin}}
	page, err := uc.MyListings(context.Background(), admin, "seller-2", ListingsQuery{})
	if err != nil {
		t.Fatalf("tenant admin may view any seller in their tenant: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("seller-2 owns 1 listing, got %d", page.Total)
	}
}

func TestTenantListingsRequiresTenantAdmin(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}

	seller := tenancy.Actor{ActorID: "seller-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleSeller}}
	if _, err := uc.TenantListings(context.Background(), seller, ListingsQuery{}); !errors.Is(err, tenancy.ErrNotAuthorized) {
		t.Fatalf("seller must not see the tenant-wide view, got %v", err)
	}

	admin := tenancy.Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleTenantAdmin}}
	page, err := uc.TenantListings(context.Background(), admin, ListingsQuery{})
	if err != nil {
		t.Fatalf("tenant listings failed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("tenant-1 has 3 listings, got %d", page.Total)
	}
}

func TestAllListingsCrossesTenants(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}
	platform := tenancy.Actor{ActorID: "pa-1", PlatformAdmin: true, Roles: []string{tenancy.RolePlatformSupport}}

	page, err := uc.AllListings(context.Background(), platform, ListingsQuery{})
	if err != nil {
		t.Fatalf("all listings failed: %v", err)
	}
	if page.Total != 4 {
		t.Fatalf("platform view must cross tenants, got %d", page.Total)
	}

	admin := tenancy.Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleTenantAdmin}}
	if _, err := uc.AllListings(context.Background(), admin, ListingsQuery{}); !errors.Is(err, tenancy.ErrPlatformAdminRequired) {
		t.Fatalf("tenant admin must not cross tenants, got %v", err)
	}
}

func TestGetListingHidesUnapprovedFromBuyers(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}
	buyer := tenancy.Actor{ActorID: "buyer-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleBuyer}}

	if _, err := uc.GetListing(context.Background(), buyer, "l-2"); !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("buyer must not see a draft listing, got %v", err)
	}

	listing, err := uc.GetListing(context.Background(), buyer, "l-1")
	if err != nil {
		t.Fatalf("buyer must see approved listing: %v", err)
	}
	if listing.ListingID != "l-1" {
		t.Fatalf("unexpected listing: %s", listing.ListingID)
	}

	seller := tenancy.Actor{ActorID: "seller-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleSeller}}
	if _, err := uc.GetListing(context.Background(), seller, "l-2"); err != nil {
		t.Fatalf("seller must see their own draft: %v", err)
	}
}

func TestPaginationDefaultsAndCap(t *testing.T) {
	uc := QueryUseCase{Repository: seededStore()}
	admin := tenancy.Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{tenancy.RoleTenantAdmin}}

	if _, err := uc.TenantListings(context.Background(), admin, ListingsQuery{Skip: -1}); !errors.Is(err, domainerrors.ErrInvalidListFilter) {
		t.Fatalf("negative skip must be rejected, got %v", err)
	}
	if _, err := uc.TenantListings(context.Background(), admin, ListingsQuery{Take: -5}); !errors.Is(err, domainerrors.ErrInvalidListFilter) {
		t.Fatalf("negative take must be rejected, got %v", err)
	}

	page, err := uc.TenantListings(context.Background(), admin, ListingsQuery{Skip: 1, Take: 1})
	if err != nil {
		t.Fatalf("paged query failed: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 {
		t.Fatalf("expected total 3 with 1 page item, got total %d items %d", page.Total, len(page.Items))
	}
}
