package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockyard/contexts/marketplace/listing-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	"stockyard/contexts/marketplace/listing-service/ports"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"
)

func listingFor(tenantID, id string) entities.Listing {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return entities.Listing{
		ListingID:     id,
		TenantID:      tenantID,
		SellerID:      "seller-1",
		Title:         "Boer Goat",
		StartingPrice: 80,
		CurrencyCode:  "USD",
		Quantity:      1,
		AnimalClass:   entities.AnimalClassLivestock,
		Livestock:     &entities.LivestockDetails{Breed: "Boer"},
		Compliance:    entities.Compliance{ListingID: id, TenantID: tenantID, Status: entities.ComplianceStatusDraft},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestStoreScopesReadsAndWrites(t *testing.T) {
	store := NewStore([]entities.Listing{listingFor("tenant-1", "l-1")})
	ctx := context.Background()

	own := tenancy.Scope{TenantID: "tenant-1"}
	foreign := tenancy.Scope{TenantID: "tenant-2"}
	admin := tenancy.Scope{AllTenants: true}

	if _, err := store.GetListing(ctx, own, "l-1"); err != nil {
		t.Fatalf("owner scope read failed: %v", err)
	}
	if _, err := store.GetListing(ctx, foreign, "l-1"); !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("foreign scope must see nothing, got %v", err)
	}
	if _, err := store.GetListing(ctx, admin, "l-1"); err != nil {
		t.Fatalf("platform scope read failed: %v", err)
	}

	if err := store.CreateListing(ctx, foreign, listingFor("tenant-1", "l-2")); !errors.Is(err, tenancy.ErrTenantMismatch) {
		t.Fatalf("cross-tenant create must fail, got %v", err)
	}

	updated := listingFor("tenant-1", "l-1")
	updated.Title = "Boer Goat (doe)"
	if err := store.UpdateListing(ctx, foreign, updated); !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("cross-tenant update must look like not-found, got %v", err)
	}
	if err := store.UpdateListing(ctx, own, updated); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
}

func TestStoreEmptyScopeMatchesNothing(t *testing.T) {
	store := NewStore([]entities.Listing{listingFor("tenant-1", "l-1")})

	page, err := store.ListListings(context.Background(), tenancy.Scope{}, ports.ListingFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("an empty scope must match no rows, got %d", page.Total)
	}
}

func TestStoreDocumentTypesAreDeduplicated(t *testing.T) {
	store := NewStore([]entities.Listing{listingFor("tenant-1", "l-1")})
	ctx := context.Background()
	scope := tenancy.Scope{TenantID: "tenant-1"}

	doc := entities.ListingDocument{
		ListingID:    "l-1",
		TenantID:     "tenant-1",
		DocumentType: entities.DocumentTypeHealthCertificate,
		UploadedAt:   store.Now(),
	}
	if err := store.RecordDocument(ctx, scope, doc); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := store.RecordDocument(ctx, scope, doc); err != nil {
		t.Fatalf("re-record failed: %v", err)
	}

	types, err := store.ListUploadedDocumentTypes(ctx, scope, "l-1")
	if err != nil {
		t.Fatalf("list types failed: %v", err)
	}
	if len(types) != 1 {
		t.Fatalf("expected one distinct type, got %v", types)
	}
}

func TestStoreOutboxLifecycle(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"o-1", "o-2"} {
		msg := outbox.Message{
			OutboxID:  id,
			EventType: "listing.created",
			Payload:   []byte(`{}`),
			Status:    outbox.StatusPending,
			CreatedAt: created.Add(time.Duration(i) * time.Second),
		}
		if err := store.AppendOutbox(ctx, msg); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 || pending[0].OutboxID != "o-1" {
		t.Fatalf("expected both pending oldest first, got %+v", pending)
	}

	if err := store.MarkOutboxPublished(ctx, "o-1", created.Add(time.Minute)); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, _ = store.ListPendingOutbox(ctx, 10)
	if len(pending) != 1 || pending[0].OutboxID != "o-2" {
		t.Fatalf("published message must leave the pending set, got %+v", pending)
	}
}
