package queries

import (
	"context"
	"log/slog"
	"strings"

	application "stockyard/contexts/marketplace/listing-service/application"
	"stockyard/contexts/marketplace/listing-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	"stockyard/contexts/marketplace/listing-service/ports"
	"stockyard/internal/shared/tenancy"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// ListingsQuery is the read-side filter shared by the list operations.
type ListingsQuery struct {
	AnimalClass string
	SpeciesID   string
	Status      string
	ActiveOnly  bool
	Skip        int
	Take        int
}

// QueryUseCase composes the read side over the tenant-scoped store. Each
// operation applies its own visibility rule before touching the repository.
type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Browse is the buyer-facing surface: only active, approved listings exist
// here, whatever the filter says.
func (uc QueryUseCase) Browse(ctx context.Context, actor tenancy.Actor, query ListingsQuery) (ports.ListingPage, error) {
	filter, err := normalize(query)
	if err != nil {
		return ports.ListingPage{}, err
	}
	filter.ActiveOnly = true
	filter.Status = entities.ComplianceStatusApproved

	return uc.Repository.ListListings(ctx, actor.Scope(), filter)
}

// MyListings returns a seller's own listings in any compliance state.
func (uc QueryUseCase) MyListings(ctx context.Context, actor tenancy.Actor, sellerID string, query ListingsQuery) (ports.ListingPage, error) {
	if err := tenancy.RequireTenantUser(actor); err != nil {
		return ports.ListingPage{}, err
	}
	if err := tenancy.RequireRole(actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return ports.ListingPage{}, err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(actor, strings.TrimSpace(sellerID)); err != nil {
		return ports.ListingPage{}, err
	}

	filter, err := normalize(query)
	if err != nil {
		return ports.ListingPage{}, err
	}
	filter.SellerID = strings.TrimSpace(sellerID)

	return uc.Repository.ListListings(ctx, actor.Scope(), filter)
}

// TenantListings gives tenant admins the full view of their own tenant.
func (uc QueryUseCase) TenantListings(ctx context.Context, actor tenancy.Actor, query ListingsQuery) (ports.ListingPage, error) {
	if err := tenancy.RequireTenantUser(actor); err != nil {
		return ports.ListingPage{}, err
	}
	if err := tenancy.RequireRole(actor, tenancy.RoleTenantAdmin); err != nil {
		return ports.ListingPage{}, err
	}

	filter, err := normalize(query)
	if err != nil {
		return ports.ListingPage{}, err
	}
	return uc.Repository.ListListings(ctx, actor.Scope(), filter)
}

// AllListings is the cross-tenant platform view.
func (uc QueryUseCase) AllListings(ctx context.Context, actor tenancy.Actor, query ListingsQuery) (ports.ListingPage, error) {
	if err := tenancy.RequirePlatformAdmin(actor); err != nil {
		return ports.ListingPage{}, err
	}
	if err := tenancy.RequireRole(actor,
		tenancy.RolePlatformSuperAdmin,
		tenancy.RolePlatformComplianceAdmin,
		tenancy.RolePlatformSupport,
	); err != nil {
		return ports.ListingPage{}, err
	}

	filter, err := normalize(query)
	if err != nil {
		return ports.ListingPage{}, err
	}
	return uc.Repository.ListListings(ctx, actor.Scope(), filter)
}

// GetListing resolves a single listing. Buyers only see approved listings;
// anything else behaves as not found for them.
func (uc QueryUseCase) GetListing(ctx context.Context, actor tenancy.Actor, listingID string) (entities.Listing, error) {
	if err := tenancy.RequireTenantUser(actor); err != nil {
		return entities.Listing{}, err
	}

	listing, err := uc.Repository.GetListing(ctx, actor.Scope(), strings.TrimSpace(listingID))
	if err != nil {
		return entities.Listing{}, err
	}
	if actor.HasRole(tenancy.RoleBuyer) && listing.Compliance.Status != entities.ComplianceStatusApproved {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}

	logger := application.ResolveLogger(uc.Logger)
	logger.Debug("listing resolved",
		"event", "listing_resolved",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listing.ListingID,
	)
	return listing, nil
}

func normalize(query ListingsQuery) (ports.ListingFilter, error) {
	if query.Skip < 0 || query.Take < 0 {
		return ports.ListingFilter{}, domainerrors.ErrInvalidListFilter
	}
	take := query.Take
	if take == 0 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}

	filter := ports.ListingFilter{
		SpeciesID:  strings.TrimSpace(query.SpeciesID),
		ActiveOnly: query.ActiveOnly,
		Skip:       query.Skip,
		Take:       take,
	}
	switch strings.ToLower(strings.TrimSpace(query.AnimalClass)) {
	case "bird":
		filter.AnimalClass = entities.AnimalClassBird
	case "livestock":
		filter.AnimalClass = entities.AnimalClassLivestock
	case "game":
		filter.AnimalClass = entities.AnimalClassGame
	case "poultry":
		filter.AnimalClass = entities.AnimalClassPoultry
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		filter.Status = entities.ComplianceStatus(status)
	}
	return filter, nil
}
