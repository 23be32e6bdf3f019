package commands

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

// UpdateListingCommand carries the editable listing fields. The animal class
// itself is immutable after creation; only the class detail may change.
type UpdateListingCommand struct {
	Actor     tenancy.Actor
	ListingID string

	Title       string
	Description string

	StartingPrice float64
	BuyNowPrice   *float64
	CurrencyCode  string
	Quantity      int
	Location      string

	BirdSpeciesID  string
	LivestockBreed string
	GameSpecies    string
	PoultryBreed   string
}

type DeactivateListingCommand struct {
	Actor     tenancy.Actor
	ListingID string
}

type UpdateListingUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute applies a substantive edit. Editing an approved listing resets its
// compliance to Draft and takes it off the public surface until re-review.
func (uc UpdateListingUseCase) Execute(ctx context.Context, cmd UpdateListingCommand) (entities.Listing, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "update listings"); err != nil {
		return entities.Listing{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return entities.Listing{}, err
	}

	listing, err := uc.Repository.GetListing(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return entities.Listing{}, err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, listing.SellerID); err != nil {
		return entities.Listing{}, err
	}

	if strings.TrimSpace(cmd.Title) == "" || cmd.StartingPrice <= 0 || cmd.Quantity <= 0 {
		return entities.Listing{}, domainerrors.ErrInvalidListingInput
	}

	now := uc.Clock.Now().UTC()
	listing.Title = strings.TrimSpace(cmd.Title)
	listing.Description = strings.TrimSpace(cmd.Description)
	listing.StartingPrice = cmd.StartingPrice
	listing.BuyNowPrice = cmd.BuyNowPrice
	if currency := strings.TrimSpace(cmd.CurrencyCode); currency != "" {
		listing.CurrencyCode = currency
	}
	listing.Quantity = cmd.Quantity
	listing.Location = strings.TrimSpace(cmd.Location)
	listing.UpdatedAt = now

	switch listing.AnimalClass {
	case entities.AnimalClassBird:
		listing.Bird = &entities.BirdDetails{SpeciesID: strings.TrimSpace(cmd.BirdSpeciesID)}
	case entities.AnimalClassLivestock:
		listing.Livestock = &entities.LivestockDetails{Breed: strings.TrimSpace(cmd.LivestockBreed)}
	case entities.AnimalClassGame:
		listing.Game = &entities.GameAnimalDetails{Species: strings.TrimSpace(cmd.GameSpecies)}
	case entities.AnimalClassPoultry:
		listing.Poultry = &entities.PoultryDetails{Breed: strings.TrimSpace(cmd.PoultryBreed)}
	}

	// Any substantive change to an approved listing forces re-review.
	if listing.Compliance.Status == entities.ComplianceStatusApproved {
		listing.Compliance.Status = entities.ComplianceStatusDraft
		listing.Compliance.LastUpdatedAt = now
		listing.IsActive = false
	}

	if err := uc.Repository.UpdateListing(ctx, cmd.Actor.Scope(), listing); err != nil {
		return entities.Listing{}, err
	}

	logger.Info("listing updated",
		"event", "listing_updated",
		"module", sourceService,
		"layer", "application",
		"listing_id", listing.ListingID,
		"tenant_id", listing.TenantID,
		"compliance_status", string(listing.Compliance.Status),
	)
	return listing, nil
}

// Deactivate takes a listing off the public surface. A previously approved
// listing moves to Suspended so the review trail shows why it disappeared.
func (uc UpdateListingUseCase) Deactivate(ctx context.Context, cmd DeactivateListingCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "deactivate listings"); err != nil {
		return err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return err
	}

	listing, err := uc.Repository.GetListing(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, listing.SellerID); err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	listing.IsActive = false
	listing.UpdatedAt = now
	if listing.Compliance.Status == entities.ComplianceStatusApproved {
		listing.Compliance.Status = entities.ComplianceStatusSuspended
		listing.Compliance.ReviewNotes = "Deactivated by tenant."
		listing.Compliance.LastUpdatedAt = now
	}

	if err := uc.Repository.UpdateListing(ctx, cmd.Actor.Scope(), listing); err != nil {
		return err
	}

	logger.Info("listing deactivated",
		"event", "listing_deactivated",
		"module", sourceService,
		"layer", "application",
		"listing_id", listing.ListingID,
		"tenant_id", listing.TenantID,
	)
	return nil
}
