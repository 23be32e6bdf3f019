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

// CreateListingCommand is the write-model input for listing creation. Exactly
// one animal-class detail field must match AnimalClass.
type CreateListingCommand struct {
	Actor tenancy.Actor

	SellerID    string
	Title       string
	Description string

	StartingPrice float64
	BuyNowPrice   *float64
	CurrencyCode  string
	Quantity      int
	Location      string

	AnimalClass    entities.AnimalClass
	BirdSpeciesID  string
	LivestockBreed string
	GameSpecies    string
	PoultryBreed   string
}

type CreateListingUseCase struct {
	Repository ports.Repository
	Outbox     ports.OutboxRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute creates a listing in its tenant with compliance at Draft and the
// active flag off. Guard order is part of the contract: write context first,
// then role, then ownership.
func (uc CreateListingUseCase) Execute(ctx context.Context, cmd CreateListingCommand) (entities.Listing, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "create listings"); err != nil {
		return entities.Listing{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return entities.Listing{}, err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, strings.TrimSpace(cmd.SellerID)); err != nil {
		return entities.Listing{}, err
	}

	listingID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Listing{}, err
	}
	now := uc.Clock.Now().UTC()

	currency := strings.TrimSpace(cmd.CurrencyCode)
	if currency == "" {
		currency = "USD"
	}
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}

	listing := entities.Listing{
		ListingID:     listingID,
		TenantID:      cmd.Actor.TenantID,
		SellerID:      strings.TrimSpace(cmd.SellerID),
		Title:         strings.TrimSpace(cmd.Title),
		Description:   strings.TrimSpace(cmd.Description),
		StartingPrice: cmd.StartingPrice,
		BuyNowPrice:   cmd.BuyNowPrice,
		CurrencyCode:  currency,
		Quantity:      quantity,
		Location:      strings.TrimSpace(cmd.Location),
		IsActive:      false,
		AnimalClass:   cmd.AnimalClass,
		Compliance: entities.Compliance{
			ListingID:     listingID,
			TenantID:      cmd.Actor.TenantID,
			Status:        entities.ComplianceStatusDraft,
			LastUpdatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch cmd.AnimalClass {
	case entities.AnimalClassBird:
		listing.Bird = &entities.BirdDetails{SpeciesID: strings.TrimSpace(cmd.BirdSpeciesID)}
	case entities.AnimalClassLivestock:
		listing.Livestock = &entities.LivestockDetails{Breed: strings.TrimSpace(cmd.LivestockBreed)}
	case entities.AnimalClassGame:
		listing.Game = &entities.GameAnimalDetails{Species: strings.TrimSpace(cmd.GameSpecies)}
	case entities.AnimalClassPoultry:
		listing.Poultry = &entities.PoultryDetails{Breed: strings.TrimSpace(cmd.PoultryBreed)}
	}

	if !listing.ValidateCreate() {
		return entities.Listing{}, domainerrors.ErrInvalidListingInput
	}

	if err := uc.Repository.CreateListing(ctx, cmd.Actor.Scope(), listing); err != nil {
		return entities.Listing{}, err
	}
	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, "listing.created", listing, now, map[string]any{
		"seller_id":    listing.SellerID,
		"animal_class": string(listing.AnimalClass),
	}); err != nil {
		return entities.Listing{}, err
	}

	logger.Info("listing created",
		"event", "listing_created",
		"module", sourceService,
		"layer", "application",
		"listing_id", listing.ListingID,
		"tenant_id", listing.TenantID,
		"seller_id", listing.SellerID,
	)
	return listing, nil
}
