package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"stockyard/contexts/marketplace/listing-service/application/commands"
	"stockyard/contexts/marketplace/listing-service/application/queries"
	"stockyard/contexts/marketplace/listing-service/domain/entities"
	httptransport "stockyard/contexts/marketplace/listing-service/transport/http"
	"stockyard/internal/shared/tenancy"
)

type Handler struct {
	CreateListing   commands.CreateListingUseCase
	UpdateListing   commands.UpdateListingUseCase
	SubmitForReview commands.SubmitForReviewUseCase
	ReviewListing   commands.ReviewListingUseCase
	RecordDocument  commands.RecordDocumentUseCase
	Queries         queries.QueryUseCase
	Logger          *slog.Logger
}

func (h Handler) CreateListingHandler(
	ctx context.Context,
	actor tenancy.Actor,
	req httptransport.CreateListingRequest,
) (httptransport.CreateListingResponse, error) {
	listing, err := h.CreateListing.Execute(ctx, commands.CreateListingCommand{
		Actor:          actor,
		SellerID:       req.SellerID,
		Title:          req.Title,
		Description:    req.Description,
		StartingPrice:  req.StartingPrice,
		BuyNowPrice:    req.BuyNowPrice,
		CurrencyCode:   req.CurrencyCode,
		Quantity:       req.Quantity,
		Location:       req.Location,
		AnimalClass:    entities.AnimalClass(req.AnimalClass),
		BirdSpeciesID:  req.BirdSpeciesID,
		LivestockBreed: req.LivestockBreed,
		GameSpecies:    req.GameSpecies,
		PoultryBreed:   req.PoultryBreed,
	})
	if err != nil {
		return httptransport.CreateListingResponse{}, err
	}
	return httptransport.CreateListingResponse{Listing: mapListing(listing)}, nil
}

func (h Handler) UpdateListingHandler(
	ctx context.Context,
	actor tenancy.Actor,
	listingID string,
	req httptransport.UpdateListingRequest,
) (httptransport.GetListingResponse, error) {
	listing, err := h.UpdateListing.Execute(ctx, commands.UpdateListingCommand{
		Actor:          actor,
		ListingID:      listingID,
		Title:          req.Title,
		Description:    req.Description,
		StartingPrice:  req.StartingPrice,
		BuyNowPrice:    req.BuyNowPrice,
		CurrencyCode:   req.CurrencyCode,
		Quantity:       req.Quantity,
		Location:       req.Location,
		BirdSpeciesID:  req.BirdSpeciesID,
		LivestockBreed: req.LivestockBreed,
		GameSpecies:    req.GameSpecies,
		PoultryBreed:   req.PoultryBreed,
	})
	if err != nil {
		return httptransport.GetListingResponse{}, err
	}
	return httptransport.GetListingResponse{Listing: mapListing(listing)}, nil
}

func (h Handler) DeactivateListingHandler(ctx context.Context, actor tenancy.Actor, listingID string) error {
	return h.UpdateListing.Deactivate(ctx, commands.DeactivateListingCommand{Actor: actor, ListingID: listingID})
}

func (h Handler) SubmitForReviewHandler(
	ctx context.Context,
	actor tenancy.Actor,
	listingID string,
) (httptransport.SubmitForReviewResponse, error) {
	result, err := h.SubmitForReview.Execute(ctx, commands.SubmitForReviewCommand{Actor: actor, ListingID: listingID})
	if err != nil {
		return httptransport.SubmitForReviewResponse{}, err
	}
	missing := make([]string, 0, len(result.MissingDocuments))
	for _, t := range result.MissingDocuments {
		missing = append(missing, string(t))
	}
	return httptransport.SubmitForReviewResponse{
		Status:           string(result.Status),
		MissingDocuments: missing,
	}, nil
}

func (h Handler) ApproveListingHandler(ctx context.Context, actor tenancy.Actor, listingID string, req httptransport.ReviewListingRequest) error {
	return h.ReviewListing.Approve(ctx, actor, listingID, req.Notes)
}

func (h Handler) RejectListingHandler(ctx context.Context, actor tenancy.Actor, listingID string, req httptransport.ReviewListingRequest) error {
	return h.ReviewListing.Reject(ctx, actor, listingID, req.Notes)
}

func (h Handler) SuspendListingHandler(ctx context.Context, actor tenancy.Actor, listingID string, req httptransport.ReviewListingRequest) error {
	return h.ReviewListing.Suspend(ctx, actor, listingID, req.Notes)
}

func (h Handler) RecordDocumentHandler(ctx context.Context, actor tenancy.Actor, listingID string, req httptransport.RecordDocumentRequest) error {
	return h.RecordDocument.Execute(ctx, commands.RecordDocumentCommand{
		Actor:        actor,
		ListingID:    listingID,
		DocumentType: entities.DocumentType(req.DocumentType),
	})
}

func (h Handler) GetListingHandler(ctx context.Context, actor tenancy.Actor, listingID string) (httptransport.GetListingResponse, error) {
	listing, err := h.Queries.GetListing(ctx, actor, listingID)
	if err != nil {
		return httptransport.GetListingResponse{}, err
	}
	return httptransport.GetListingResponse{Listing: mapListing(listing)}, nil
}

func (h Handler) BrowseListingsHandler(ctx context.Context, actor tenancy.Actor, query queries.ListingsQuery) (httptransport.ListListingsResponse, error) {
	page, err := h.Queries.Browse(ctx, actor, query)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return mapPage(page.Items, page.Total), nil
}

func (h Handler) MyListingsHandler(ctx context.Context, actor tenancy.Actor, sellerID string, query queries.ListingsQuery) (httptransport.ListListingsResponse, error) {
	page, err := h.Queries.MyListings(ctx, actor, sellerID, query)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return mapPage(page.Items, page.Total), nil
}

func (h Handler) TenantListingsHandler(ctx context.Context, actor tenancy.Actor, query queries.ListingsQuery) (httptransport.ListListingsResponse, error) {
	page, err := h.Queries.TenantListings(ctx, actor, query)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return mapPage(page.Items, page.Total), nil
}

func (h Handler) AllListingsHandler(ctx context.Context, actor tenancy.Actor, query queries.ListingsQuery) (httptransport.ListListingsResponse, error) {
	page, err := h.Queries.AllListings(ctx, actor, query)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return mapPage(page.Items, page.Total), nil
}

func mapPage(items []entities.Listing, total int) httptransport.ListListingsResponse {
	result := make([]httptransport.ListingDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapListing(item))
	}
	return httptransport.ListListingsResponse{Items: result, Total: total}
}

func mapListing(listing entities.Listing) httptransport.ListingDTO {
	dto := httptransport.ListingDTO{
		ListingID:     listing.ListingID,
		TenantID:      listing.TenantID,
		SellerID:      listing.SellerID,
		Title:         listing.Title,
		Description:   listing.Description,
		StartingPrice: listing.StartingPrice,
		BuyNowPrice:   listing.BuyNowPrice,
		CurrencyCode:  listing.CurrencyCode,
		Quantity:      listing.Quantity,
		Location:      listing.Location,
		IsActive:      listing.IsActive,
		AnimalClass:   string(listing.AnimalClass),
		Compliance: httptransport.ComplianceDTO{
			Status:        string(listing.Compliance.Status),
			SubmittedAt:   formatTime(listing.Compliance.SubmittedAt),
			ReviewedAt:    formatTime(listing.Compliance.ReviewedAt),
			ReviewerID:    listing.Compliance.ReviewerID,
			ReviewNotes:   listing.Compliance.ReviewNotes,
			LastUpdatedAt: listing.Compliance.LastUpdatedAt.UTC().Format(time.RFC3339),
		},
		CreatedAt: listing.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: listing.UpdatedAt.UTC().Format(time.RFC3339),
	}
	switch {
	case listing.Bird != nil:
		dto.SpeciesID = listing.Bird.SpeciesID
	case listing.Livestock != nil:
		dto.Breed = listing.Livestock.Breed
	case listing.Game != nil:
		dto.Breed = listing.Game.Species
	case listing.Poultry != nil:
		dto.Breed = listing.Poultry.Breed
	}
	return dto
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
