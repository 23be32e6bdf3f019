package commands

import (
	"context"
	"log/slog"
	"strings"

	application "stockyard/contexts/marketplace/listing-service/application"
	"stockyard/contexts/marketplace/listing-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	"stockyard/contexts/marketplace/listing-service/domain/services"
	"stockyard/contexts/marketplace/listing-service/ports"
	"stockyard/internal/shared/tenancy"
)

type SubmitForReviewCommand struct {
	Actor     tenancy.Actor
	ListingID string
}

// SubmitForReviewResult reports where the submission landed: UnderReview when
// the document set is complete, PendingDocuments otherwise.
type SubmitForReviewResult struct {
	Status           entities.ComplianceStatus
	MissingDocuments []entities.DocumentType
}

type SubmitForReviewUseCase struct {
	Repository ports.Repository
	Documents  ports.DocumentRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute moves a Draft compliance record into the review pipeline. The
// listing's active flag is forced off in every branch: nothing is publicly
// visible while compliance is pending.
func (uc SubmitForReviewUseCase) Execute(ctx context.Context, cmd SubmitForReviewCommand) (SubmitForReviewResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "submit listings for compliance review"); err != nil {
		return SubmitForReviewResult{}, err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return SubmitForReviewResult{}, err
	}

	listing, err := uc.Repository.GetListing(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return SubmitForReviewResult{}, err
	}

	// The scope already filters foreign rows; keep the mismatch check explicit
	// so a misbehaving adapter fails closed.
	if listing.TenantID != cmd.Actor.TenantID {
		return SubmitForReviewResult{}, tenancy.ErrTenantMismatch
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, listing.SellerID); err != nil {
		return SubmitForReviewResult{}, err
	}

	if listing.Compliance.Status != entities.ComplianceStatusDraft {
		return SubmitForReviewResult{}, domainerrors.ErrComplianceNotDraft
	}

	uploaded, err := uc.Documents.ListUploadedDocumentTypes(ctx, cmd.Actor.Scope(), listing.ListingID)
	if err != nil {
		return SubmitForReviewResult{}, err
	}
	missing := services.MissingDocuments(listing.AnimalClass, uploaded)

	now := uc.Clock.Now().UTC()
	listing.IsActive = false
	listing.UpdatedAt = now
	listing.Compliance.LastUpdatedAt = now

	if len(missing) > 0 {
		listing.Compliance.Status = entities.ComplianceStatusPendingDocuments
	} else {
		listing.Compliance.Status = entities.ComplianceStatusUnderReview
		listing.Compliance.SubmittedAt = &now
	}

	if err := uc.Repository.UpdateListing(ctx, cmd.Actor.Scope(), listing); err != nil {
		return SubmitForReviewResult{}, err
	}

	logger.Info("listing submitted for review",
		"event", "listing_submitted_for_review",
		"module", sourceService,
		"layer", "application",
		"listing_id", listing.ListingID,
		"tenant_id", listing.TenantID,
		"compliance_status", string(listing.Compliance.Status),
		"missing_documents", len(missing),
	)
	return SubmitForReviewResult{
		Status:           listing.Compliance.Status,
		MissingDocuments: missing,
	}, nil
}
