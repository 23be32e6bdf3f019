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

type RecordDocumentCommand struct {
	Actor        tenancy.Actor
	ListingID    string
	DocumentType entities.DocumentType
}

// RecordDocumentUseCase registers that a compliance document was uploaded.
// The document itself stays with the document-management collaborator.
type RecordDocumentUseCase struct {
	Repository ports.Repository
	Documents  ports.DocumentRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc RecordDocumentUseCase) Execute(ctx context.Context, cmd RecordDocumentCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequireTenantWriteActor(cmd.Actor, "upload compliance documents"); err != nil {
		return err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RoleTenantAdmin, tenancy.RoleSeller); err != nil {
		return err
	}
	if !cmd.DocumentType.Valid() {
		return domainerrors.ErrInvalidDocumentType
	}

	listing, err := uc.Repository.GetListing(ctx, cmd.Actor.Scope(), strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return err
	}
	if err := tenancy.RequireOwnerOrTenantAdmin(cmd.Actor, listing.SellerID); err != nil {
		return err
	}

	doc := entities.ListingDocument{
		ListingID:    listing.ListingID,
		TenantID:     listing.TenantID,
		DocumentType: cmd.DocumentType,
		UploadedAt:   uc.Clock.Now().UTC(),
	}
	if err := uc.Documents.RecordDocument(ctx, cmd.Actor.Scope(), doc); err != nil {
		return err
	}

	logger.Info("compliance document recorded",
		"event", "listing_document_recorded",
		"module", sourceService,
		"layer", "application",
		"listing_id", listing.ListingID,
		"tenant_id", listing.TenantID,
		"document_type", string(cmd.DocumentType),
	)
	return nil
}
