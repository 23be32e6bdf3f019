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

type ReviewListingCommand struct {
	Actor     tenancy.Actor
	ListingID string
	Decision  entities.ReviewDecision
	Notes     string
}

// ReviewListingUseCase applies compliance decisions. Only platform admins
// holding a compliance reviewer role may decide; approval is the single path
// that turns a listing publicly active.
type ReviewListingUseCase struct {
	Repository ports.Repository
	Outbox     ports.OutboxRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ReviewListingUseCase) Approve(ctx context.Context, actor tenancy.Actor, listingID, notes string) error {
	return uc.Execute(ctx, ReviewListingCommand{Actor: actor, ListingID: listingID, Decision: entities.ReviewDecisionApprove, Notes: notes})
}

func (uc ReviewListingUseCase) Reject(ctx context.Context, actor tenancy.Actor, listingID, notes string) error {
	return uc.Execute(ctx, ReviewListingCommand{Actor: actor, ListingID: listingID, Decision: entities.ReviewDecisionReject, Notes: notes})
}

func (uc ReviewListingUseCase) Suspend(ctx context.Context, actor tenancy.Actor, listingID, notes string) error {
	return uc.Execute(ctx, ReviewListingCommand{Actor: actor, ListingID: listingID, Decision: entities.ReviewDecisionSuspend, Notes: notes})
}

func (uc ReviewListingUseCase) Execute(ctx context.Context, cmd ReviewListingCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	if err := tenancy.RequirePlatformAdmin(cmd.Actor); err != nil {
		return err
	}
	if err := tenancy.RequireRole(cmd.Actor, tenancy.RolePlatformComplianceAdmin, tenancy.RolePlatformSuperAdmin); err != nil {
		return err
	}
	if !cmd.Decision.Valid() {
		return domainerrors.ErrInvalidReviewInput
	}

	scope := cmd.Actor.Scope()
	listing, err := uc.Repository.GetListing(ctx, scope, strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	listing.Compliance.Status = entities.ComplianceStatus(cmd.Decision)
	listing.Compliance.ReviewNotes = strings.TrimSpace(cmd.Notes)
	listing.Compliance.ReviewedAt = &now
	listing.Compliance.ReviewerID = cmd.Actor.ActorID
	listing.Compliance.LastUpdatedAt = now
	listing.IsActive = listing.Compliance.Status == entities.ComplianceStatusApproved
	listing.UpdatedAt = now

	if err := uc.Repository.UpdateListing(ctx, scope, listing); err != nil {
		return err
	}
	if err := appendListingEvent(ctx, uc.Outbox, uc.IDGen, "listing.compliance.decided", listing, now, map[string]any{
		"decision":    string(cmd.Decision),
		"reviewer_id": cmd.Actor.ActorID,
	}); err != nil {
		return err
	}

	logger.Info("listing compliance decided",
		"event", "listing_compliance_decided",
		"module", sourceService,
		"layer", "application",
		"listing_id", listing.ListingID,
		"tenant_id", listing.TenantID,
		"decision", string(cmd.Decision),
		"reviewer_id", cmd.Actor.ActorID,
	)
	return nil
}
