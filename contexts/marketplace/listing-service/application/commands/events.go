package commands

import (
	"context"
	"encoding/json"
	"time"

	"stockyard/contexts/marketplace/listing-service/domain/entities"
	"stockyard/contexts/marketplace/listing-service/ports"
	"stockyard/internal/shared/events"
	"stockyard/internal/shared/outbox"
)

const sourceService = "marketplace/listing-service"

func appendListingEvent(
	ctx context.Context,
	box ports.OutboxRepository,
	idGen ports.IDGenerator,
	eventType string,
	listing entities.Listing,
	now time.Time,
	payload map[string]any,
) error {
	if box == nil {
		return nil
	}

	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	outboxID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}

	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  now,
		TenantID:       listing.TenantID,
		EntityType:     "listing",
		EntityID:       listing.ListingID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return box.AppendOutbox(ctx, outbox.Message{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   raw,
		Status:    outbox.StatusPending,
		CreatedAt: now,
	})
}
