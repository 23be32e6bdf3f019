package commands

import (
	"context"
	"encoding/json"
	"time"

	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/events"
	"stockyard/internal/shared/outbox"
)

const sourceService = "marketplace/auction-service"

func appendAuctionEvent(
	ctx context.Context,
	box ports.OutboxRepository,
	idGen ports.IDGenerator,
	eventType string,
	tenantID string,
	entityType string,
	entityID string,
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
		TenantID:       tenantID,
		EntityType:     entityType,
		EntityID:       entityID,
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
