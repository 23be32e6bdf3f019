package ports

import (
	"context"
	"time"

	"stockyard/contexts/marketplace/listing-service/domain/entities"
	"stockyard/internal/shared/events"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"
)

// ListingFilter narrows listing queries. Zero values mean "no constraint".
type ListingFilter struct {
	SellerID    string
	AnimalClass entities.AnimalClass
	SpeciesID   string
	Status      entities.ComplianceStatus
	ActiveOnly  bool
	Skip        int
	Take        int
}

type ListingPage struct {
	Items []entities.Listing
	Total int
}

// Repository is the tenant-scoped persistence port for listings and their
// compliance records. Every method applies the scope transparently: rows
// outside the scope behave as if they do not exist.
type Repository interface {
	CreateListing(ctx context.Context, scope tenancy.Scope, listing entities.Listing) error
	GetListing(ctx context.Context, scope tenancy.Scope, listingID string) (entities.Listing, error)
	UpdateListing(ctx context.Context, scope tenancy.Scope, listing entities.Listing) error
	ListListings(ctx context.Context, scope tenancy.Scope, filter ListingFilter) (ListingPage, error)
}

// DocumentRepository reads and records compliance document uploads. Content
// is owned by the document-management collaborator; only presence and type
// are stored here.
type DocumentRepository interface {
	RecordDocument(ctx context.Context, scope tenancy.Scope, doc entities.ListingDocument) error
	ListUploadedDocumentTypes(ctx context.Context, scope tenancy.Scope, listingID string) ([]entities.DocumentType, error)
}

// OutboxRepository persists and relays lifecycle events.
type OutboxRepository interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher publishes envelopes to a topic on the platform bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
