package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"stockyard/contexts/marketplace/listing-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	"stockyard/contexts/marketplace/listing-service/ports"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"

	"github.com/google/uuid"
)

// Store is the in-memory adapter backing unit tests and local runs. It
// implements the repository, document, and outbox ports plus Clock and
// IDGenerator, and applies tenant scoping the same way the postgres adapter
// does: out-of-scope rows do not exist.
type Store struct {
	mu sync.RWMutex

	listings  map[string]entities.Listing
	documents map[string][]entities.ListingDocument
	outboxLog map[string]outbox.Message
}

func NewStore(seed []entities.Listing) *Store {
	listings := make(map[string]entities.Listing, len(seed))
	for _, item := range seed {
		listings[item.ListingID] = item
	}
	return &Store{
		listings:  listings,
		documents: make(map[string][]entities.ListingDocument),
		outboxLog: make(map[string]outbox.Message),
	}
}

func (s *Store) CreateListing(_ context.Context, scope tenancy.Scope, listing entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !scope.Allows(listing.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *Store) GetListing(_ context.Context, scope tenancy.Scope, listingID string) (entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.listings[strings.TrimSpace(listingID)]
	if !exists || !scope.Allows(item.TenantID) {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return item, nil
}

func (s *Store) UpdateListing(_ context.Context, scope tenancy.Scope, listing entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.listings[listing.ListingID]
	if !exists || !scope.Allows(existing.TenantID) {
		return domainerrors.ErrListingNotFound
	}
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *Store) ListListings(_ context.Context, scope tenancy.Scope, filter ports.ListingFilter) (ports.ListingPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Listing, 0, len(s.listings))
	for _, item := range s.listings {
		if !scope.Allows(item.TenantID) {
			continue
		}
		if filter.SellerID != "" && item.SellerID != filter.SellerID {
			continue
		}
		if filter.AnimalClass != "" && item.AnimalClass != filter.AnimalClass {
			continue
		}
		if filter.SpeciesID != "" && (item.Bird == nil || item.Bird.SpeciesID != filter.SpeciesID) {
			continue
		}
		if filter.Status != "" && item.Compliance.Status != filter.Status {
			continue
		}
		if filter.ActiveOnly && !item.IsActive {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := len(items)
	if filter.Skip > 0 {
		if filter.Skip >= len(items) {
			items = nil
		} else {
			items = items[filter.Skip:]
		}
	}
	if filter.Take > 0 && len(items) > filter.Take {
		items = items[:filter.Take]
	}
	return ports.ListingPage{Items: items, Total: total}, nil
}

func (s *Store) RecordDocument(_ context.Context, scope tenancy.Scope, doc entities.ListingDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !scope.Allows(doc.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	s.documents[doc.ListingID] = append(s.documents[doc.ListingID], doc)
	return nil
}

func (s *Store) ListUploadedDocumentTypes(_ context.Context, scope tenancy.Scope, listingID string) ([]entities.DocumentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[entities.DocumentType]struct{})
	var types []entities.DocumentType
	for _, doc := range s.documents[strings.TrimSpace(listingID)] {
		if !scope.Allows(doc.TenantID) {
			continue
		}
		if _, ok := seen[doc.DocumentType]; ok {
			continue
		}
		seen[doc.DocumentType] = struct{}{}
		types = append(types, doc.DocumentType)
	}
	return types, nil
}

func (s *Store) AppendOutbox(_ context.Context, message outbox.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outboxLog[message.OutboxID] = message
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []outbox.Message
	for _, message := range s.outboxLog {
		if message.Status == outbox.StatusPending {
			pending = append(pending, message)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, exists := s.outboxLog[outboxID]
	if !exists {
		return nil
	}
	message.Status = outbox.StatusPublished
	message.PublishedAt = &publishedAt
	s.outboxLog[outboxID] = message
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
