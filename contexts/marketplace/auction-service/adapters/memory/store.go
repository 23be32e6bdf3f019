package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"

	"github.com/google/uuid"
)

// Store is the in-memory adapter backing unit tests and local runs. It
// implements the auction, bid, listing-reader, price-cache, and outbox ports
// plus Clock and IDGenerator. Appends are serialized by the store mutex, so
// concurrent placements never lose a bid.
type Store struct {
	mu sync.RWMutex

	auctions  map[string]entities.Auction
	bids      map[string][]entities.Bid
	listings  map[string]ports.ListingView
	prices    map[string]float64
	outboxLog map[string]outbox.Message
}

func NewStore(listings []ports.ListingView) *Store {
	views := make(map[string]ports.ListingView, len(listings))
	for _, view := range listings {
		views[view.ListingID] = view
	}
	return &Store{
		auctions:  make(map[string]entities.Auction),
		bids:      make(map[string][]entities.Bid),
		listings:  views,
		prices:    make(map[string]float64),
		outboxLog: make(map[string]outbox.Message),
	}
}

// PutListing replaces a listing projection, mirroring what the relay would
// apply from listing events.
func (s *Store) PutListing(view ports.ListingView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[view.ListingID] = view
}

func (s *Store) GetListing(_ context.Context, scope tenancy.Scope, listingID string) (ports.ListingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, exists := s.listings[strings.TrimSpace(listingID)]
	if !exists || !scope.Allows(view.TenantID) {
		return ports.ListingView{}, domainerrors.ErrListingNotFound
	}
	return view, nil
}

func (s *Store) CreateAuction(_ context.Context, scope tenancy.Scope, auction entities.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !scope.Allows(auction.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	s.auctions[auction.AuctionID] = auction
	return nil
}

func (s *Store) GetAuction(_ context.Context, scope tenancy.Scope, auctionID string) (entities.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, exists := s.auctions[strings.TrimSpace(auctionID)]
	if !exists || !scope.Allows(auction.TenantID) {
		return entities.Auction{}, domainerrors.ErrAuctionNotFound
	}
	return auction, nil
}

func (s *Store) GetAuctionByListing(_ context.Context, scope tenancy.Scope, listingID string) (entities.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, auction := range s.auctions {
		if auction.ListingID == strings.TrimSpace(listingID) && scope.Allows(auction.TenantID) {
			return auction, nil
		}
	}
	return entities.Auction{}, domainerrors.ErrAuctionNotFound
}

func (s *Store) UpdateAuction(_ context.Context, scope tenancy.Scope, auction entities.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.auctions[auction.AuctionID]
	if !exists || !scope.Allows(existing.TenantID) {
		return domainerrors.ErrAuctionNotFound
	}
	s.auctions[auction.AuctionID] = auction
	return nil
}

func (s *Store) AppendBid(_ context.Context, scope tenancy.Scope, bid entities.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !scope.Allows(bid.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)
	return nil
}

func (s *Store) ListBids(_ context.Context, scope tenancy.Scope, auctionID string, skip, take int) (ports.BidPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.scopedBids(scope, auctionID)
	sort.Slice(items, func(i, j int) bool {
		return items[i].PlacedAt.After(items[j].PlacedAt)
	})

	total := len(items)
	if skip > 0 {
		if skip >= len(items) {
			items = nil
		} else {
			items = items[skip:]
		}
	}
	if take > 0 && len(items) > take {
		items = items[:take]
	}
	return ports.BidPage{Items: items, Total: total}, nil
}

func (s *Store) AllBids(_ context.Context, scope tenancy.Scope, auctionID string) ([]entities.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopedBids(scope, auctionID), nil
}

func (s *Store) scopedBids(scope tenancy.Scope, auctionID string) []entities.Bid {
	var items []entities.Bid
	for _, bid := range s.bids[strings.TrimSpace(auctionID)] {
		if scope.Allows(bid.TenantID) {
			items = append(items, bid)
		}
	}
	return items
}

func (s *Store) GetPrice(_ context.Context, auctionID string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amount, hit := s.prices[auctionID]
	return amount, hit, nil
}

func (s *Store) SetPrice(_ context.Context, auctionID string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices[auctionID] = amount
	return nil
}

func (s *Store) InvalidatePrice(_ context.Context, auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.prices, auctionID)
	return nil
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
