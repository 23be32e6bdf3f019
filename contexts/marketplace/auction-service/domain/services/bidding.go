package services

import (
	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
)

// CurrentPrice is the highest bid amount. The boolean is false when no bids
// exist; ties on amount do not matter here.
func CurrentPrice(bids []entities.Bid) (float64, bool) {
	if len(bids) == 0 {
		return 0, false
	}
	max := bids[0].Amount
	for _, bid := range bids[1:] {
		if bid.Amount > max {
			max = bid.Amount
		}
	}
	return max, true
}

// WinningBid resolves the auction winner: the maximum-amount bid, with the
// earliest placement winning amount ties. Kept separate from CurrentPrice so
// alternative resolution rules can replace it without touching pricing.
func WinningBid(bids []entities.Bid) (entities.Bid, bool) {
	if len(bids) == 0 {
		return entities.Bid{}, false
	}
	winner := bids[0]
	for _, bid := range bids[1:] {
		if bid.Amount > winner.Amount {
			winner = bid
			continue
		}
		if bid.Amount == winner.Amount && bid.PlacedAt.Before(winner.PlacedAt) {
			winner = bid
		}
	}
	return winner, true
}

// BidPolicy configures bid acceptance. A zero MinIncrement accepts any
// positive amount regardless of the current price.
type BidPolicy struct {
	MinIncrement float64
}

// Check validates a candidate amount against the policy and the current
// price. hasCurrent is false when no bids exist yet; the increment rule only
// applies once a price is established.
func (p BidPolicy) Check(amount float64, current float64, hasCurrent bool) error {
	if amount <= 0 {
		return domainerrors.ErrInvalidBidAmount
	}
	if p.MinIncrement > 0 && hasCurrent && amount < current+p.MinIncrement {
		return domainerrors.ErrBidIncrementTooLow
	}
	return nil
}
