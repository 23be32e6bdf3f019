package entities

import (
	"strings"
	"time"
)

type AnimalClass string

const (
	AnimalClassBird      AnimalClass = "bird"
	AnimalClassLivestock AnimalClass = "livestock"
	AnimalClassGame      AnimalClass = "game"
	AnimalClassPoultry   AnimalClass = "poultry"
)

// BirdDetails is the bird vertical sub-record. SpeciesID drives the
// CITES-related document requirements.
type BirdDetails struct {
	SpeciesID string
}

type LivestockDetails struct {
	Breed string
}

type GameAnimalDetails struct {
	Species string
}

type PoultryDetails struct {
	Breed string
}

// Listing is a sellable unit owned by exactly one tenant. At most one
// animal-class detail sub-record is populated, matching AnimalClass.
type Listing struct {
	ListingID   string
	TenantID    string
	SellerID    string
	Title       string
	Description string

	StartingPrice float64
	BuyNowPrice   *float64
	CurrencyCode  string

	Quantity int
	Location string

	IsActive bool

	AnimalClass AnimalClass
	Bird        *BirdDetails
	Livestock   *LivestockDetails
	Game        *GameAnimalDetails
	Poultry     *PoultryDetails

	Compliance Compliance

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateCreate checks the write-model invariants for listing creation.
func (l Listing) ValidateCreate() bool {
	return strings.TrimSpace(l.SellerID) != "" &&
		strings.TrimSpace(l.Title) != "" &&
		l.StartingPrice > 0 &&
		l.Quantity > 0 &&
		l.detailMatchesClass()
}

func (l Listing) detailMatchesClass() bool {
	populated := 0
	if l.Bird != nil {
		populated++
	}
	if l.Livestock != nil {
		populated++
	}
	if l.Game != nil {
		populated++
	}
	if l.Poultry != nil {
		populated++
	}
	if populated != 1 {
		return false
	}
	switch l.AnimalClass {
	case AnimalClassBird:
		return l.Bird != nil
	case AnimalClassLivestock:
		return l.Livestock != nil
	case AnimalClassGame:
		return l.Game != nil
	case AnimalClassPoultry:
		return l.Poultry != nil
	default:
		return false
	}
}
