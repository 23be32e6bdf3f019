package postgresadapter

import (
	"time"

	"stockyard/contexts/marketplace/listing-service/domain/entities"
)

type listingModel struct {
	ListingID   string `gorm:"primaryKey;column:listing_id"`
	TenantID    string `gorm:"column:tenant_id;index"`
	SellerID    string `gorm:"column:seller_id;index"`
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description"`

	StartingPrice float64  `gorm:"column:starting_price"`
	BuyNowPrice   *float64 `gorm:"column:buy_now_price"`
	CurrencyCode  string   `gorm:"column:currency_code"`

	Quantity int    `gorm:"column:quantity"`
	Location string `gorm:"column:location"`

	IsActive bool `gorm:"column:is_active"`

	AnimalClass    string `gorm:"column:animal_class;index"`
	BirdSpeciesID  string `gorm:"column:bird_species_id"`
	LivestockBreed string `gorm:"column:livestock_breed"`
	GameSpecies    string `gorm:"column:game_species"`
	PoultryBreed   string `gorm:"column:poultry_breed"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (listingModel) TableName() string { return "listings" }

type complianceModel struct {
	ListingID string `gorm:"primaryKey;column:listing_id"`
	TenantID  string `gorm:"column:tenant_id;index"`
	Status    string `gorm:"column:status;index"`

	SubmittedAt   *time.Time `gorm:"column:submitted_at"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at"`
	ReviewerID    string     `gorm:"column:reviewer_id"`
	ReviewNotes   string     `gorm:"column:review_notes"`
	LastUpdatedAt time.Time  `gorm:"column:last_updated_at"`
}

func (complianceModel) TableName() string { return "listing_compliance" }

type listingDocumentModel struct {
	ListingID    string    `gorm:"primaryKey;column:listing_id"`
	DocumentType string    `gorm:"primaryKey;column:document_type"`
	TenantID     string    `gorm:"column:tenant_id;index"`
	UploadedAt   time.Time `gorm:"column:uploaded_at"`
}

func (listingDocumentModel) TableName() string { return "listing_documents" }

type outboxModel struct {
	OutboxID    string     `gorm:"primaryKey;column:outbox_id"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "listing_outbox" }

func listingModelFromEntity(listing entities.Listing) listingModel {
	row := listingModel{
		ListingID:     listing.ListingID,
		TenantID:      listing.TenantID,
		SellerID:      listing.SellerID,
		Title:         listing.Title,
		Description:   listing.Description,
		StartingPrice: listing.StartingPrice,
		BuyNowPrice:   listing.BuyNowPrice,
		CurrencyCode:  listing.CurrencyCode,
		Quantity:      listing.Quantity,
		Location:      listing.Location,
		IsActive:      listing.IsActive,
		AnimalClass:   string(listing.AnimalClass),
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
	switch {
	case listing.Bird != nil:
		row.BirdSpeciesID = listing.Bird.SpeciesID
	case listing.Livestock != nil:
		row.LivestockBreed = listing.Livestock.Breed
	case listing.Game != nil:
		row.GameSpecies = listing.Game.Species
	case listing.Poultry != nil:
		row.PoultryBreed = listing.Poultry.Breed
	}
	return row
}

func complianceModelFromEntity(compliance entities.Compliance) complianceModel {
	return complianceModel{
		ListingID:     compliance.ListingID,
		TenantID:      compliance.TenantID,
		Status:        string(compliance.Status),
		SubmittedAt:   compliance.SubmittedAt,
		ReviewedAt:    compliance.ReviewedAt,
		ReviewerID:    compliance.ReviewerID,
		ReviewNotes:   compliance.ReviewNotes,
		LastUpdatedAt: compliance.LastUpdatedAt,
	}
}

func (m listingModel) toEntity(compliance complianceModel) entities.Listing {
	listing := entities.Listing{
		ListingID:     m.ListingID,
		TenantID:      m.TenantID,
		SellerID:      m.SellerID,
		Title:         m.Title,
		Description:   m.Description,
		StartingPrice: m.StartingPrice,
		BuyNowPrice:   m.BuyNowPrice,
		CurrencyCode:  m.CurrencyCode,
		Quantity:      m.Quantity,
		Location:      m.Location,
		IsActive:      m.IsActive,
		AnimalClass:   entities.AnimalClass(m.AnimalClass),
		Compliance: entities.Compliance{
			ListingID:     compliance.ListingID,
			TenantID:      compliance.TenantID,
			Status:        entities.ComplianceStatus(compliance.Status),
			SubmittedAt:   compliance.SubmittedAt,
			ReviewedAt:    compliance.ReviewedAt,
			ReviewerID:    compliance.ReviewerID,
			ReviewNotes:   compliance.ReviewNotes,
			LastUpdatedAt: compliance.LastUpdatedAt,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	switch listing.AnimalClass {
	case entities.AnimalClassBird:
		listing.Bird = &entities.BirdDetails{SpeciesID: m.BirdSpeciesID}
	case entities.AnimalClassLivestock:
		listing.Livestock = &entities.LivestockDetails{Breed: m.LivestockBreed}
	case entities.AnimalClassGame:
		listing.Game = &entities.GameAnimalDetails{Species: m.GameSpecies}
	case entities.AnimalClassPoultry:
		listing.Poultry = &entities.PoultryDetails{Breed: m.PoultryBreed}
	}
	return listing
}
