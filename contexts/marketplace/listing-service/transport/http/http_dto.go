package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateListingRequest struct {
	SellerID    string `json:"seller_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	StartingPrice float64  `json:"starting_price"`
	BuyNowPrice   *float64 `json:"buy_now_price,omitempty"`
	CurrencyCode  string   `json:"currency_code"`
	Quantity      int      `json:"quantity"`
	Location      string   `json:"location"`

	AnimalClass    string `json:"animal_class"`
	BirdSpeciesID  string `json:"bird_species_id,omitempty"`
	LivestockBreed string `json:"livestock_breed,omitempty"`
	GameSpecies    string `json:"game_species,omitempty"`
	PoultryBreed   string `json:"poultry_breed,omitempty"`
}

type UpdateListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	StartingPrice float64  `json:"starting_price"`
	BuyNowPrice   *float64 `json:"buy_now_price,omitempty"`
	CurrencyCode  string   `json:"currency_code"`
	Quantity      int      `json:"quantity"`
	Location      string   `json:"location"`

	BirdSpeciesID  string `json:"bird_species_id,omitempty"`
	LivestockBreed string `json:"livestock_breed,omitempty"`
	GameSpecies    string `json:"game_species,omitempty"`
	PoultryBreed   string `json:"poultry_breed,omitempty"`
}

type ReviewListingRequest struct {
	Notes string `json:"notes"`
}

type RecordDocumentRequest struct {
	DocumentType string `json:"document_type"`
}

type ComplianceDTO struct {
	Status        string `json:"status"`
	SubmittedAt   string `json:"submitted_at,omitempty"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
	ReviewerID    string `json:"reviewer_id,omitempty"`
	ReviewNotes   string `json:"review_notes,omitempty"`
	LastUpdatedAt string `json:"last_updated_at"`
}

type ListingDTO struct {
	ListingID   string `json:"listing_id"`
	TenantID    string `json:"tenant_id"`
	SellerID    string `json:"seller_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	StartingPrice float64  `json:"starting_price"`
	BuyNowPrice   *float64 `json:"buy_now_price,omitempty"`
	CurrencyCode  string   `json:"currency_code"`
	Quantity      int      `json:"quantity"`
	Location      string   `json:"location,omitempty"`

	IsActive    bool   `json:"is_active"`
	AnimalClass string `json:"animal_class"`
	SpeciesID   string `json:"species_id,omitempty"`
	Breed       string `json:"breed,omitempty"`

	Compliance ComplianceDTO `json:"compliance"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateListingResponse struct {
	Listing ListingDTO `json:"listing"`
}

type GetListingResponse struct {
	Listing ListingDTO `json:"listing"`
}

type ListListingsResponse struct {
	Items []ListingDTO `json:"items"`
	Total int          `json:"total"`
}

type SubmitForReviewResponse struct {
	Status           string   `json:"status"`
	MissingDocuments []string `json:"missing_documents,omitempty"`
}
