package postgresadapter

import (
	"context"
	"errors"
	"strings"

	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/tenancy"

	"gorm.io/gorm"
)

type listingRow struct {
	ListingID     string   `gorm:"column:listing_id"`
	TenantID      string   `gorm:"column:tenant_id"`
	SellerID      string   `gorm:"column:seller_id"`
	IsActive      bool     `gorm:"column:is_active"`
	BuyNowPrice   *float64 `gorm:"column:buy_now_price"`
	CurrencyCode  string   `gorm:"column:currency_code"`
	StartingPrice float64  `gorm:"column:starting_price"`
	Status        string   `gorm:"column:status"`
}

// ListingReader projects listing rows for the auction engine by joining the
// listing store's tables. It never writes them.
type ListingReader struct {
	db *gorm.DB
}

func NewListingReader(db *gorm.DB) *ListingReader {
	return &ListingReader{db: db}
}

func (r *ListingReader) GetListing(ctx context.Context, scope tenancy.Scope, listingID string) (ports.ListingView, error) {
	tx := r.db.WithContext(ctx).
		Table("listings").
		Select("listings.listing_id, listings.tenant_id, listings.seller_id, listings.is_active, listings.buy_now_price, listings.currency_code, listings.starting_price, listing_compliance.status").
		Joins("LEFT JOIN listing_compliance ON listing_compliance.listing_id = listings.listing_id").
		Where("listings.listing_id = ?", strings.TrimSpace(listingID))
	if !scope.AllTenants {
		tx = tx.Where("listings.tenant_id = ?", scope.TenantID)
	}

	var row listingRow
	if err := tx.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ListingView{}, domainerrors.ErrListingNotFound
		}
		return ports.ListingView{}, err
	}
	return ports.ListingView{
		ListingID:     row.ListingID,
		TenantID:      row.TenantID,
		SellerID:      row.SellerID,
		IsActive:      row.IsActive,
		Approved:      row.Status == "approved",
		BuyNowPrice:   row.BuyNowPrice,
		CurrencyCode:  row.CurrencyCode,
		StartingPrice: row.StartingPrice,
	}, nil
}
