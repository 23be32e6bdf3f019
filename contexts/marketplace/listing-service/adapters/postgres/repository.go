package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockyard/contexts/marketplace/listing-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	"stockyard/contexts/marketplace/listing-service/ports"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the tenant-scoped gorm adapter. Scoping is applied inside
// every query: out-of-scope rows behave as if they do not exist, so the
// service layer never sees foreign-tenant data.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func scoped(tx *gorm.DB, scope tenancy.Scope) *gorm.DB {
	if scope.AllTenants {
		return tx
	}
	// An empty non-admin tenant id matches no rows.
	return tx.Where("tenant_id = ?", scope.TenantID)
}

func (r *Repository) CreateListing(ctx context.Context, scope tenancy.Scope, listing entities.Listing) error {
	if !scope.Allows(listing.TenantID) {
		return tenancy.ErrTenantMismatch
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := listingModelFromEntity(listing)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidListingInput
			}
			return err
		}
		compliance := complianceModelFromEntity(listing.Compliance)
		return tx.Create(&compliance).Error
	})
}

func (r *Repository) GetListing(ctx context.Context, scope tenancy.Scope, listingID string) (entities.Listing, error) {
	var row listingModel
	err := scoped(r.db.WithContext(ctx), scope).
		Where("listing_id = ?", strings.TrimSpace(listingID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Listing{}, domainerrors.ErrListingNotFound
		}
		return entities.Listing{}, err
	}

	var compliance complianceModel
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", row.ListingID).
		First(&compliance).
		Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Listing{}, err
	}
	return row.toEntity(compliance), nil
}

func (r *Repository) UpdateListing(ctx context.Context, scope tenancy.Scope, listing entities.Listing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := listingModelFromEntity(listing)
		result := scoped(tx, scope).
			Model(&listingModel{}).
			Where("listing_id = ?", listing.ListingID).
			Select("*").
			Omit("listing_id", "tenant_id", "created_at").
			Updates(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrListingNotFound
		}

		compliance := complianceModelFromEntity(listing.Compliance)
		return tx.
			Model(&complianceModel{}).
			Where("listing_id = ?", listing.ListingID).
			Select("*").
			Omit("listing_id", "tenant_id").
			Updates(compliance).
			Error
	})
}

func (r *Repository) ListListings(ctx context.Context, scope tenancy.Scope, filter ports.ListingFilter) (ports.ListingPage, error) {
	tx := scoped(r.db.WithContext(ctx).Model(&listingModel{}), scope)
	if filter.SellerID != "" {
		tx = tx.Where("seller_id = ?", filter.SellerID)
	}
	if filter.AnimalClass != "" {
		tx = tx.Where("animal_class = ?", string(filter.AnimalClass))
	}
	if filter.SpeciesID != "" {
		tx = tx.Where("bird_species_id = ?", filter.SpeciesID)
	}
	if filter.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.Status != "" {
		tx = tx.Where("listing_id IN (?)", r.db.
			Model(&complianceModel{}).
			Select("listing_id").
			Where("status = ?", string(filter.Status)))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.ListingPage{}, err
	}

	var rows []listingModel
	query := tx.Order("created_at DESC")
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Take > 0 {
		query = query.Limit(filter.Take)
	}
	if err := query.Find(&rows).Error; err != nil {
		return ports.ListingPage{}, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ListingID)
	}
	compliance := make(map[string]complianceModel, len(ids))
	if len(ids) > 0 {
		var complianceRows []complianceModel
		if err := r.db.WithContext(ctx).
			Where("listing_id IN ?", ids).
			Find(&complianceRows).
			Error; err != nil {
			return ports.ListingPage{}, err
		}
		for _, c := range complianceRows {
			compliance[c.ListingID] = c
		}
	}

	items := make([]entities.Listing, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(compliance[row.ListingID]))
	}
	return ports.ListingPage{Items: items, Total: int(total)}, nil
}

func (r *Repository) RecordDocument(ctx context.Context, scope tenancy.Scope, doc entities.ListingDocument) error {
	if !scope.Allows(doc.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	row := listingDocumentModel{
		ListingID:    doc.ListingID,
		DocumentType: string(doc.DocumentType),
		TenantID:     doc.TenantID,
		UploadedAt:   doc.UploadedAt,
	}
	// Re-uploading the same type refreshes the upload timestamp.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "listing_id"}, {Name: "document_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"uploaded_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) ListUploadedDocumentTypes(ctx context.Context, scope tenancy.Scope, listingID string) ([]entities.DocumentType, error) {
	var raw []string
	err := scoped(r.db.WithContext(ctx).Model(&listingDocumentModel{}), scope).
		Where("listing_id = ?", strings.TrimSpace(listingID)).
		Distinct().
		Pluck("document_type", &raw).
		Error
	if err != nil {
		return nil, err
	}
	types := make([]entities.DocumentType, 0, len(raw))
	for _, t := range raw {
		types = append(types, entities.DocumentType(t))
	}
	return types, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message outbox.Message) error {
	row := outboxModel{
		OutboxID:  message.OutboxID,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    message.Status,
		CreatedAt: message.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	messages := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, outbox.Message{
			OutboxID:    row.OutboxID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
			PublishedAt: row.PublishedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
