package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"stockyard/contexts/marketplace/auction-service/domain/entities"
	domainerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	"stockyard/contexts/marketplace/auction-service/ports"
	"stockyard/internal/shared/outbox"
	"stockyard/internal/shared/tenancy"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the tenant-scoped gorm adapter for auctions and bids. Bid
// appends rely on the database for serialization; the engine takes no lock.
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

func (r *Repository) CreateAuction(ctx context.Context, scope tenancy.Scope, auction entities.Auction) error {
	if !scope.Allows(auction.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	row := auctionModelFromEntity(auction)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAuctionAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetAuction(ctx context.Context, scope tenancy.Scope, auctionID string) (entities.Auction, error) {
	var row auctionModel
	err := scoped(r.db.WithContext(ctx), scope).
		Where("auction_id = ?", strings.TrimSpace(auctionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Auction{}, domainerrors.ErrAuctionNotFound
		}
		return entities.Auction{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAuctionByListing(ctx context.Context, scope tenancy.Scope, listingID string) (entities.Auction, error) {
	var row auctionModel
	err := scoped(r.db.WithContext(ctx), scope).
		Where("listing_id = ?", strings.TrimSpace(listingID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Auction{}, domainerrors.ErrAuctionNotFound
		}
		return entities.Auction{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateAuction(ctx context.Context, scope tenancy.Scope, auction entities.Auction) error {
	row := auctionModelFromEntity(auction)
	result := scoped(r.db.WithContext(ctx), scope).
		Model(&auctionModel{}).
		Where("auction_id = ?", auction.AuctionID).
		Select("*").
		Omit("auction_id", "tenant_id", "listing_id", "created_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAuctionNotFound
	}
	return nil
}

func (r *Repository) AppendBid(ctx context.Context, scope tenancy.Scope, bid entities.Bid) error {
	if !scope.Allows(bid.TenantID) {
		return tenancy.ErrTenantMismatch
	}
	row := bidModelFromEntity(bid)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListBids(ctx context.Context, scope tenancy.Scope, auctionID string, skip, take int) (ports.BidPage, error) {
	tx := scoped(r.db.WithContext(ctx).Model(&bidModel{}), scope).
		Where("auction_id = ?", strings.TrimSpace(auctionID))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ports.BidPage{}, err
	}

	var rows []bidModel
	query := tx.Order("placed_at DESC")
	if skip > 0 {
		query = query.Offset(skip)
	}
	if take > 0 {
		query = query.Limit(take)
	}
	if err := query.Find(&rows).Error; err != nil {
		return ports.BidPage{}, err
	}

	items := make([]entities.Bid, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return ports.BidPage{Items: items, Total: int(total)}, nil
}

func (r *Repository) AllBids(ctx context.Context, scope tenancy.Scope, auctionID string) ([]entities.Bid, error) {
	var rows []bidModel
	err := scoped(r.db.WithContext(ctx), scope).
		Where("auction_id = ?", strings.TrimSpace(auctionID)).
		Order("placed_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Bid, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
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
