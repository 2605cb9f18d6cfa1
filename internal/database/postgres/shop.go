package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// ShopRepository implements shop catalog and purchase persistence for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

// GetItems returns all catalog items, optionally filtered by category
func (r *ShopRepository) GetItems(ctx context.Context, category string) ([]domain.ShopItem, error) {
	query := `
		SELECT item_id, name, description, category, price, icon, created_at
		FROM shop_items
		WHERE $1 = '' OR category = $1
		ORDER BY category, price
	`
	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query shop items: %w", err)
	}
	defer rows.Close()

	var items []domain.ShopItem
	for rows.Next() {
		var item domain.ShopItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Category,
			&item.Price, &item.Icon, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shop item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem returns a single catalog item
func (r *ShopRepository) GetItem(ctx context.Context, itemID int) (*domain.ShopItem, error) {
	query := `
		SELECT item_id, name, description, category, price, icon, created_at
		FROM shop_items WHERE item_id = $1
	`
	var item domain.ShopItem
	err := r.db.QueryRow(ctx, query, itemID).Scan(&item.ID, &item.Name, &item.Description,
		&item.Category, &item.Price, &item.Icon, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get shop item: %w", err)
	}
	return &item, nil
}

// RecordPurchase inserts a purchase row
func (r *ShopRepository) RecordPurchase(ctx context.Context, purchase *domain.Purchase) error {
	query := `
		INSERT INTO user_purchases (user_id, item_id, price_paid)
		VALUES ($1, $2, $3)
		RETURNING purchase_id, created_at
	`
	err := r.db.QueryRow(ctx, query, purchase.UserID, purchase.ItemID, purchase.PricePaid).
		Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

// GetUserPurchases returns the user's purchases, newest first
func (r *ShopRepository) GetUserPurchases(ctx context.Context, userID string) ([]domain.Purchase, error) {
	query := `
		SELECT purchase_id, user_id, item_id, price_paid, created_at
		FROM user_purchases WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ItemID, &p.PricePaid, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

var _ repository.Shop = (*ShopRepository)(nil)

// EducationRepository implements educational content persistence for PostgreSQL
type EducationRepository struct {
	db *pgxpool.Pool
}

// NewEducationRepository creates a new EducationRepository
func NewEducationRepository(db *pgxpool.Pool) *EducationRepository {
	return &EducationRepository{db: db}
}

// SaveContent inserts a generated content row
func (r *EducationRepository) SaveContent(ctx context.Context, content *domain.EducationalContent) error {
	query := `
		INSERT INTO educational_content (user_id, content_hash, content, latitude, longitude, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING content_id
	`
	err := r.db.QueryRow(ctx, query,
		content.UserID, content.ContentHash, content.Content,
		content.Latitude, content.Longitude, content.GeneratedAt,
	).Scan(&content.ID)
	if err != nil {
		return fmt.Errorf("failed to insert educational content: %w", err)
	}
	return nil
}

// GetLatestContent returns the user's most recently generated content
func (r *EducationRepository) GetLatestContent(ctx context.Context, userID string) (*domain.EducationalContent, error) {
	query := `
		SELECT content_id, user_id, content_hash, content, latitude, longitude, generated_at, completed_at
		FROM educational_content
		WHERE user_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	var c domain.EducationalContent
	err := r.db.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.ContentHash, &c.Content,
		&c.Latitude, &c.Longitude, &c.GeneratedAt, &c.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get educational content: %w", err)
	}
	return &c, nil
}

// MarkCompleted stamps a content row as completed
func (r *EducationRepository) MarkCompleted(ctx context.Context, userID string, contentID int, at time.Time) error {
	query := `
		UPDATE educational_content SET completed_at = $3
		WHERE content_id = $1 AND user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, contentID, userID, at)
	if err != nil {
		return fmt.Errorf("failed to mark content completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

var _ repository.Education = (*EducationRepository)(nil)
