package repository

import (
	"context"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Shop defines the interface for shop catalog and purchase persistence
type Shop interface {
	GetItems(ctx context.Context, category string) ([]domain.ShopItem, error)
	GetItem(ctx context.Context, itemID int) (*domain.ShopItem, error)
	RecordPurchase(ctx context.Context, purchase *domain.Purchase) error
	GetUserPurchases(ctx context.Context, userID string) ([]domain.Purchase, error)
}

// Education defines the interface for educational content persistence
type Education interface {
	SaveContent(ctx context.Context, content *domain.EducationalContent) error
	GetLatestContent(ctx context.Context, userID string) (*domain.EducationalContent, error)
	MarkCompleted(ctx context.Context, userID string, contentID int, at time.Time) error
}
