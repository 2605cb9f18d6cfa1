package shop

import (
	"context"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// PurchaseResult is returned after a successful purchase
type PurchaseResult struct {
	Item           domain.ShopItem `json:"item"`
	Quantity       int             `json:"quantity"`
	CoinsSpent     int             `json:"coins_spent"`
	RemainingCoins int             `json:"remaining_coins"`
}

// Service exposes the coin shop
type Service interface {
	// Items lists the catalog, optionally filtered by category.
	Items(ctx context.Context, category string) ([]domain.ShopItem, error)

	// Purchase debits the total price and records the transaction.
	Purchase(ctx context.Context, userID string, itemID, quantity int) (*PurchaseResult, error)

	// Purchases returns the user's purchase history.
	Purchases(ctx context.Context, userID string) ([]domain.Purchase, error)
}

type service struct {
	shopRepo repository.Shop
	userRepo repository.User
	clock    clock.Clock
}

func NewService(shopRepo repository.Shop, userRepo repository.User, clk clock.Clock) Service {
	return &service{shopRepo: shopRepo, userRepo: userRepo, clock: clk}
}

func (s *service) Items(ctx context.Context, category string) ([]domain.ShopItem, error) {
	return s.shopRepo.GetItems(ctx, category)
}

func (s *service) Purchase(ctx context.Context, userID string, itemID, quantity int) (*PurchaseResult, error) {
	if quantity < 1 {
		quantity = 1
	}

	item, err := s.shopRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	totalCost := item.Price * quantity

	user, err := s.userRepo.AdjustBalances(ctx, userID, -totalCost, 0)
	if err != nil {
		return nil, err
	}

	purchase := &domain.Purchase{
		UserID:    userID,
		ItemID:    item.ID,
		PricePaid: totalCost,
		CreatedAt: s.clock.Now(),
	}
	if err := s.shopRepo.RecordPurchase(ctx, purchase); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("shop purchase",
		"user_id", userID, "item_id", item.ID, "quantity", quantity, "coins", totalCost)

	return &PurchaseResult{
		Item:           *item,
		Quantity:       quantity,
		CoinsSpent:     totalCost,
		RemainingCoins: user.Coins,
	}, nil
}

func (s *service) Purchases(ctx context.Context, userID string) ([]domain.Purchase, error) {
	return s.shopRepo.GetUserPurchases(ctx, userID)
}
