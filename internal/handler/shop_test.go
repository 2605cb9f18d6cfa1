package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/shop"
)

type fakeShopService struct {
	items       []domain.ShopItem
	itemsErr    error
	purchase    *shop.PurchaseResult
	purchaseErr error
	history     []domain.Purchase
	historyErr  error

	lastCategory string
	lastItemID   int
	lastQuantity int
}

func (f *fakeShopService) Items(ctx context.Context, category string) ([]domain.ShopItem, error) {
	f.lastCategory = category
	return f.items, f.itemsErr
}

func (f *fakeShopService) Purchase(ctx context.Context, userID string, itemID, quantity int) (*shop.PurchaseResult, error) {
	f.lastItemID = itemID
	f.lastQuantity = quantity
	return f.purchase, f.purchaseErr
}

func (f *fakeShopService) Purchases(ctx context.Context, userID string) ([]domain.Purchase, error) {
	return f.history, f.historyErr
}

func TestHandleShopItems(t *testing.T) {
	t.Run("full catalog", func(t *testing.T) {
		svc := &fakeShopService{
			items: []domain.ShopItem{
				{ID: 1, Name: "Premium Seeds", Category: "seeds", Price: 50},
				{ID: 2, Name: "Garden Gnome", Category: "decoration", Price: 120},
			},
		}

		req := newAuthedRequest(t, "GET", "/shop/items", nil)
		w := httptest.NewRecorder()
		HandleShopItems(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, svc.lastCategory)
		assert.Contains(t, w.Body.String(), `"count":2`)
	})

	t.Run("category filter passed through", func(t *testing.T) {
		svc := &fakeShopService{}

		req := newAuthedRequest(t, "GET", "/shop/items?category=seeds", nil)
		w := httptest.NewRecorder()
		HandleShopItems(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "seeds", svc.lastCategory)
	})
}

func TestHandlePurchase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeShopService{
			purchase: &shop.PurchaseResult{
				Item:           domain.ShopItem{ID: 1, Name: "Premium Seeds", Category: "seeds"},
				Quantity:       3,
				CoinsSpent:     150,
				RemainingCoins: 350,
			},
		}

		req := newAuthedRequest(t, "POST", "/shop/purchase", PurchaseRequest{ItemID: 1, Quantity: 3})
		w := httptest.NewRecorder()
		HandlePurchase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.lastItemID)
		assert.Equal(t, 3, svc.lastQuantity)
		assert.Contains(t, w.Body.String(), `"coins_spent":150`)
	})

	t.Run("missing item id", func(t *testing.T) {
		svc := &fakeShopService{}

		req := newAuthedRequest(t, "POST", "/shop/purchase", PurchaseRequest{Quantity: 1})
		w := httptest.NewRecorder()
		HandlePurchase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("insufficient coins", func(t *testing.T) {
		svc := &fakeShopService{purchaseErr: domain.ErrInsufficientCoins}

		req := newAuthedRequest(t, "POST", "/shop/purchase", PurchaseRequest{ItemID: 2, Quantity: 10})
		w := httptest.NewRecorder()
		HandlePurchase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughCoinsError)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := &fakeShopService{purchaseErr: domain.ErrItemNotFound}

		req := newAuthedRequest(t, "POST", "/shop/purchase", PurchaseRequest{ItemID: 99})
		w := httptest.NewRecorder()
		HandlePurchase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgShopItemNotFoundError)
	})
}

func TestHandlePurchaseHistory(t *testing.T) {
	svc := &fakeShopService{
		history: []domain.Purchase{{ID: 1, ItemID: 1, PricePaid: 150}},
	}

	req := newAuthedRequest(t, "GET", "/shop/purchases", nil)
	w := httptest.NewRecorder()
	HandlePurchaseHistory(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price_paid":150`)
	assert.Contains(t, w.Body.String(), `"count":1`)
}
