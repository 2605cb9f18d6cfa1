package handler

import (
	"net/http"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
	"github.com/fasalseva/FasalSeva_Go/internal/shop"
)

// PurchaseRequest is the request body for buying a shop item
type PurchaseRequest struct {
	ItemID   int `json:"item_id" validate:"required,gte=1"`
	Quantity int `json:"quantity" validate:"omitempty,gte=1,lte=100"`
}

// ShopItemsResponse wraps the catalog
type ShopItemsResponse struct {
	Items []domain.ShopItem `json:"items"`
	Count int               `json:"count"`
}

// PurchaseHistoryResponse wraps the user's purchases
type PurchaseHistoryResponse struct {
	Purchases []domain.Purchase `json:"purchases"`
	Count     int               `json:"count"`
}

// HandleShopItems lists the catalog, optionally filtered by category
// @Summary Shop catalog
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter"
// @Success 200 {object} ShopItemsResponse
// @Router /api/v1/shop/items [get]
func HandleShopItems(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := GetOptionalQueryParam(r, "category", "")

		items, err := shopService.Items(r.Context(), category)
		if err != nil {
			respondServiceError(w, r, "Shop items", err)
			return
		}

		respondJSON(w, http.StatusOK, ShopItemsResponse{Items: items, Count: len(items)})
	}
}

// HandlePurchase buys a shop item
// @Summary Purchase an item
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurchaseRequest true "Purchase payload"
// @Success 200 {object} shop.PurchaseResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/purchase [post]
func HandlePurchase(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
			return
		}

		result, err := shopService.Purchase(r.Context(), user.ID, req.ItemID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Purchase", err)
			return
		}

		metrics.ShopPurchases.WithLabelValues(result.Item.Category).Inc()
		metrics.CoinsSpent.Add(float64(result.CoinsSpent))

		log.Info("Item purchased",
			"user_id", user.ID,
			"item", result.Item.Name,
			"quantity", result.Quantity,
			"coins_spent", result.CoinsSpent)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandlePurchaseHistory returns the user's purchase history
// @Summary Purchase history
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PurchaseHistoryResponse
// @Router /api/v1/shop/purchases [get]
func HandlePurchaseHistory(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		purchases, err := shopService.Purchases(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Purchase history", err)
			return
		}

		respondJSON(w, http.StatusOK, PurchaseHistoryResponse{Purchases: purchases, Count: len(purchases)})
	}
}
