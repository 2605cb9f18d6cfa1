package domain

import "time"

// ShopItem is a purchasable catalog entry
type ShopItem struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int       `json:"price"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Purchase records a completed shop transaction
type Purchase struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	ItemID    int       `json:"item_id"`
	PricePaid int       `json:"price_paid"`
	CreatedAt time.Time `json:"created_at"`
}
