package product

import "github.com/shopspring/decimal"

// Product represents a catalog item available for purchase.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Category      string          `json:"category"`
	Image         string          `json:"image"`
	InStock       bool            `json:"in_stock"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int             `json:"review_count"`
	LikesCount    int             `json:"likes_count"`
	ViewsCount    int             `json:"views_count"`
	Variants      []Variant       `json:"variants,omitempty"`
}

// Variant is a purchasable variation of a product (size, colour, ...).
type Variant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Ref is the subset of product fields a cart line carries for display.
type Ref struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}
